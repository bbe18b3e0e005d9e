package models

import (
	"strconv"
	"strings"
)

// FirstSequence is issued when no booking exists yet.
const FirstSequence int64 = 100

func FormatID(seq int64) string {
	return IDPrefix + strconv.FormatInt(seq, 10)
}

// ParseID extracts n from "PT<n>".
func ParseID(id string) (int64, bool) {
	if !strings.HasPrefix(id, IDPrefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(id[len(IDPrefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
