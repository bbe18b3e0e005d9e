package formatter

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := map[int64]string{
		0:         "",
		7:         "Seven",
		19:        "Nineteen",
		40:        "Forty",
		52:        "Fifty Two",
		100:       "One Hundred",
		305:       "Three Hundred Five",
		1000:      "One Thousand",
		125000:    "One Lakh Twenty Five Thousand",
		10000000:  "One Crore",
		123456789: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
	}
	for n, want := range tests {
		assert.Equal(t, want, NumberToWords(n), "n=%d", n)
	}
}

func TestNumberToWordsNegative(t *testing.T) {
	assert.Equal(t, "Minus Fifty Two", NumberToWords(-52))
	assert.Equal(t,
		"Minus Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand Six Hundred Eighty Five Crore Forty Seven Lakh Seventy Five Thousand Eight Hundred Eight",
		NumberToWords(math.MinInt64))
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "Fifty Two Rupees and Fifty Paise Only", AmountInWords(decimal.RequireFromString("52.5")))
	assert.Equal(t, "One Hundred Rupees Only", AmountInWords(decimal.NewFromInt(100)))
	assert.Equal(t, "Zero Rupees Only", AmountInWords(decimal.Zero))
	assert.Equal(t, "Ninety Nine Paise Only", AmountInWords(decimal.RequireFromString("0.994")))
}
