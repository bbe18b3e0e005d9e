package db

import (
	"context"
	"fmt"
	"strings"
)

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	Memory   DBType = "memory"
)

func ParseDBType(s string) (DBType, error) {
	t := DBType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Postgres, Mongo, Memory:
		return t, nil
	}
	return "", fmt.Errorf("DB_TYPE %q not supported", s)
}

// DB is a connection owned by main for the life of the process.
type DB interface {
	Connect() error
	Disconnect() error
	Ping(ctx context.Context) error
}
