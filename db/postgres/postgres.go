package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Pool sizes the connection pool. Zero fields keep the defaults.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

type PostgresDB struct {
	Conn *sql.DB
	URL  string
	Pool Pool
	// ConnectTimeout bounds the initial ping.
	ConnectTimeout time.Duration
}

func NewPostgresDB(url string) *PostgresDB {
	return &PostgresDB{
		URL:            url,
		Pool:           Pool{MaxOpen: 5, MaxIdle: 2, MaxLifetime: 30 * time.Minute},
		ConnectTimeout: 5 * time.Second,
	}
}

func (p *PostgresDB) Connect() error {
	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return err
	}
	if p.Pool.MaxOpen > 0 {
		conn.SetMaxOpenConns(p.Pool.MaxOpen)
	}
	if p.Pool.MaxIdle > 0 {
		conn.SetMaxIdleConns(p.Pool.MaxIdle)
	}
	if p.Pool.MaxLifetime > 0 {
		conn.SetConnMaxLifetime(p.Pool.MaxLifetime)
	}
	p.Conn = conn

	ctx, cancel := context.WithTimeout(context.Background(), p.ConnectTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		_ = conn.Close()
		p.Conn = nil
		return err
	}
	return nil
}

func (p *PostgresDB) Disconnect() error {
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.Conn.PingContext(ctx)
}
