package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lrbooking/db"
	mongodb "lrbooking/db/mongo"
	"lrbooking/db/postgres"
)

// These run against real databases, e.g. the containers from
// `docker run -p 5432:5432 -e POSTGRES_PASSWORD=lr postgres:16` and
// `docker run -p 27017:27017 mongo:7`, and are skipped when the URL is unset.
const (
	postgresTestURLEnv = "LRBOOKING_TEST_POSTGRES_URL"
	mongoTestURLEnv    = "LRBOOKING_TEST_MONGO_URL"
)

func TestPostgresBookingRepo(t *testing.T) {
	url := os.Getenv(postgresTestURLEnv)
	if url == "" {
		t.Skipf("%s not set", postgresTestURLEnv)
	}
	require.NoError(t, db.RunMigrations(url))

	pg := postgres.NewPostgresDB(url)
	require.NoError(t, pg.Connect())
	t.Cleanup(func() { _ = pg.Disconnect() })

	_, err := pg.Conn.ExecContext(context.Background(), `TRUNCATE bookings, booking_sequence`)
	require.NoError(t, err)

	repo := NewPostgresBookingRepo(pg.Conn)
	exerciseBookingStore(t, repo, repo)
}

func TestMongoBookingRepo(t *testing.T) {
	url := os.Getenv(mongoTestURLEnv)
	if url == "" {
		t.Skipf("%s not set", mongoTestURLEnv)
	}

	m := mongodb.NewMongoDB(url, fmt.Sprintf("lrbooking_test_%d", time.Now().UnixNano()))
	require.NoError(t, m.Connect())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.Client.Database(m.Database).Drop(ctx)
		_ = m.Disconnect()
	})

	repo := NewMongoBookingRepo(m.Client, m.Database)
	exerciseBookingStore(t, repo, repo)
}
