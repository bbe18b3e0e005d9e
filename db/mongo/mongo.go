package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database string
	Ctx      context.Context
	Cancel   context.CancelFunc
	URL      string
}

func NewMongoDB(url, database string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return &MongoDB{
		Database: database,
		Ctx:      ctx,
		Cancel:   cancel,
		URL:      url,
	}
}

func (m *MongoDB) Connect() error {
	opts := options.Client().
		ApplyURI(m.URL).
		SetAppName("lrbooking").
		SetMaxPoolSize(20)
	client, err := mongo.Connect(m.Ctx, opts)
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(m.Ctx, readpref.Primary())
}

// Disconnect uses a fresh context; the connect context may already be expired.
func (m *MongoDB) Disconnect() error {
	m.Cancel()
	if m.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}
