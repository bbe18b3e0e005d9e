package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisDB struct {
	Client *goredis.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	Addr   string
}

func NewRedisDB(addr string) *RedisDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &RedisDB{
		Ctx:    ctx,
		Cancel: cancel,
		Addr:   addr,
	}
}

func (r *RedisDB) Connect() error {
	r.Client = goredis.NewClient(&goredis.Options{Addr: r.Addr})
	return r.Client.Ping(r.Ctx).Err()
}

func (r *RedisDB) Disconnect() error {
	r.Cancel()
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *RedisDB) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
