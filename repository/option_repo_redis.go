package repository

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisOptionStore keeps option lists and autocomplete history in Redis sets.
type RedisOptionStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisOptionStore(client *redis.Client, prefix string) *RedisOptionStore {
	return &RedisOptionStore{Client: client, Prefix: prefix}
}

func (s *RedisOptionStore) key(k string) string {
	return s.Prefix + "options:" + k
}

// List returns the members sorted, since sets carry no order.
func (s *RedisOptionStore) List(ctx context.Context, key string) ([]string, error) {
	values, err := s.Client.SMembers(ctx, s.key(key)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(values)
	return values, nil
}

func (s *RedisOptionStore) Add(ctx context.Context, key, value string) error {
	return s.Client.SAdd(ctx, s.key(key), value).Err()
}
