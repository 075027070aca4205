package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSettingsRepo keeps report preferences in Redis. A zero TTL keeps keys
// forever; otherwise every write renews the expiry.
type RedisSettingsRepo struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisSettingsRepo(client *redis.Client, ttl time.Duration) *RedisSettingsRepo {
	return &RedisSettingsRepo{Client: client, Prefix: "settings:", TTL: ttl}
}

func (r *RedisSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, r.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisSettingsRepo) Set(ctx context.Context, key, value string) error {
	return r.Client.Set(ctx, r.Prefix+key, value, r.TTL).Err()
}
