package broker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// InitRedis connects the shared client and verifies it with a PING.
func InitRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	rdb = client
	return client, nil
}

// GetRedisClient returns the shared client, or nil when Redis is not configured.
func GetRedisClient() *redis.Client {
	return rdb
}

// CloseRedis closes the shared client if one was opened.
func CloseRedis() error {
	if rdb == nil {
		return nil
	}
	err := rdb.Close()
	rdb = nil
	return err
}
