package redis

import (
	"context"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetClient returns the shared client for the configured history store.
func GetClient() *redisv9.Client {
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr:        config.GetRedisAddr(),
			DialTimeout: 2 * time.Second,
		})
	})
	return client
}

// Available pings the server so callers can skip history when Redis is down.
func Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := GetClient().Ping(ctx).Err(); err != nil {
		config.GetLogger().Debugw("Redis not reachable", "addr", config.GetRedisAddr(), "error", err)
		return false
	}
	return true
}

// ResetClientForTest closes and drops the client singleton. Use only in tests.
func ResetClientForTest() {
	if client != nil {
		_ = client.Close()
	}
	once = sync.Once{}
	client = nil
}
