package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fakhrymubarak/weather-cli/internal/config"
	"github.com/fakhrymubarak/weather-cli/internal/model"
	"github.com/fakhrymubarak/weather-cli/internal/redis"
	redisv9 "github.com/redis/go-redis/v9"
)

const historyKey = "weather:history"

// HistoryRepository keeps a bounded, newest-first list of past lookups
type HistoryRepository interface {
	Record(ctx context.Context, entry model.HistoryEntry) error
	Recent(ctx context.Context, n int) ([]model.HistoryEntry, error)
}

// listStore is the subset of the Redis client the history needs
type listStore interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redisv9.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redisv9.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redisv9.StringSliceCmd
}

type historyRepository struct {
	store listStore
	size  int
}

// NewHistoryRepository creates a history backed by the shared Redis client
func NewHistoryRepository() HistoryRepository {
	return &historyRepository{
		store: redis.GetClient(),
		size:  config.GetHistorySize(),
	}
}

// Record pushes entry to the front and trims the list to the configured size
func (r *historyRepository) Record(ctx context.Context, entry model.HistoryEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	if err := r.store.LPush(ctx, historyKey, b).Err(); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	if err := r.store.LTrim(ctx, historyKey, 0, int64(r.size-1)).Err(); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. Entries that fail to decode are skipped.
func (r *historyRepository) Recent(ctx context.Context, n int) ([]model.HistoryEntry, error) {
	if n <= 0 || n > r.size {
		n = r.size
	}
	vals, err := r.store.LRange(ctx, historyKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]model.HistoryEntry, 0, len(vals))
	for _, v := range vals {
		var entry model.HistoryEntry
		if err := json.Unmarshal([]byte(v), &entry); err != nil {
			config.GetLogger().Warnw("Skipping unreadable history entry", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
