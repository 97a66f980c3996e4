package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grant-assistant-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

// HistoryStore persists per-session conversation entries in Redis lists
// so history survives restarts and is shared across instances. Every
// write trims the list to the configured limit and refreshes the TTL.
type HistoryStore struct {
	rdb   *redis.Client
	limit int
	ttl   time.Duration
}

func NewHistoryStore(rdb *redis.Client, limit int, ttl time.Duration) *HistoryStore {
	return &HistoryStore{
		rdb:   rdb,
		limit: limit,
		ttl:   ttl,
	}
}

func historyKey(sessionID string) string {
	return "conversation:" + sessionID
}

func (s *HistoryStore) Append(ctx context.Context, entry *store.MemoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal memory entry: %w", err)
	}

	key := historyKey(entry.SessionID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.limit), -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append conversation entry: %w", err)
	}
	return nil
}

// Recent returns up to n newest entries in chronological order.
func (s *HistoryStore) Recent(ctx context.Context, sessionID string, n int) ([]*store.MemoryEntry, error) {
	raw, err := s.rdb.LRange(ctx, historyKey(sessionID), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read conversation history: %w", err)
	}

	entries := make([]*store.MemoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry store.MemoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip entries written by an older schema rather than
			// failing the whole read.
			continue
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (s *HistoryStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear conversation history: %w", err)
	}
	return nil
}
