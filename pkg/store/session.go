package store

import "time"

// Session is the in-process record of an active conversation. It only
// tracks lightweight counters; the full turn history lives in Redis.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastQuery  string    `json:"last_query"`
	QueryCount int       `json:"query_count"`
}

// MemoryEntry is one remembered turn of a conversation, enriched with
// the context extraction used for topic trends.
type MemoryEntry struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	QueryHash string    `json:"query_hash"`

	TopicKeywords []string `json:"topic_keywords,omitempty"`
	GrantTypes    []string `json:"grant_types_mentioned,omitempty"`
	Complexity    string   `json:"query_complexity,omitempty"` // simple | medium | complex
	Theme         string   `json:"semantic_theme,omitempty"`

	SourcesCount int   `json:"sources_count,omitempty"`
	ElapsedMs    int64 `json:"processing_time_ms,omitempty"`
}
