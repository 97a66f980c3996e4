package contract

import (
	"context"

	"grant-assistant-be/internal/model"
)

// ScoredChunk wraps a DocumentChunk with its cosine similarity to the query
type ScoredChunk struct {
	Chunk      *model.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *model.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*model.DocumentChunk) error
	// DeleteBySource removes every chunk of one ingested file, used for reingestion.
	DeleteBySource(ctx context.Context, collection, source string) error
	Count(ctx context.Context, collection string) (int64, error)
	// SearchSimilarWithScore returns the top chunks of a collection ranked by
	// cosine similarity to the query embedding.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, collection string) ([]*ScoredChunk, error)
}
