package implementation

import (
	"context"

	"grant-assistant-be/internal/model"
	"grant-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{db: db}
}

func (r *DocumentChunkRepositoryImpl) Create(ctx context.Context, chunk *model.DocumentChunk) error {
	return r.db.WithContext(ctx).Create(chunk).Error
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*model.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(chunks, 100).Error
}

func (r *DocumentChunkRepositoryImpl) DeleteBySource(ctx context.Context, collection, source string) error {
	return r.db.WithContext(ctx).
		Where("collection = ? AND source = ?", collection, source).
		Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("collection = ?", collection).
		Count(&count).Error
	return count, err
}

// SearchSimilarWithScore ranks chunks by pgvector cosine distance.
// Cosine distance is 1 - cosine_similarity, so the select inverts it
// to expose a 0..1 similarity alongside each row.
func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, collection string) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("collection = ?", collection).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i := range results {
		chunk := results[i].DocumentChunk
		scored[i] = &contract.ScoredChunk{
			Chunk:      &chunk,
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
