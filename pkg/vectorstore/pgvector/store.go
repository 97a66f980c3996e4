package pgvector

import (
	"context"
	"fmt"
	"log"

	"grant-assistant-be/internal/repository/contract"
	"grant-assistant-be/pkg/embedding"
	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore"
)

// Store serves similarity search for one chunk collection out of Postgres.
type Store struct {
	repo       contract.DocumentChunkRepository
	embedder   embedding.EmbeddingProvider
	collection string
	logger     *log.Logger
}

var _ vectorstore.SearchProvider = &Store{}

func NewStore(repo contract.DocumentChunkRepository, embedder embedding.EmbeddingProvider, collection string, logger *log.Logger) *Store {
	return &Store{
		repo:       repo,
		embedder:   embedder,
		collection: collection,
		logger:     logger,
	}
}

func (s *Store) Collection() string {
	return s.collection
}

func (s *Store) Search(ctx context.Context, query string, k int) ([]store.Document, error) {
	resp, err := s.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.repo.SearchSimilarWithScore(ctx, resp.Embedding.Values, k, s.collection)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	docs := make([]store.Document, 0, len(scored))
	for _, sc := range scored {
		docs = append(docs, store.Document{
			Content: sc.Chunk.Content,
			Meta: store.DocumentMeta{
				Source:       sc.Chunk.Source,
				Filename:     sc.Chunk.Filename,
				PageNumber:   sc.Chunk.PageNumber,
				GrantGroup:   sc.Chunk.GrantGroup,
				DocumentType: sc.Chunk.DocumentType,
				ChunkIndex:   sc.Chunk.ChunkIndex,
				DrugName:     sc.Chunk.DrugName,
			},
			Score: sc.Similarity,
		})
	}

	s.logger.Printf("[SEARCH] collection=%s k=%d hits=%d", s.collection, k, len(docs))
	return docs, nil
}
