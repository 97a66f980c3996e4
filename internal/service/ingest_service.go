package service

import (
	"context"
	"encoding/json"

	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/model"
	"grant-assistant-be/internal/repository/contract"
)

// IIngestService accepts ingest requests and reports corpus size.
type IIngestService interface {
	Enqueue(ctx context.Context, request *dto.IngestRequest) error
	ChunkCounts(ctx context.Context) (map[string]int64, error)
}

type ingestService struct {
	publisher IPublisherService
	chunkRepo contract.DocumentChunkRepository
}

func NewIngestService(publisher IPublisherService, chunkRepo contract.DocumentChunkRepository) IIngestService {
	return &ingestService{
		publisher: publisher,
		chunkRepo: chunkRepo,
	}
}

// Enqueue hands the document to the background consumer; the request
// returns immediately.
func (is *ingestService) Enqueue(ctx context.Context, request *dto.IngestRequest) error {
	collection := request.Collection
	if collection == "" {
		collection = model.CollectionGrants
	}

	payload, err := json.Marshal(dto.IngestDocumentPayload{
		Path:       request.Path,
		Collection: collection,
		Reingest:   request.Reingest,
	})
	if err != nil {
		return err
	}
	return is.publisher.Publish(ctx, payload)
}

func (is *ingestService) ChunkCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 2)
	for _, collection := range []string{model.CollectionGrants, model.CollectionDrugs} {
		n, err := is.chunkRepo.Count(ctx, collection)
		if err != nil {
			return nil, err
		}
		counts[collection] = n
	}
	return counts, nil
}
