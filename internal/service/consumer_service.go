package service

import (
	"context"
	"encoding/json"
	"log"

	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/ingestion"
	"grant-assistant-be/internal/model"
	"grant-assistant-be/pkg/events"
	pktNats "grant-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingest topic in the background so document
// uploads never block a request.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	ingestor       *ingestion.Ingestor
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestor *ingestion.Ingestor,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		ingestor:       ingestor,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	collection := payload.Collection
	if collection == "" {
		collection = model.CollectionGrants
	}

	log.Printf("[INFO] Ingesting document %s into %s", payload.Path, collection)

	result, err := cs.ingestor.IngestPDF(ctx, payload.Path, collection, payload.Reingest)
	if err != nil {
		log.Printf("[ERROR] Failed to ingest %s: %v", payload.Path, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewDocumentIngested(result.Collection, result.Source, result.ChunksWritten)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish ingest event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Document processed: %d chunks from %s", result.ChunksWritten, payload.Path)
	msg.Ack()
}
