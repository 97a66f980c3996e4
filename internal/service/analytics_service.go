package service

import (
	"context"

	"grant-assistant-be/internal/pkg/logger"
	"grant-assistant-be/pkg/events"
	pktNats "grant-assistant-be/pkg/nats"
)

type IAnalyticsService interface {
	Start() error
}

// analyticsService consumes pipeline events off NATS and writes them to
// the analytics log. It runs as a durable consumer so events published
// while the service is down are replayed.
type analyticsService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAnalyticsService(subscriber *pktNats.Subscriber, log logger.ILogger) IAnalyticsService {
	return &analyticsService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (as *analyticsService) Start() error {
	if err := as.subscriber.Subscribe("events.query.answered", "analytics-queries", as.record); err != nil {
		return err
	}
	return as.subscriber.Subscribe("events.document.ingested", "analytics-ingest", as.record)
}

func (as *analyticsService) record(ctx context.Context, event events.Event) error {
	as.logger.Info("analytics", event.EventType(), event.Payload())
	return nil
}
