package service

import (
	"context"
	"time"

	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/metrics"
	"grant-assistant-be/internal/repository/memory"
	"grant-assistant-be/pkg/drug"

	"github.com/google/uuid"
)

// IDrugService defines the medication assistant service interface
type IDrugService interface {
	Advise(ctx context.Context, request *dto.DrugQueryRequest) (*dto.DrugQueryResponse, error)
}

type drugService struct {
	advisor     *drug.Advisor
	sessionRepo *memory.SessionRepository
	metrics     *metrics.Metrics
}

func NewDrugService(advisor *drug.Advisor, sessionRepo *memory.SessionRepository, m *metrics.Metrics) IDrugService {
	return &drugService{
		advisor:     advisor,
		sessionRepo: sessionRepo,
		metrics:     m,
	}
}

func (ds *drugService) Advise(ctx context.Context, request *dto.DrugQueryRequest) (*dto.DrugQueryResponse, error) {
	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	start := time.Now()
	advice := ds.advisor.Advise(ctx, request.Query)
	elapsed := time.Since(start)

	ds.metrics.QueriesTotal.WithLabelValues("drug", string(advice.Language)).Inc()
	ds.sessionRepo.Touch(sessionID, request.Query)

	return &dto.DrugQueryResponse{
		SessionID:        sessionID,
		Response:         advice.Response,
		DetectedLanguage: string(advice.Language),
		DocumentsUsed:    len(advice.Documents),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}, nil
}
