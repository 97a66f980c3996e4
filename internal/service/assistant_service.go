package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"grant-assistant-be/internal/dto"
	"grant-assistant-be/internal/metrics"
	"grant-assistant-be/internal/repository/conversation"
	"grant-assistant-be/internal/repository/memory"
	"grant-assistant-be/pkg/events"
	pktNats "grant-assistant-be/pkg/nats"
	"grant-assistant-be/pkg/rag/supervisor"
	"grant-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// IAssistantService defines the grant assistant service interface
type IAssistantService interface {
	Ask(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error)
	History(ctx context.Context, sessionID string) (*dto.HistoryResponse, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

// assistantService runs queries through the pipeline and keeps the
// conversation memory current.
type assistantService struct {
	pipeline       *supervisor.Supervisor
	sessionRepo    *memory.SessionRepository
	historyStore   *conversation.HistoryStore
	metrics        *metrics.Metrics
	eventPublisher *pktNats.Publisher
	pipelineLogger *log.Logger
}

func NewAssistantService(
	pipeline *supervisor.Supervisor,
	sessionRepo *memory.SessionRepository,
	historyStore *conversation.HistoryStore,
	m *metrics.Metrics,
	eventPublisher *pktNats.Publisher,
	pipelineLogger *log.Logger,
) IAssistantService {
	return &assistantService{
		pipeline:       pipeline,
		sessionRepo:    sessionRepo,
		historyStore:   historyStore,
		metrics:        m,
		eventPublisher: eventPublisher,
		pipelineLogger: pipelineLogger,
	}
}

// NewPipelineLogger opens the dedicated pipeline trace log. Falls back
// to stdout when the file cannot be opened.
func NewPipelineLogger(logPath string) *log.Logger {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (as *assistantService) Ask(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state := store.NewQueryState(request.Query, sessionID)
	start := time.Now()

	if err := as.pipeline.Run(ctx, state); err != nil {
		return nil, fmt.Errorf("run query pipeline: %w", err)
	}
	elapsed := time.Since(start)

	as.metrics.QueriesTotal.WithLabelValues("grant", string(state.DetectedLanguage)).Inc()
	as.sessionRepo.Touch(sessionID, request.Query)

	answer := state.CitedResponse
	if answer == "" {
		answer = state.QAResponse
	}

	as.remember(state, answer, elapsed)
	as.publishEvent(ctx, state, elapsed)

	return as.toResponse(state, answer, sessionID, elapsed), nil
}

// remember appends both turns to the Redis history. Memory is best
// effort: failures are logged and never surface to the caller.
func (as *assistantService) remember(state *store.QueryState, answer string, elapsed time.Duration) {
	userCtx := conversation.ExtractContext(state.Query)
	queryHash := conversation.QueryHash(state.Query)
	now := time.Now()

	userEntry := &store.MemoryEntry{
		ID:            fmt.Sprintf("user_%s_%s", now.Format("20060102_150405"), queryHash[:8]),
		Role:          "user",
		Content:       state.Query,
		Timestamp:     now,
		SessionID:     state.SessionID,
		QueryHash:     queryHash,
		TopicKeywords: userCtx.TopicKeywords,
		GrantTypes:    userCtx.GrantTypes,
		Complexity:    userCtx.Complexity,
		Theme:         userCtx.Theme,
	}

	assistantCtx := conversation.ExtractContext(answer)
	assistantEntry := &store.MemoryEntry{
		ID:            fmt.Sprintf("assistant_%s", now.Format("20060102_150405")),
		Role:          "assistant",
		Content:       answer,
		Timestamp:     now,
		SessionID:     state.SessionID,
		TopicKeywords: assistantCtx.TopicKeywords,
		GrantTypes:    assistantCtx.GrantTypes,
		Complexity:    assistantCtx.Complexity,
		Theme:         assistantCtx.Theme,
		SourcesCount:  len(state.Sources),
		ElapsedMs:     elapsed.Milliseconds(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, entry := range []*store.MemoryEntry{userEntry, assistantEntry} {
			if err := as.historyStore.Append(ctx, entry); err != nil {
				as.pipelineLogger.Printf("[MEMORY] append failed for session %s: %v", state.SessionID, err)
				return
			}
		}
	}()
}

func (as *assistantService) publishEvent(ctx context.Context, state *store.QueryState, elapsed time.Duration) {
	if as.eventPublisher == nil {
		return
	}
	evt := events.NewQueryAnswered(
		state.SessionID,
		string(state.DetectedLanguage),
		state.GrantTypesDetected,
		len(state.RetrievedDocuments),
		len(state.Sources),
		elapsed,
	)
	if err := as.eventPublisher.Publish(ctx, evt); err != nil {
		as.pipelineLogger.Printf("[EVENTS] publish failed for session %s: %v", state.SessionID, err)
	}
}

func (as *assistantService) toResponse(state *store.QueryState, answer, sessionID string, elapsed time.Duration) *dto.QueryResponse {
	citations := make([]dto.CitationDTO, 0, len(state.Sources))
	for _, c := range state.Sources {
		citations = append(citations, dto.CitationDTO{
			Source:          c.CleanSource,
			Page:            c.PageDisplay,
			SourcePath:      c.SourcePath,
			ChunkIndex:      c.ChunkIndex,
			SimilarityScore: c.SimilarityScore,
			ContentPreview:  c.ContentPreview,
		})
	}

	var crossDoc *dto.CrossDocumentDTO
	if analysis := state.CrossDocumentAnalysis; analysis != nil && analysis.TotalGrantsAnalyzed > 0 {
		crossDoc = &dto.CrossDocumentDTO{
			GrantGroups:    analysis.GrantGroups,
			Comparison:     analysis.Comparison.Analysis,
			GrantsAnalyzed: analysis.TotalGrantsAnalyzed,
			Insights:       analysis.SynthesizedAnswer,
		}
	}

	return &dto.QueryResponse{
		SessionID:        sessionID,
		Answer:           answer,
		DetectedLanguage: string(state.DetectedLanguage),
		Citations:        citations,
		CrossDocument:    crossDoc,
		DocumentsUsed:    len(state.RetrievedDocuments),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}

func (as *assistantService) History(ctx context.Context, sessionID string) (*dto.HistoryResponse, error) {
	entries, err := as.historyStore.Recent(ctx, sessionID, 50)
	if err != nil {
		return nil, err
	}

	response := &dto.HistoryResponse{
		SessionID: sessionID,
		Entries:   make([]dto.HistoryEntryDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, dto.HistoryEntryDTO{
			Role:             entry.Role,
			Content:          entry.Content,
			Timestamp:        entry.Timestamp.Format(time.RFC3339),
			TopicKeywords:    entry.TopicKeywords,
			GrantTypes:       entry.GrantTypes,
			Complexity:       entry.Complexity,
			Theme:            entry.Theme,
			SourcesCount:     entry.SourcesCount,
			ProcessingTimeMs: entry.ElapsedMs,
		})
	}
	return response, nil
}

func (as *assistantService) ClearHistory(ctx context.Context, sessionID string) error {
	as.sessionRepo.Delete(sessionID)
	return as.historyStore.Clear(ctx, sessionID)
}
