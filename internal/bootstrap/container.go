package bootstrap

import (
	"context"
	"log"
	"time"

	"grant-assistant-be/internal/config"
	"grant-assistant-be/internal/controller"
	"grant-assistant-be/internal/ingestion"
	"grant-assistant-be/internal/metrics"
	"grant-assistant-be/internal/model"
	"grant-assistant-be/internal/pkg/logger"
	"grant-assistant-be/internal/repository/conversation"
	"grant-assistant-be/internal/repository/implementation"
	"grant-assistant-be/internal/repository/memory"
	"grant-assistant-be/internal/service"
	"grant-assistant-be/pkg/drug"
	"grant-assistant-be/pkg/embedding"
	"grant-assistant-be/pkg/llm/factory"
	pktNats "grant-assistant-be/pkg/nats"
	"grant-assistant-be/pkg/rag/answer"
	"grant-assistant-be/pkg/rag/crossdoc"
	"grant-assistant-be/pkg/rag/retrieval"
	"grant-assistant-be/pkg/rag/sources"
	"grant-assistant-be/pkg/rag/supervisor"
	"grant-assistant-be/pkg/vectorstore/pgvector"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	DrugController      controller.IDrugController
	IngestController    controller.IIngestController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared for the HTTP layer and shutdown
	MetricsRegistry *prometheus.Registry
	NatsPublisher   *pktNats.Publisher
	NatsSubscriber  *pktNats.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := service.NewPipelineLogger(cfg.App.PipelineLogPath)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	sysLogger.Info("bootstrap", "embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
		"model":    cfg.Ai.OllamaModel,
	})

	llmBaseURL := cfg.Ai.LLMBaseURL
	if llmBaseURL == "" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Keys.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("bootstrap", "llm provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Storage
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Memory.SessionTTLMinutes) * time.Minute)

	grantStore := m.WrapSearch(pgvector.NewStore(chunkRepo, embeddingProvider, model.CollectionGrants, pipelineLogger))
	drugStore := m.WrapSearch(pgvector.NewStore(chunkRepo, embeddingProvider, model.CollectionDrugs, pipelineLogger))

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	historyStore := conversation.NewHistoryStore(
		rdb,
		cfg.Memory.HistoryLimit,
		time.Duration(cfg.Memory.HistoryTTLHours)*time.Hour,
	)

	// 6. Query Pipeline
	pipeline := supervisor.NewSupervisor(
		m.WrapStep(retrieval.NewRetriever(grantStore, pipelineLogger)),
		m.WrapStep(crossdoc.NewReasoner(m.WrapLLM(string(supervisor.RouteCrossDocument), llmProvider), pipelineLogger)),
		m.WrapStep(answer.NewSynthesizer(m.WrapLLM(string(supervisor.RouteQA), llmProvider), pipelineLogger)),
		m.WrapStep(sources.NewTracker()),
		pipelineLogger,
	)

	drugAdvisor := drug.NewAdvisor(m.WrapLLM("drug_advisor", llmProvider), drugStore, pipelineLogger)

	// 7. Services
	ingestor := ingestion.NewIngestor(chunkRepo, embeddingProvider, pipelineLogger)
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, ingestor, natsPub)

	assistantService := service.NewAssistantService(pipeline, sessionRepo, historyStore, m, natsPub, pipelineLogger)
	drugService := service.NewDrugService(drugAdvisor, sessionRepo, m)
	ingestService := service.NewIngestService(publisherService, chunkRepo)

	// Analytics worker (consumes pipeline events off NATS)
	if natsSub != nil {
		analyticsLogger := logger.NewIsolatedLogger("logs/analytics.log")
		analyticsService := service.NewAnalyticsService(natsSub, analyticsLogger)
		if err := analyticsService.Start(); err != nil {
			log.Printf("[WARN] Failed to start analytics consumer: %v", err)
		}
	}

	// 8. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		DrugController:      controller.NewDrugController(drugService),
		IngestController:    controller.NewIngestController(ingestService),

		ConsumerService: consumerService,

		MetricsRegistry: registry,
		NatsPublisher:   natsPub,
		NatsSubscriber:  natsSub,
	}
}
