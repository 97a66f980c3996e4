package main

import (
	"context"
	"flag"
	"log"
	"os"

	"grant-assistant-be/internal/config"
	"grant-assistant-be/internal/ingestion"
	"grant-assistant-be/internal/model"
	"grant-assistant-be/internal/repository/implementation"
	"grant-assistant-be/pkg/database"
	"grant-assistant-be/pkg/embedding"
)

// Batch loader for the raw document dumps. Points at a directory of
// PDFs and fills the vector table without going through the API.
func main() {
	var (
		dir        string
		collection string
		reingest   bool
	)
	flag.StringVar(&dir, "dir", "", "directory of PDFs to ingest (default: RAW_DOCUMENTS_DIR)")
	flag.StringVar(&collection, "collection", model.CollectionGrants, "target collection (grant_documents | drug_documents)")
	flag.BoolVar(&reingest, "reingest", false, "replace previously ingested chunks for each file")
	flag.Parse()

	cfg := config.Load()
	if dir == "" {
		dir = cfg.App.RawDocumentsDir
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	embedder, err := embedding.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("Error: Failed to initialize embedding provider: %v", err)
	}

	chunkRepo := implementation.NewDocumentChunkRepository(db)
	ingestor := ingestion.NewIngestor(chunkRepo, embedder, log.New(os.Stdout, "", log.LstdFlags))

	results, err := ingestor.IngestDir(context.Background(), dir, collection, reingest)
	if err != nil {
		log.Fatalf("Error: Ingestion failed: %v", err)
	}

	total := 0
	for _, r := range results {
		total += r.ChunksWritten
	}
	log.Printf("Done: %d documents, %d chunks written to %s", len(results), total, collection)
}
