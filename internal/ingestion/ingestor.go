package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"grant-assistant-be/internal/model"
	"grant-assistant-be/internal/repository/contract"
	"grant-assistant-be/pkg/embedding"
	"grant-assistant-be/pkg/rag/crossdoc"
	"grant-assistant-be/pkg/utils"

	"github.com/pgvector/pgvector-go"
)

// Chunking parameters, sized so a chunk stays well inside embedding
// context limits.
const (
	chunkSize    = 1500
	chunkOverlap = 200
)

// Result summarizes one ingested document.
type Result struct {
	Source        string
	Collection    string
	PagesRead     int
	ChunksWritten int
}

// Ingestor turns PDF files into embedded chunks in the vector table.
type Ingestor struct {
	repo     contract.DocumentChunkRepository
	embedder embedding.EmbeddingProvider
	logger   *log.Logger
}

func NewIngestor(repo contract.DocumentChunkRepository, embedder embedding.EmbeddingProvider, logger *log.Logger) *Ingestor {
	return &Ingestor{
		repo:     repo,
		embedder: embedder,
		logger:   logger,
	}
}

// IngestPDF extracts, chunks, embeds and stores one document. With
// reingest set, previously stored chunks for the same source are
// replaced instead of duplicated.
func (in *Ingestor) IngestPDF(ctx context.Context, path, collection string, reingest bool) (*Result, error) {
	pages, err := ExtractPages(path)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(path)
	in.logger.Printf("[INGEST] processing %s (%d pages)", filename, len(pages))

	var chunks []*model.DocumentChunk
	for _, page := range pages {
		pieces := utils.SplitText(page.Text, chunkSize, chunkOverlap)
		for i, piece := range pieces {
			res, err := in.embedder.Generate(piece, embedding.TaskRetrievalDocument)
			if err != nil {
				return nil, fmt.Errorf("embed %s page %d chunk %d: %w", filename, page.Number, i, err)
			}

			chunk := &model.DocumentChunk{
				Collection:   collection,
				Content:      piece,
				Embedding:    pgvector.NewVector(res.Embedding.Values),
				Source:       path,
				Filename:     filename,
				PageNumber:   page.Number,
				DocumentType: classifyDocumentType(filename),
				ChunkIndex:   i,
			}
			switch collection {
			case model.CollectionGrants:
				chunk.GrantGroup = crossdoc.GrantGroupFromFilename(filename)
			case model.CollectionDrugs:
				chunk.DrugName = drugNameFromFilename(filename)
			}
			chunks = append(chunks, chunk)
		}
	}

	if reingest {
		if err := in.repo.DeleteBySource(ctx, collection, path); err != nil {
			return nil, fmt.Errorf("delete old chunks for %s: %w", path, err)
		}
	}

	if len(chunks) > 0 {
		if err := in.repo.CreateBulk(ctx, chunks); err != nil {
			return nil, fmt.Errorf("store chunks for %s: %w", path, err)
		}
	}

	in.logger.Printf("[INGEST] stored %d chunks for %s collection=%s", len(chunks), filename, collection)
	return &Result{
		Source:        path,
		Collection:    collection,
		PagesRead:     len(pages),
		ChunksWritten: len(chunks),
	}, nil
}

// IngestDir walks a directory and ingests every PDF in it. Failures are
// logged per file so one bad document does not stop the batch.
func (in *Ingestor) IngestDir(ctx context.Context, dir, collection string, reingest bool) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir %s: %w", dir, err)
	}

	var results []*Result
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		result, err := in.IngestPDF(ctx, filepath.Join(dir, entry.Name()), collection, reingest)
		if err != nil {
			in.logger.Printf("[INGEST] skipping %s: %v", entry.Name(), err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// drugNameFromFilename takes the file base name as the drug label, the
// convention of the drug leaflet dumps.
func drugNameFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(name, "_", " ")
}
