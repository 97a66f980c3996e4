package sources

import (
	"context"
	"fmt"
	"strings"

	"grant-assistant-be/pkg/store"
)

const previewLength = 100

// Tracker turns the retrieved documents into a deduplicated citation
// list. It runs last and always completes, even with nothing to cite.
type Tracker struct{}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Name() string {
	return "source_tracker"
}

// Execute writes Sources and CitedResponse. Citations live in their own
// list; the answer text is passed through untouched.
func (t *Tracker) Execute(ctx context.Context, state *store.QueryState) {
	state.SourceTrackingPerformed = true

	if len(state.RetrievedDocuments) == 0 {
		state.Sources = []store.Citation{}
		state.CitedResponse = state.QAResponse
		return
	}

	state.Sources = ExtractCitations(state.RetrievedDocuments)
	state.CitedResponse = state.QAResponse
}

// ExtractCitations builds one citation per (clean source, page) pair,
// first occurrence wins.
func ExtractCitations(documents []store.Document) []store.Citation {
	type sourceKey struct {
		cleanSource string
		page        int
	}

	citations := make([]store.Citation, 0, len(documents))
	seen := make(map[sourceKey]struct{})

	for _, doc := range documents {
		cleanSource := cleanSourceName(doc.Meta.Source)
		if cleanSource == "" {
			cleanSource = doc.Meta.Filename
		}

		key := sourceKey{cleanSource: cleanSource, page: doc.Meta.PageNumber}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		pageDisplay := "Page unknown"
		if doc.Meta.PageNumber > 0 {
			pageDisplay = fmt.Sprintf("Page %d", doc.Meta.PageNumber)
		}

		citations = append(citations, store.Citation{
			CleanSource:     cleanSource,
			PageDisplay:     pageDisplay,
			SourcePath:      doc.Meta.Source,
			ChunkIndex:      doc.Meta.ChunkIndex,
			SimilarityScore: doc.Score,
			ContentPreview:  preview(doc.Content),
		})
	}

	return citations
}

func cleanSourceName(source string) string {
	s := strings.ReplaceAll(source, "data/raw/", "")
	return strings.ReplaceAll(s, ".pdf", "")
}

func preview(content string) string {
	if len(content) <= previewLength {
		return content + "..."
	}
	n := previewLength
	for n > 0 && content[n]&0xC0 == 0x80 {
		n--
	}
	return content[:n] + "..."
}
