package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"grant-assistant-be/pkg/store"
)

func TestTrackerExecute(t *testing.T) {
	tracker := NewTracker()

	state := store.NewQueryState("budget question", "s1")
	state.QAResponse = "the answer"
	state.RetrievedDocuments = []store.Document{
		{
			Content: "budget details for the women integration call",
			Meta:    store.DocumentMeta{Source: "data/raw/AMIF-2025-WOMEN_call-fiche.pdf", PageNumber: 3, ChunkIndex: 2},
			Score:   0.91,
		},
		{
			// Same source and page, different chunk: deduplicated.
			Content: "more budget details",
			Meta:    store.DocumentMeta{Source: "data/raw/AMIF-2025-WOMEN_call-fiche.pdf", PageNumber: 3, ChunkIndex: 3},
			Score:   0.88,
		},
		{
			// Same source, different page: kept.
			Content: "personnel cost rules",
			Meta:    store.DocumentMeta{Source: "data/raw/AMIF-2025-WOMEN_call-fiche.pdf", PageNumber: 7},
		},
		{
			Content: "faq entry",
			Meta:    store.DocumentMeta{Source: "", Filename: "faq.pdf"},
		},
	}

	tracker.Execute(context.Background(), state)

	assert.True(t, state.SourceTrackingPerformed)
	assert.Equal(t, "the answer", state.CitedResponse)
	assert.Len(t, state.Sources, 3)

	first := state.Sources[0]
	assert.Equal(t, "AMIF-2025-WOMEN_call-fiche", first.CleanSource)
	assert.Equal(t, "Page 3", first.PageDisplay)
	assert.Equal(t, "data/raw/AMIF-2025-WOMEN_call-fiche.pdf", first.SourcePath)
	assert.Equal(t, 2, first.ChunkIndex, "first occurrence wins")
	assert.Equal(t, 0.91, first.SimilarityScore)
	assert.Equal(t, "budget details for the women integration call...", first.ContentPreview)

	assert.Equal(t, "Page 7", state.Sources[1].PageDisplay)

	// Missing source falls back to the filename, missing page renders unknown.
	assert.Equal(t, "faq.pdf", state.Sources[2].CleanSource)
	assert.Equal(t, "Page unknown", state.Sources[2].PageDisplay)
}

func TestTrackerNoDocuments(t *testing.T) {
	tracker := NewTracker()

	state := store.NewQueryState("hello", "s1")
	state.QAResponse = "out of scope"

	tracker.Execute(context.Background(), state)

	assert.True(t, state.SourceTrackingPerformed)
	assert.NotNil(t, state.Sources)
	assert.Empty(t, state.Sources)
	assert.Equal(t, "out of scope", state.CitedResponse)
}

func TestPreviewTruncation(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}

	got := preview(string(long))
	assert.Len(t, got, 103) // 100 chars + "..."
}
