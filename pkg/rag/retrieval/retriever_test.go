package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"grant-assistant-be/pkg/store"
)

type fakeSearch struct {
	results map[string][]store.Document
	err     error
	queries []string
	ks      []int
}

func (f *fakeSearch) Search(ctx context.Context, query string, k int) ([]store.Document, error) {
	f.queries = append(f.queries, query)
	f.ks = append(f.ks, k)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeSearch) Collection() string { return "grant_documents" }

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func doc(source, content string) store.Document {
	return store.Document{
		Content: content,
		Meta:    store.DocumentMeta{Source: source, Filename: source},
	}
}

func TestDetectGrantCategories(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no categories",
			query: "what is the application deadline",
			want:  nil,
		},
		{
			name:  "single category",
			query: "budget for the WOMEN grant",
			want:  []string{"women"},
		},
		{
			name:  "two categories in table order",
			query: "compare health and women grants",
			want:  []string{"women", "health"},
		},
		{
			name:  "turkish keywords",
			query: "çocuklar için dijital eğitim hibesi",
			want:  []string{"children", "digital", "pathways"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectGrantCategories(tt.query))
		})
	}
}

func TestRetrieverSingleSearch(t *testing.T) {
	search := &fakeSearch{results: map[string][]store.Document{
		"what are the eligibility criteria for the grant": {
			doc("data/raw/a.pdf", "eligibility"),
			doc("data/raw/b.pdf", "criteria"),
		},
	}}
	r := NewRetriever(search, testLogger())

	state := store.NewQueryState("what are the eligibility criteria for the grant", "s1")
	r.Execute(context.Background(), state)

	assert.True(t, state.RetrievalPerformed)
	assert.Equal(t, store.LanguageEnglish, state.DetectedLanguage)
	assert.Len(t, state.RetrievedDocuments, 2)
	assert.Equal(t, []int{8}, search.ks)
}

func TestRetrieverMultiSearchDedup(t *testing.T) {
	query := "compare eligibility of women and children grants"
	search := &fakeSearch{results: map[string][]store.Document{
		query: {
			doc("data/raw/women.pdf", "women call"),
			doc("data/raw/shared.pdf", "general"),
		},
		"AMIF-2025 WOMEN grant eligibility criteria budget": {
			doc("data/raw/shared.pdf", "duplicate source"),
			doc("data/raw/women-faq.pdf", "faq"),
		},
		"AMIF-2025 CHILDREN grant eligibility criteria budget": {
			doc("data/raw/children.pdf", "children call"),
		},
	}}
	r := NewRetriever(search, testLogger())

	state := store.NewQueryState(query, "s1")
	r.Execute(context.Background(), state)

	assert.Equal(t, []string{"women", "children"}, state.GrantTypesDetected)
	assert.Equal(t, []int{6, 4, 4}, search.ks)

	// Raw-query results first, duplicate source dropped.
	sources := make([]string, 0, len(state.RetrievedDocuments))
	for _, d := range state.RetrievedDocuments {
		sources = append(sources, d.Meta.Source)
	}
	assert.Equal(t, []string{
		"data/raw/women.pdf",
		"data/raw/shared.pdf",
		"data/raw/women-faq.pdf",
		"data/raw/children.pdf",
	}, sources)
}

func TestRetrieverIrrelevantQuerySkipsSearch(t *testing.T) {
	search := &fakeSearch{}
	r := NewRetriever(search, testLogger())

	state := store.NewQueryState("merhaba", "s1")
	r.Execute(context.Background(), state)

	assert.True(t, state.RetrievalPerformed)
	assert.Empty(t, state.RetrievedDocuments)
	assert.Empty(t, search.queries)
}

func TestRetrieverEmptyQuery(t *testing.T) {
	r := NewRetriever(&fakeSearch{}, testLogger())

	state := store.NewQueryState("", "s1")
	r.Execute(context.Background(), state)

	assert.True(t, state.RetrievalPerformed)
	assert.Equal(t, store.LanguageTurkish, state.DetectedLanguage)
	assert.Empty(t, state.RetrievedDocuments)
}

func TestRetrieverSearchFailure(t *testing.T) {
	search := &fakeSearch{err: errors.New("connection refused")}
	r := NewRetriever(search, testLogger())

	state := store.NewQueryState("what are the eligibility criteria for the grant", "s1")
	r.Execute(context.Background(), state)

	assert.True(t, state.RetrievalPerformed)
	assert.Empty(t, state.RetrievedDocuments)
}
