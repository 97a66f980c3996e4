package retrieval

import (
	"context"
	"log"
	"strings"

	"grant-assistant-be/pkg/rag/language"
	"grant-assistant-be/pkg/rag/relevance"
	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore"
)

// Search fan-out sizes. A single search casts a wider net; the
// multi-search splits the budget between the raw query and one
// expanded query per detected category.
const (
	singleSearchK   = 8
	mainSearchK     = 6
	categorySearchK = 4
)

// grantCategories maps a category to the query keywords that signal it.
// Order matters: detected categories are reported and searched in this order.
var grantCategories = []struct {
	Name     string
	Keywords []string
}{
	{"women", []string{"women", "woman", "kadın", "kadınlar", "female", "gender"}},
	{"children", []string{"children", "child", "çocuk", "çocuklar", "youth", "minors"}},
	{"health", []string{"health", "sağlık", "healthcare", "medical", "tıbbi"}},
	{"digital", []string{"digital", "dijital", "technology", "teknoloji", "online"}},
	{"pathways", []string{"pathways", "education", "eğitim", "training", "öğretim"}},
}

// expandedQueries holds the canned per-category search strings.
var expandedQueries = map[string]string{
	"women":    "AMIF-2025 WOMEN grant eligibility criteria budget",
	"children": "AMIF-2025 CHILDREN grant eligibility criteria budget",
	"health":   "AMIF-2025 HEALTH grant eligibility criteria budget",
	"digital":  "AMIF-2025 DIGITAL grant eligibility criteria budget",
	"pathways": "AMIF-2025 PATHWAYS grant eligibility criteria budget",
}

// Retriever finds candidate documents for a query. It owns language
// detection and the relevance gate, so irrelevant small talk never
// reaches the search backend.
type Retriever struct {
	search vectorstore.SearchProvider
	logger *log.Logger
}

func NewRetriever(search vectorstore.SearchProvider, logger *log.Logger) *Retriever {
	return &Retriever{
		search: search,
		logger: logger,
	}
}

func (r *Retriever) Name() string {
	return "document_retriever"
}

// Execute fills DetectedLanguage, GrantTypesDetected and
// RetrievedDocuments. Retrieval is always marked performed, including
// the empty-query, irrelevant-query and backend-failure paths.
func (r *Retriever) Execute(ctx context.Context, state *store.QueryState) {
	defer func() { state.RetrievalPerformed = true }()

	if strings.TrimSpace(state.Query) == "" {
		state.DetectedLanguage = store.LanguageTurkish
		state.RetrievedDocuments = []store.Document{}
		return
	}

	state.DetectedLanguage = language.Detect(state.Query)

	if !relevance.IsRelevant(state.Query, state.DetectedLanguage) {
		r.logger.Printf("[RETRIEVAL] Query not grant-related, skipping search: %q", state.Query)
		state.RetrievedDocuments = []store.Document{}
		return
	}

	state.GrantTypesDetected = DetectGrantCategories(state.Query)

	var (
		docs []store.Document
		err  error
	)
	if len(state.GrantTypesDetected) >= 2 {
		r.logger.Printf("[RETRIEVAL] Multi-category search: %v", state.GrantTypesDetected)
		docs, err = r.multiSearch(ctx, state.Query, state.GrantTypesDetected)
	} else {
		docs, err = r.search.Search(ctx, state.Query, singleSearchK)
	}
	if err != nil {
		r.logger.Printf("[ERROR] Document search failed: %v", err)
		state.RetrievedDocuments = []store.Document{}
		return
	}

	state.RetrievedDocuments = docs
	r.logger.Printf("[RETRIEVAL] %d documents for %q (language=%s)", len(docs), state.Query, state.DetectedLanguage)
}

// DetectGrantCategories returns the grant categories mentioned in the
// query, in table order. Matching is substring over the lowered query.
func DetectGrantCategories(query string) []string {
	queryLower := strings.ToLower(query)

	var detected []string
	for _, cat := range grantCategories {
		for _, kw := range cat.Keywords {
			if strings.Contains(queryLower, kw) {
				detected = append(detected, cat.Name)
				break
			}
		}
	}
	return detected
}

// multiSearch merges the raw-query results with one expanded search per
// category, deduplicating by metadata source. Raw-query results come
// first and the first occurrence of a source wins.
func (r *Retriever) multiSearch(ctx context.Context, query string, categories []string) ([]store.Document, error) {
	var merged []store.Document
	seenSources := make(map[string]struct{})

	mainResults, err := r.search.Search(ctx, query, mainSearchK)
	if err != nil {
		return nil, err
	}
	for _, doc := range mainResults {
		if _, ok := seenSources[doc.Meta.Source]; ok {
			continue
		}
		seenSources[doc.Meta.Source] = struct{}{}
		merged = append(merged, doc)
	}

	for _, cat := range categories {
		searchQuery, ok := expandedQueries[cat]
		if !ok {
			searchQuery = "AMIF-2025 " + strings.ToUpper(cat)
		}

		results, err := r.search.Search(ctx, searchQuery, categorySearchK)
		if err != nil {
			return nil, err
		}
		for _, doc := range results {
			if _, ok := seenSources[doc.Meta.Source]; ok {
				continue
			}
			seenSources[doc.Meta.Source] = struct{}{}
			merged = append(merged, doc)
		}
	}

	return merged, nil
}
