package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore"
)

// Store is an in-process SearchProvider for demos and tests. Ranking is
// token overlap rather than embeddings, which is enough to drive the
// pipeline deterministically without a database.
type Store struct {
	mu         sync.RWMutex
	collection string
	docs       []store.Document
}

var _ vectorstore.SearchProvider = &Store{}

func NewStore(collection string) *Store {
	return &Store{collection: collection}
}

func (s *Store) Collection() string {
	return s.collection
}

// Add appends documents to the store.
func (s *Store) Add(docs ...store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
}

func (s *Store) Search(ctx context.Context, query string, k int) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = 5
	}

	queryTokens := tokenize(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		doc   store.Document
		score float64
		order int
	}
	results := make([]scored, 0, len(s.docs))
	for i, doc := range s.docs {
		score := overlap(queryTokens, tokenize(doc.Content))
		if score == 0 {
			continue
		}
		d := doc
		d.Score = score
		results = append(results, scored{doc: d, score: score, order: i})
	}

	// Stable by insertion order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > k {
		results = results[:k]
	}
	docs := make([]store.Document, len(results))
	for i, r := range results {
		docs[i] = r.doc
	}
	return docs, nil
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?()[]\"'")
		if len(tok) > 2 {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

func overlap(query, doc map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for tok := range query {
		if _, ok := doc[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}
