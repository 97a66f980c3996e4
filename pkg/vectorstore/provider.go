package vectorstore

import (
	"context"

	"grant-assistant-be/pkg/store"
)

// SearchProvider is the retrieval contract the pipeline depends on. A
// handle is constructed per collection and injected; nothing in the
// pipeline knows which backend serves it.
type SearchProvider interface {
	// Search embeds the query and returns up to k chunks ranked by similarity.
	Search(ctx context.Context, query string, k int) ([]store.Document, error)

	// Collection names the chunk collection this handle searches.
	Collection() string
}
