package store

// Language is the closed set of natural languages the assistant understands.
type Language string

const (
	LanguageTurkish Language = "turkish"
	LanguageEnglish Language = "english"
	LanguageItalian Language = "italian"
)

// UnknownGrantSentinel marks chunks whose grant program could not be
// determined at ingestion time. Grouping treats it the same as missing.
const UnknownGrantSentinel = "unknown_grant"

// UnknownGroup is the catch-all grant group for unclassifiable documents.
const UnknownGroup = "UNKNOWN"

// DocumentMeta carries the chunk-level metadata attached by ingestion
// and returned by the vector search backend.
type DocumentMeta struct {
	Source       string `json:"source"`
	Filename     string `json:"filename"`
	PageNumber   int    `json:"page_number"`
	GrantGroup   string `json:"grant_group,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	ChunkIndex   int    `json:"chunk_index"`
	DrugName     string `json:"drug_name,omitempty"`
}

// Document is one retrieved chunk. Content is never empty for documents
// that reach the pipeline; empty pages are filtered at ingestion.
type Document struct {
	Content string       `json:"content"`
	Meta    DocumentMeta `json:"metadata"`
	Score   float64      `json:"similarity_score"`
}

// Citation is a deduplicated source reference surfaced alongside an answer.
// The dedup key is (CleanSource, page number).
type Citation struct {
	CleanSource     string  `json:"clean_source"`
	PageDisplay     string  `json:"page"`
	SourcePath      string  `json:"source_path"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
	ContentPreview  string  `json:"content"`
}
