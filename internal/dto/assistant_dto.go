package dto

type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

type CitationDTO struct {
	Source          string  `json:"source"`
	Page            string  `json:"page"`
	SourcePath      string  `json:"source_path"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
	ContentPreview  string  `json:"content_preview"`
}

type CrossDocumentDTO struct {
	GrantGroups    map[string]int `json:"grant_groups,omitempty"`
	Comparison     string         `json:"comparison,omitempty"`
	GrantsAnalyzed int            `json:"grants_analyzed"`
	Insights       string         `json:"insights,omitempty"`
}

type QueryResponse struct {
	SessionID        string            `json:"session_id"`
	Answer           string            `json:"answer"`
	DetectedLanguage string            `json:"detected_language"`
	Citations        []CitationDTO     `json:"citations"`
	CrossDocument    *CrossDocumentDTO `json:"cross_document,omitempty"`
	DocumentsUsed    int               `json:"documents_used"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}

type HistoryEntryDTO struct {
	Role             string   `json:"role"`
	Content          string   `json:"content"`
	Timestamp        string   `json:"timestamp"`
	TopicKeywords    []string `json:"topic_keywords,omitempty"`
	GrantTypes       []string `json:"grant_types_mentioned,omitempty"`
	Complexity       string   `json:"query_complexity,omitempty"`
	Theme            string   `json:"semantic_theme,omitempty"`
	SourcesCount     int      `json:"sources_count"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}

type HistoryResponse struct {
	SessionID string            `json:"session_id"`
	Entries   []HistoryEntryDTO `json:"entries"`
}
