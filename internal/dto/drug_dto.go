package dto

type DrugQueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

type DrugQueryResponse struct {
	SessionID        string `json:"session_id"`
	Response         string `json:"response"`
	DetectedLanguage string `json:"detected_language"`
	DocumentsUsed    int    `json:"documents_used"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}
