package dto

type IngestRequest struct {
	Path       string `json:"path" validate:"required"`
	Collection string `json:"collection,omitempty"`
	Reingest   bool   `json:"reingest,omitempty"`
}

type IngestResponse struct {
	Source        string `json:"source"`
	Collection    string `json:"collection"`
	PagesRead     int    `json:"pages_read"`
	ChunksWritten int    `json:"chunks_written"`
}

// IngestDocumentPayload is the message body published to the ingest
// topic and consumed by the background worker.
type IngestDocumentPayload struct {
	Path       string `json:"path"`
	Collection string `json:"collection"`
	Reingest   bool   `json:"reingest"`
}
