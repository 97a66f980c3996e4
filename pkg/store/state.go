package store

// Theme is a domain keyword found across the retrieved documents.
type Theme struct {
	Theme     string `json:"theme"`
	Frequency int    `json:"frequency"`
}

// Relationships summarizes how the retrieved documents relate to each other.
type Relationships struct {
	DocumentTypes map[string]int `json:"document_types"`
	CommonThemes  []Theme        `json:"common_themes"`
}

// Comparison types produced by the cross-document reasoner.
const (
	ComparisonSingleGrant = "single_grant"
	ComparisonCrossGrant  = "cross_grant"
	ComparisonError       = "error"
)

// Comparison is the result of the cross-grant comparison step.
type Comparison struct {
	Type           string   `json:"comparison_type"`
	Analysis       string   `json:"analysis"`
	GrantsCompared []string `json:"grants_compared,omitempty"`
	TotalDocuments int      `json:"total_documents,omitempty"`
}

// CrossDocumentAnalysis is written once by the cross-document reasoner.
// SynthesisFailed is set instead of raising when the synthesis LLM call
// fails, so downstream formatting can skip a degraded synthesis cleanly.
type CrossDocumentAnalysis struct {
	GrantGroups           map[string]int `json:"grant_groups"`
	Relationships         Relationships  `json:"relationships"`
	Comparison            Comparison     `json:"comparison"`
	SynthesizedAnswer     string         `json:"synthesized_answer"`
	SynthesisFailed       bool           `json:"synthesis_failed,omitempty"`
	TotalGrantsAnalyzed   int            `json:"total_grants_analyzed"`
	CrossDocumentInsights int            `json:"cross_document_insights"`

	// Analysis holds the degraded-path note when there was nothing to analyze.
	Analysis string `json:"analysis,omitempty"`
}

// QueryState is the shared mutable state one query flows through. It is
// created per request, mutated in place by each pipeline step, and
// discarded once the terminal response is returned.
//
// Each step writes its own fields exactly once and flips its own
// completion flag; the flags are monotonic within a request and are the
// only routing input the supervisor looks at.
type QueryState struct {
	Query     string
	SessionID string

	DetectedLanguage   Language
	GrantTypesDetected []string

	RetrievedDocuments    []Document
	CrossDocumentAnalysis *CrossDocumentAnalysis
	QAResponse            string
	Sources               []Citation
	CitedResponse         string

	RetrievalPerformed      bool
	CrossDocumentPerformed  bool
	QAPerformed             bool
	SourceTrackingPerformed bool
}

// NewQueryState builds the initial state for one query.
func NewQueryState(query, sessionID string) *QueryState {
	return &QueryState{
		Query:     query,
		SessionID: sessionID,
	}
}
