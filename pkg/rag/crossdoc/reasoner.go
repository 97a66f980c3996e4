package crossdoc

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/store"
)

// Bilingual theme vocabulary for the relationship analysis.
var keyThemes = []string{
	"eligibility", "budget", "personnel", "cost", "application",
	"deadline", "criteria", "evaluation", "implementation",
	"uygunluk", "bütçe", "personel", "maliyet", "başvuru",
	"kriterler", "değerlendirme", "uygulama",
}

var themePatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(keyThemes))
	for _, theme := range keyThemes {
		patterns[theme] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(theme) + `\b`)
	}
	return patterns
}()

const comparisonPromptTemplate = `You are analyzing multiple AMIF grant programs for comparison.

Grant Groups Available:
%s

User Query: %s

Please provide a detailed comparison focusing on:
1. Key differences between grants
2. Eligibility criteria variations
3. Budget allocation differences
4. Target group distinctions
5. Implementation requirements

Respond in the same language as the query.

Comparison Analysis:`

const synthesisPromptTemplate = `You are analyzing information from multiple AMIF grant documents to provide a comprehensive answer.

Document Groups:
%s

User Question: %s

Please synthesize information from across all documents to provide:
1. A comprehensive answer based on ALL relevant documents
2. Identification of any conflicting information between documents
3. Gaps where information might be missing
4. Cross-references between related information in different documents

Important:
- Respond in the same language as the question
- Clearly indicate which documents support each piece of information
- Highlight any discrepancies or complementary information
- Provide a holistic view that combines insights from multiple sources

Synthesized Answer:`

// Reasoner runs the cross-document analysis: grant grouping,
// relationship analysis, cross-grant comparison and synthesis.
type Reasoner struct {
	llm    llm.LLMProvider
	logger *log.Logger
}

func NewReasoner(provider llm.LLMProvider, logger *log.Logger) *Reasoner {
	return &Reasoner{
		llm:    provider,
		logger: logger,
	}
}

func (r *Reasoner) Name() string {
	return "cross_document"
}

// Execute writes CrossDocumentAnalysis and marks the step performed.
// LLM failures degrade: the comparison carries an error tag and the
// synthesis flips SynthesisFailed, but the step never raises.
func (r *Reasoner) Execute(ctx context.Context, state *store.QueryState) {
	defer func() { state.CrossDocumentPerformed = true }()

	if len(state.RetrievedDocuments) == 0 || state.Query == "" {
		state.CrossDocumentAnalysis = &store.CrossDocumentAnalysis{
			Analysis: "Insufficient documents for cross-document analysis",
		}
		return
	}

	r.logger.Printf("[CROSSDOC] Analyzing %d documents", len(state.RetrievedDocuments))

	groups := ExtractGrantGroups(state.RetrievedDocuments)
	relationships := AnalyzeRelationships(state.RetrievedDocuments)
	comparison := r.compareGrants(ctx, groups, state.Query)
	answer, synthesisFailed := r.synthesize(ctx, groups, state.Query)

	groupCounts := make(map[string]int, len(groups))
	for _, g := range groups {
		groupCounts[g.ID] = len(g.Documents)
	}

	state.CrossDocumentAnalysis = &store.CrossDocumentAnalysis{
		GrantGroups:           groupCounts,
		Relationships:         relationships,
		Comparison:            comparison,
		SynthesizedAnswer:     answer,
		SynthesisFailed:       synthesisFailed,
		TotalGrantsAnalyzed:   len(groups),
		CrossDocumentInsights: len(relationships.CommonThemes),
	}

	r.logger.Printf("[CROSSDOC] %d grant groups, %d common themes", len(groups), len(relationships.CommonThemes))
}

// AnalyzeRelationships counts document types and whole-word theme
// frequencies across all retrieved content. Only themes that actually
// occur are reported.
func AnalyzeRelationships(documents []store.Document) store.Relationships {
	relationships := store.Relationships{
		DocumentTypes: make(map[string]int),
	}

	var contents []string
	for _, doc := range documents {
		relationships.DocumentTypes[IdentifyDocumentType(doc.Meta.Filename)]++
		contents = append(contents, doc.Content)
	}
	allContent := strings.Join(contents, " ")

	for _, theme := range keyThemes {
		count := len(themePatterns[theme].FindAllStringIndex(allContent, -1))
		if count > 0 {
			relationships.CommonThemes = append(relationships.CommonThemes, store.Theme{
				Theme:     theme,
				Frequency: count,
			})
		}
	}

	return relationships
}

// compareGrants runs the cross-grant comparison. A single group
// short-circuits without touching the LLM.
func (r *Reasoner) compareGrants(ctx context.Context, groups []Group, query string) store.Comparison {
	if len(groups) < 2 {
		return store.Comparison{
			Type:     store.ComparisonSingleGrant,
			Analysis: "Single grant analysis",
		}
	}

	var summaries []string
	grantIDs := make([]string, 0, len(groups))
	totalDocs := 0
	for _, g := range groups {
		grantIDs = append(grantIDs, g.ID)
		totalDocs += len(g.Documents)

		preview := ""
		if len(g.Documents) > 0 {
			preview = truncate(g.Documents[0].Content, 300) + "..."
		}
		summaries = append(summaries, fmt.Sprintf(`
Grant ID: %s
Document Types: %s
Document Count: %d
Content Preview: %s
`, g.ID, strings.Join(uniqueDocTypes(g.Documents), ", "), len(g.Documents), preview))
	}

	prompt := fmt.Sprintf(comparisonPromptTemplate, strings.Join(summaries, "\n"), query)

	analysis, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		r.logger.Printf("[ERROR] Grant comparison failed: %v", err)
		return store.Comparison{
			Type:           store.ComparisonError,
			Analysis:       fmt.Sprintf("Comparison failed: %v", err),
			GrantsCompared: grantIDs,
		}
	}

	return store.Comparison{
		Type:           store.ComparisonCrossGrant,
		Analysis:       analysis,
		GrantsCompared: grantIDs,
		TotalDocuments: totalDocs,
	}
}

// synthesize asks the LLM for one answer spanning all grant groups.
// Failure is reported through the boolean, never as an error.
func (r *Reasoner) synthesize(ctx context.Context, groups []Group, query string) (string, bool) {
	var blocks []string
	for _, g := range groups {
		var b strings.Builder
		fmt.Fprintf(&b, "\n--- Grant Group: %s ---\n", g.ID)
		for i, doc := range g.Documents {
			filename := doc.Meta.Filename
			if filename == "" {
				filename = fmt.Sprintf("Document %d", i+1)
			}
			content := doc.Content
			if len(content) > 500 {
				content = truncate(content, 500) + "..."
			}
			fmt.Fprintf(&b, "\nFile: %s\nContent: %s\n", filename, content)
		}
		blocks = append(blocks, b.String())
	}

	prompt := fmt.Sprintf(synthesisPromptTemplate, strings.Join(blocks, "\n"), query)

	answer, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		r.logger.Printf("[ERROR] Cross-document synthesis failed: %v", err)
		return "", true
	}
	return answer, false
}

func uniqueDocTypes(docs []store.Document) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, doc := range docs {
		t := IdentifyDocumentType(doc.Meta.Filename)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// truncate cuts a string at n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
