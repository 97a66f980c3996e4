package answer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/store"
)

// Small-talk tokens that short-circuit very short queries.
var simpleGreetings = []string{"hello", "hi", "hey", "merhaba", "selam", "ciao", "salve"}

// Fixed responses for the short-circuit paths.
const (
	outOfScopeMessage = "I'm designed to answer questions about AMIF grant documents. Please ask me about grant procedures, eligibility criteria, or application requirements."

	insufficientInfoMessage = "I couldn't find sufficient information to answer your question."
)

// Language-matched fallbacks for generation failures.
var generationFailedMessages = map[store.Language]string{
	store.LanguageTurkish: "Üzgünüm, yanıt oluşturulurken bir hata oluştu. Lütfen tekrar deneyin.",
	store.LanguageEnglish: "Sorry, an error occurred while generating the answer. Please try again.",
	store.LanguageItalian: "Spiacente, si è verificato un errore durante la generazione della risposta. Riprova.",
}

const qaPromptTemplate = `
You are given the following information from grant documents and a question.
Based on this information, answer the question accurately and in detail.

IMPORTANT: Respond in the same language as the question. If the question is in Turkish, respond in Turkish. If in English, respond in English. If in Italian, respond in Italian.

Given Documents:
%s

Cross-Document Analysis (if available):
%s

Question: %s

When answering:
1. Use the information from the given documents AND cross-document analysis
2. If cross-document analysis provides grant comparisons or synthesis, incorporate that into your answer
3. Specify which document each piece of information comes from
4. If comparing multiple grants, highlight the differences and similarities clearly
5. If the answer involves multiple grants, use the cross-document insights
6. Respond in the SAME LANGUAGE as the question
7. Provide a detailed and clear explanation that leverages both document content and cross-document insights

Answer:
`

// Synthesizer produces the final answer from the retrieved documents
// and the cross-document analysis.
type Synthesizer struct {
	llm    llm.LLMProvider
	logger *log.Logger
}

func NewSynthesizer(provider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llm:    provider,
		logger: logger,
	}
}

func (s *Synthesizer) Name() string {
	return "qa_agent"
}

// Execute writes QAResponse and marks the step performed. A generation
// failure degrades to a language-matched fallback message rather than
// surfacing an error; the pipeline always finishes with an answer.
func (s *Synthesizer) Execute(ctx context.Context, state *store.QueryState) {
	defer func() { state.QAPerformed = true }()

	queryLower := strings.ToLower(state.Query)
	if len(strings.Fields(strings.TrimSpace(state.Query))) < 3 {
		for _, greeting := range simpleGreetings {
			if strings.Contains(queryLower, greeting) {
				state.QAResponse = outOfScopeMessage
				return
			}
		}
	}

	if state.Query == "" || len(state.RetrievedDocuments) == 0 {
		state.QAResponse = insufficientInfoMessage
		return
	}

	prompt := fmt.Sprintf(qaPromptTemplate,
		formatDocuments(state.RetrievedDocuments),
		formatCrossDocumentAnalysis(state.CrossDocumentAnalysis),
		state.Query,
	)

	s.logger.Printf("[QA] Prompt length: %d characters", len(prompt))

	response, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Printf("[ERROR] Answer generation failed: %v", err)
		state.QAResponse = fallbackMessage(state.DetectedLanguage)
		return
	}

	state.QAResponse = response
}

func fallbackMessage(lang store.Language) string {
	if msg, ok := generationFailedMessages[lang]; ok {
		return msg
	}
	return generationFailedMessages[store.LanguageEnglish]
}

// formatDocuments renders numbered document blocks for the prompt.
func formatDocuments(documents []store.Document) string {
	var blocks []string
	for i, doc := range documents {
		filename := doc.Meta.Filename
		if filename == "" {
			filename = "Unknown Document"
		}
		page := "Unknown page"
		if doc.Meta.PageNumber > 0 {
			page = fmt.Sprintf("%d", doc.Meta.PageNumber)
		}

		blocks = append(blocks, fmt.Sprintf(`
Document %d - %s (Page %s):
%s
---
`, i+1, filename, page, doc.Content))
	}
	return strings.Join(blocks, "\n")
}

// formatCrossDocumentAnalysis renders the reasoner's output for the
// prompt. A failed synthesis is skipped instead of leaking error text
// into the context.
func formatCrossDocumentAnalysis(analysis *store.CrossDocumentAnalysis) string {
	if analysis == nil {
		return "No cross-document analysis available."
	}

	var parts []string

	if len(analysis.GrantGroups) > 0 {
		parts = append(parts, fmt.Sprintf("Grant Groups Analyzed: %d groups", len(analysis.GrantGroups)))
		grantIDs := analysis.Comparison.GrantsCompared
		if len(grantIDs) != len(analysis.GrantGroups) {
			grantIDs = sortedKeys(analysis.GrantGroups)
		}
		for _, grantID := range grantIDs {
			parts = append(parts, fmt.Sprintf("  - %s: %d documents", grantID, analysis.GrantGroups[grantID]))
		}
	}

	if analysis.Comparison.Type == store.ComparisonCrossGrant {
		parts = append(parts, "\nGrant Comparison Analysis:")
		parts = append(parts, analysis.Comparison.Analysis)
		parts = append(parts, fmt.Sprintf("Grants Compared: %s", strings.Join(analysis.Comparison.GrantsCompared, ", ")))
	}

	if analysis.SynthesizedAnswer != "" && !analysis.SynthesisFailed {
		parts = append(parts, "\nSynthesized Cross-Document Insights:")
		parts = append(parts, analysis.SynthesizedAnswer)
	}

	themes := analysis.Relationships.CommonThemes
	if len(themes) > 0 {
		parts = append(parts, "\nCommon Themes Across Documents:")
		if len(themes) > 5 {
			themes = themes[:5]
		}
		for _, theme := range themes {
			parts = append(parts, fmt.Sprintf("  - %s: %d occurrences", theme.Theme, theme.Frequency))
		}
	}

	if len(parts) == 0 {
		return "Cross-document analysis completed but no significant insights found."
	}
	return strings.Join(parts, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
