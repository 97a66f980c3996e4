package crossdoc

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/store"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		f.prompts = append(f.prompts, history[len(history)-1].Content)
	}
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAnalyzeRelationships(t *testing.T) {
	docs := []store.Document{
		{Content: "Eligibility rules and budget breakdown. The budget is fixed.", Meta: store.DocumentMeta{Filename: "call-fiche.pdf"}},
		{Content: "Budgetary notes without whole-word matches.", Meta: store.DocumentMeta{Filename: "faq.pdf"}},
	}

	rel := AnalyzeRelationships(docs)

	assert.Equal(t, map[string]int{TypeCallDocument: 1, TypeFAQ: 1}, rel.DocumentTypes)

	freq := make(map[string]int)
	for _, theme := range rel.CommonThemes {
		freq[theme.Theme] = theme.Frequency
	}
	assert.Equal(t, 1, freq["eligibility"])
	// "Budgetary" must not count as a whole-word "budget" hit.
	assert.Equal(t, 2, freq["budget"])
	_, hasDeadline := freq["deadline"]
	assert.False(t, hasDeadline, "absent themes are omitted")
}

func TestReasonerSingleGrantShortCircuit(t *testing.T) {
	provider := &fakeLLM{response: "synthesis"}
	r := NewReasoner(provider, testLogger())

	state := store.NewQueryState("what is the women grant budget", "s1")
	state.RetrievedDocuments = []store.Document{
		docWithMeta("AMIF-2025-TF2-AG-INTE-01-WOMEN", "call-fiche.pdf", "", "budget text"),
	}

	r.Execute(context.Background(), state)

	assert.True(t, state.CrossDocumentPerformed)
	analysis := state.CrossDocumentAnalysis
	assert.Equal(t, store.ComparisonSingleGrant, analysis.Comparison.Type)
	assert.Equal(t, 1, analysis.TotalGrantsAnalyzed)
	// Only the synthesis prompt reaches the LLM.
	assert.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "Grant Group: AMIF-2025-TF2-AG-INTE-01-WOMEN")
	assert.Equal(t, "synthesis", analysis.SynthesizedAnswer)
	assert.False(t, analysis.SynthesisFailed)
}

func TestReasonerCrossGrantComparison(t *testing.T) {
	provider := &fakeLLM{response: "llm output"}
	r := NewReasoner(provider, testLogger())

	state := store.NewQueryState("compare women and children grants", "s1")
	state.RetrievedDocuments = []store.Document{
		docWithMeta("AMIF-2025-TF2-AG-INTE-01-WOMEN", "women_call-fiche.pdf", "", "women grant"),
		docWithMeta("AMIF-2025-TF2-AG-INTE-05-CHILDREN", "children_faq.pdf", "", "children grant"),
	}

	r.Execute(context.Background(), state)

	analysis := state.CrossDocumentAnalysis
	assert.Equal(t, store.ComparisonCrossGrant, analysis.Comparison.Type)
	assert.Equal(t, "llm output", analysis.Comparison.Analysis)
	assert.Equal(t, []string{"AMIF-2025-TF2-AG-INTE-01-WOMEN", "AMIF-2025-TF2-AG-INTE-05-CHILDREN"}, analysis.Comparison.GrantsCompared)
	assert.Equal(t, 2, analysis.Comparison.TotalDocuments)
	assert.Equal(t, map[string]int{
		"AMIF-2025-TF2-AG-INTE-01-WOMEN":    1,
		"AMIF-2025-TF2-AG-INTE-05-CHILDREN": 1,
	}, analysis.GrantGroups)
	// Comparison prompt plus synthesis prompt.
	assert.Len(t, provider.prompts, 2)
}

func TestReasonerLLMFailureDegrades(t *testing.T) {
	provider := &fakeLLM{err: errors.New("model unavailable")}
	r := NewReasoner(provider, testLogger())

	state := store.NewQueryState("compare women and children grants", "s1")
	state.RetrievedDocuments = []store.Document{
		docWithMeta("AMIF-2025-TF2-AG-INTE-01-WOMEN", "a.pdf", "", "women"),
		docWithMeta("AMIF-2025-TF2-AG-INTE-05-CHILDREN", "b.pdf", "", "children"),
	}

	r.Execute(context.Background(), state)

	analysis := state.CrossDocumentAnalysis
	assert.True(t, state.CrossDocumentPerformed)
	assert.Equal(t, store.ComparisonError, analysis.Comparison.Type)
	assert.Contains(t, analysis.Comparison.Analysis, "model unavailable")
	assert.True(t, analysis.SynthesisFailed)
	assert.Empty(t, analysis.SynthesizedAnswer)
}

func TestReasonerNoDocuments(t *testing.T) {
	provider := &fakeLLM{}
	r := NewReasoner(provider, testLogger())

	state := store.NewQueryState("anything", "s1")
	r.Execute(context.Background(), state)

	assert.True(t, state.CrossDocumentPerformed)
	assert.NotNil(t, state.CrossDocumentAnalysis)
	assert.NotEmpty(t, state.CrossDocumentAnalysis.Analysis)
	assert.Empty(t, provider.prompts)
}

func TestSynthesisTruncatesLongContent(t *testing.T) {
	provider := &fakeLLM{response: "ok"}
	r := NewReasoner(provider, testLogger())

	long := strings.Repeat("x", 600)
	groups := []Group{{ID: "G1", Documents: []store.Document{
		{Content: long, Meta: store.DocumentMeta{Filename: "a.pdf"}},
	}}}

	_, failed := r.synthesize(context.Background(), groups, "q")

	assert.False(t, failed)
	assert.Contains(t, provider.prompts[0], strings.Repeat("x", 500)+"...")
	assert.NotContains(t, provider.prompts[0], strings.Repeat("x", 501))
}
