package answer

import (
	"context"
	"errors"
	"io"
	"log"
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

func TestSynthesizerGreetingShortCircuit(t *testing.T) {
	provider := &fakeLLM{}
	s := NewSynthesizer(provider, testLogger())

	for _, query := range []string{"hello", "merhaba", "ciao bella", "hi there"} {
		state := store.NewQueryState(query, "s1")
		s.Execute(context.Background(), state)

		assert.True(t, state.QAPerformed)
		assert.Equal(t, outOfScopeMessage, state.QAResponse, "query %q", query)
	}
	assert.Empty(t, provider.prompts)
}

func TestSynthesizerNoDocuments(t *testing.T) {
	provider := &fakeLLM{}
	s := NewSynthesizer(provider, testLogger())

	state := store.NewQueryState("what are the eligibility criteria for the grant", "s1")
	s.Execute(context.Background(), state)

	assert.True(t, state.QAPerformed)
	assert.Equal(t, insufficientInfoMessage, state.QAResponse)
	assert.Empty(t, provider.prompts)
}

func TestSynthesizerBuildsPrompt(t *testing.T) {
	provider := &fakeLLM{response: "the answer"}
	s := NewSynthesizer(provider, testLogger())

	state := store.NewQueryState("what is the budget", "s1")
	state.DetectedLanguage = store.LanguageEnglish
	state.RetrievedDocuments = []store.Document{
		{Content: "budget is 1M", Meta: store.DocumentMeta{Filename: "call-fiche.pdf", PageNumber: 4}},
		{Content: "personnel costs", Meta: store.DocumentMeta{PageNumber: 0}},
	}
	state.CrossDocumentAnalysis = &store.CrossDocumentAnalysis{
		GrantGroups: map[string]int{"AMIF-2025-TF2-AG-INTE-01-WOMEN": 2},
		Comparison: store.Comparison{
			Type:     store.ComparisonSingleGrant,
			Analysis: "Single grant analysis",
		},
		SynthesizedAnswer: "synthesis text",
	}

	s.Execute(context.Background(), state)

	assert.Equal(t, "the answer", state.QAResponse)
	prompt := provider.prompts[0]
	assert.Contains(t, prompt, "Document 1 - call-fiche.pdf (Page 4):")
	assert.Contains(t, prompt, "Document 2 - Unknown Document (Page Unknown page):")
	assert.Contains(t, prompt, "AMIF-2025-TF2-AG-INTE-01-WOMEN: 2 documents")
	assert.Contains(t, prompt, "Synthesized Cross-Document Insights:")
	assert.Contains(t, prompt, "Question: what is the budget")
	// Single-grant comparisons are not rendered as comparison analysis.
	assert.NotContains(t, prompt, "Grant Comparison Analysis:")
}

func TestSynthesizerSkipsFailedSynthesis(t *testing.T) {
	provider := &fakeLLM{response: "the answer"}
	s := NewSynthesizer(provider, testLogger())

	state := store.NewQueryState("what is the budget", "s1")
	state.RetrievedDocuments = []store.Document{
		{Content: "budget", Meta: store.DocumentMeta{Filename: "a.pdf", PageNumber: 1}},
	}
	state.CrossDocumentAnalysis = &store.CrossDocumentAnalysis{
		GrantGroups:     map[string]int{"G1": 1},
		SynthesisFailed: true,
	}

	s.Execute(context.Background(), state)

	assert.NotContains(t, provider.prompts[0], "Synthesized Cross-Document Insights:")
}

func TestSynthesizerLLMFailureFallsBack(t *testing.T) {
	tests := []struct {
		lang store.Language
		want string
	}{
		{store.LanguageTurkish, generationFailedMessages[store.LanguageTurkish]},
		{store.LanguageEnglish, generationFailedMessages[store.LanguageEnglish]},
		{store.LanguageItalian, generationFailedMessages[store.LanguageItalian]},
		{store.Language("unknown"), generationFailedMessages[store.LanguageEnglish]},
	}

	for _, tt := range tests {
		provider := &fakeLLM{err: errors.New("timeout")}
		s := NewSynthesizer(provider, testLogger())

		state := store.NewQueryState("what is the budget of the grant", "s1")
		state.DetectedLanguage = tt.lang
		state.RetrievedDocuments = []store.Document{
			{Content: "budget", Meta: store.DocumentMeta{Filename: "a.pdf"}},
		}

		s.Execute(context.Background(), state)

		assert.True(t, state.QAPerformed)
		assert.Equal(t, tt.want, state.QAResponse)
	}
}

func TestFormatCrossDocumentAnalysisNil(t *testing.T) {
	assert.Equal(t, "No cross-document analysis available.", formatCrossDocumentAnalysis(nil))
}
