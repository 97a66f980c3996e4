package supervisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/rag/answer"
	"grant-assistant-be/pkg/rag/crossdoc"
	"grant-assistant-be/pkg/rag/retrieval"
	"grant-assistant-be/pkg/rag/sources"
	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore/memory"
)

type cannedLLM struct {
	reply string
}

func (c *cannedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return c.reply, nil
}

func (c *cannedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return c.reply, nil
}

func newPipeline(search *memory.Store, provider llm.LLMProvider) *Supervisor {
	logger := testLogger()
	return NewSupervisor(
		retrieval.NewRetriever(search, logger),
		crossdoc.NewReasoner(provider, logger),
		answer.NewSynthesizer(provider, logger),
		sources.NewTracker(),
		logger,
	)
}

func seedGrantDocs(search *memory.Store) {
	search.Add(
		store.Document{
			Content: "The eligibility criteria for the WOMEN grant require partnerships supporting migrant women integration.",
			Meta: store.DocumentMeta{
				Source:       "data/raw/AMIF-2025-TF2-AG-INTE-01-WOMEN_call-fiche.pdf",
				Filename:     "AMIF-2025-TF2-AG-INTE-01-WOMEN_call-fiche.pdf",
				PageNumber:   3,
				GrantGroup:   "AMIF-2025-TF2-AG-INTE-01-WOMEN",
				DocumentType: "call_document",
			},
		},
		store.Document{
			Content: "Budget ceilings and eligibility rules for the CHILDREN grant cover unaccompanied minors programmes.",
			Meta: store.DocumentMeta{
				Source:       "data/raw/AMIF-2025-TF2-AG-INTE-05-CHILDREN_call-fiche.pdf",
				Filename:     "AMIF-2025-TF2-AG-INTE-05-CHILDREN_call-fiche.pdf",
				PageNumber:   1,
				GrantGroup:   "AMIF-2025-TF2-AG-INTE-05-CHILDREN",
				DocumentType: "call_document",
			},
		},
	)
}

func TestPipelineEndToEndAnswersGrantQuery(t *testing.T) {
	search := memory.NewStore("grant_documents")
	seedGrantDocs(search)

	provider := &cannedLLM{reply: "The WOMEN grant requires eligible partnerships."}
	sup := newPipeline(search, provider)

	state := store.NewQueryState("What are the eligibility criteria for the WOMEN grant?", "e2e-1")
	err := sup.Run(context.Background(), state)
	require.NoError(t, err)

	assert.True(t, state.RetrievalPerformed)
	assert.True(t, state.CrossDocumentPerformed)
	assert.True(t, state.QAPerformed)
	assert.True(t, state.SourceTrackingPerformed)

	assert.Equal(t, store.LanguageEnglish, state.DetectedLanguage)
	assert.NotEmpty(t, state.RetrievedDocuments)
	assert.Equal(t, provider.reply, state.QAResponse)
	assert.Equal(t, state.QAResponse, state.CitedResponse)

	require.NotEmpty(t, state.Sources)
	assert.Equal(t, "AMIF-2025-TF2-AG-INTE-01-WOMEN_call-fiche", state.Sources[0].CleanSource)

	require.NotNil(t, state.CrossDocumentAnalysis)
	assert.Contains(t, state.CrossDocumentAnalysis.GrantGroups, "AMIF-2025-TF2-AG-INTE-01-WOMEN")
}

func TestPipelineEndToEndGreetingShortCircuits(t *testing.T) {
	search := memory.NewStore("grant_documents")
	seedGrantDocs(search)

	provider := &cannedLLM{reply: "should not be used"}
	sup := newPipeline(search, provider)

	state := store.NewQueryState("hello", "e2e-2")
	err := sup.Run(context.Background(), state)
	require.NoError(t, err)

	assert.Empty(t, state.RetrievedDocuments)
	assert.Empty(t, state.Sources)
	assert.NotEqual(t, provider.reply, state.QAResponse)
	assert.NotEmpty(t, state.CitedResponse)
}
