package metrics

import (
	"context"
	"time"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/rag/supervisor"
	"grant-assistant-be/pkg/store"
	"grant-assistant-be/pkg/vectorstore"
)

// WrapLLM decorates a provider so call failures are counted under the
// consuming step's label. The provider is otherwise untouched.
func (m *Metrics) WrapLLM(step string, provider llm.LLMProvider) llm.LLMProvider {
	return &instrumentedLLM{step: step, inner: provider, metrics: m}
}

type instrumentedLLM struct {
	step    string
	inner   llm.LLMProvider
	metrics *Metrics
}

func (i *instrumentedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	out, err := i.inner.Chat(ctx, history, options...)
	if err != nil {
		i.metrics.LLMFailures.WithLabelValues(i.step).Inc()
	}
	return out, err
}

func (i *instrumentedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	out, err := i.inner.Generate(ctx, prompt, options...)
	if err != nil {
		i.metrics.LLMFailures.WithLabelValues(i.step).Inc()
	}
	return out, err
}

// WrapSearch decorates a search provider with failure and result-size
// accounting.
func (m *Metrics) WrapSearch(provider vectorstore.SearchProvider) vectorstore.SearchProvider {
	return &instrumentedSearch{inner: provider, metrics: m}
}

type instrumentedSearch struct {
	inner   vectorstore.SearchProvider
	metrics *Metrics
}

func (i *instrumentedSearch) Search(ctx context.Context, query string, k int) ([]store.Document, error) {
	docs, err := i.inner.Search(ctx, query, k)
	if err != nil {
		i.metrics.SearchFailures.Inc()
		return nil, err
	}
	i.metrics.DocumentsRetrieved.Observe(float64(len(docs)))
	return docs, nil
}

func (i *instrumentedSearch) Collection() string {
	return i.inner.Collection()
}

// WrapStep times a pipeline step under its own name.
func (m *Metrics) WrapStep(step supervisor.Step) supervisor.Step {
	return &timedStep{inner: step, metrics: m}
}

type timedStep struct {
	inner   supervisor.Step
	metrics *Metrics
}

func (t *timedStep) Name() string {
	return t.inner.Name()
}

func (t *timedStep) Execute(ctx context.Context, state *store.QueryState) {
	start := time.Now()
	t.inner.Execute(ctx, state)
	t.metrics.StepDuration.WithLabelValues(t.inner.Name()).Observe(time.Since(start).Seconds())
}
