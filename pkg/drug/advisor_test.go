package drug

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
	history  []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.history = history
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeSearch struct {
	docs []store.Document
	err  error
}

func (f *fakeSearch) Search(ctx context.Context, query string, k int) ([]store.Document, error) {
	return f.docs, f.err
}

func (f *fakeSearch) Collection() string { return "drug_documents" }

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAdviseShortQuerySafetyMessage(t *testing.T) {
	a := NewAdvisor(&fakeLLM{}, &fakeSearch{}, testLogger())

	// Zero-indicator queries score as Turkish, so the Turkish safety
	// message is returned for a bare drug name.
	advice := a.Advise(context.Background(), "aspirin")

	assert.Contains(t, advice.Response, "Güvenlik Mesajı")
	assert.Empty(t, advice.Documents)

	english := a.Advise(context.Background(), "ibuprofen?")
	assert.Equal(t, store.LanguageTurkish, english.Language)
}

func TestAdviseNoDocuments(t *testing.T) {
	a := NewAdvisor(&fakeLLM{}, &fakeSearch{}, testLogger())

	advice := a.Advise(context.Background(), "aspirin yan etkileri nelerdir")

	assert.Equal(t, store.LanguageTurkish, advice.Language)
	assert.Contains(t, advice.Response, "Bilgi Bulunamadı")
}

func TestAdviseBuildsPromptAndAppendsWarning(t *testing.T) {
	provider := &fakeLLM{response: "take with food"}
	search := &fakeSearch{docs: []store.Document{
		{Content: "ibuprofen side effects", Meta: store.DocumentMeta{DrugName: "Ibuprofen", Source: "OnSIDES"}},
	}}
	a := NewAdvisor(provider, search, testLogger())

	advice := a.Advise(context.Background(), "what are the side effects of ibuprofen")

	assert.Equal(t, store.LanguageEnglish, advice.Language)
	assert.True(t, strings.HasPrefix(advice.Response, "take with food"))
	assert.Contains(t, advice.Response, "IMPORTANT SAFETY WARNING")
	assert.Len(t, advice.Documents, 1)

	assert.Len(t, provider.history, 2)
	assert.Equal(t, "system", provider.history[0].Role)
	assert.Contains(t, provider.history[1].Content, "İlaç Bilgisi 1 - Ibuprofen (Kaynak: OnSIDES):")
	assert.Contains(t, provider.history[1].Content, "Dil Tercihi: English")
}

func TestAdviseLLMFailure(t *testing.T) {
	provider := &fakeLLM{err: errors.New("model down")}
	search := &fakeSearch{docs: []store.Document{
		{Content: "parasetamol bilgisi", Meta: store.DocumentMeta{DrugName: "Parasetamol"}},
	}}
	a := NewAdvisor(provider, search, testLogger())

	advice := a.Advise(context.Background(), "parasetamol yan etkileri nelerdir aç karnına alınır mı")

	assert.Contains(t, advice.Response, "Sistem Hatası")
}

func TestAdviseSearchFailureFallsBackToNoInfo(t *testing.T) {
	a := NewAdvisor(&fakeLLM{}, &fakeSearch{err: errors.New("db down")}, testLogger())

	advice := a.Advise(context.Background(), "what are the side effects of ibuprofen")

	assert.Contains(t, advice.Response, "No Information Found")
}
