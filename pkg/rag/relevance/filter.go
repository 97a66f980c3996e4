package relevance

import (
	"strings"

	"grant-assistant-be/pkg/store"
)

// Greeting and small-talk phrases checked by substring against short queries.
var greetingsTurkish = []string{
	"merhaba", "hey", "selam", "nasılsın", "nasıl gidiyor",
	"günaydın", "iyi akşamlar", "teşekkürler", "sağol",
	"hoşça kal", "görüşürüz", "naber", "ne var ne yok",
}

var greetingsEnglish = []string{
	"hello", "hi", "hey", "how are you", "how is it going",
	"good morning", "good evening", "thank you", "thanks",
	"goodbye", "see you", "what's up", "how's life",
}

// Domain keywords pooled across languages; one hit makes a query relevant.
var grantKeywords = []string{
	"grant", "hibe", "amif", "proje", "başvuru", "finansman",
	"bütçe", "maliyet", "personel", "eligibility", "uygunluk",
	"criteria", "kriter", "application", "document", "belge",
	"project", "funding", "budget", "cost", "personnel",
	"documentation", "requirement", "guideline", "procedure",
}

// IsRelevant decides whether a query should trigger document retrieval.
// Short greetings are filtered out, anything mentioning the grant domain
// passes, and short keyword-free queries are treated as small talk.
func IsRelevant(query string, lang store.Language) bool {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(queryLower)

	greetings := greetingsEnglish
	if lang == store.LanguageTurkish {
		greetings = greetingsTurkish
	}

	if len(words) < 3 {
		for _, g := range greetings {
			if strings.Contains(queryLower, g) {
				return false
			}
		}
	}

	for _, kw := range grantKeywords {
		if strings.Contains(queryLower, kw) {
			return true
		}
	}

	// No domain keyword: only longer questions are worth a search.
	return len(words) >= 5
}
