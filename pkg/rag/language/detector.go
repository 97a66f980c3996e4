package language

import (
	"strings"

	"grant-assistant-be/pkg/store"
)

// Indicator lists for keyword-based scoring. Matching is exact per
// token, never substring, so short function words stay unambiguous.
var turkishIndicators = wordSet(
	"nedir", "nelerdir", "nasıl", "ne", "hangi", "için", "ile", "bir", "bu", "şu",
	"mı", "mi", "mu", "mü", "da", "de", "ta", "te", "la", "le", "ın", "in", "un", "ün",
	"hibe", "başvuru", "proje", "belgeler", "kriterler", "süreç",
)

var englishIndicators = wordSet(
	"what", "how", "which", "where", "when", "why", "is", "are", "the", "and", "or",
	"in", "on", "at", "for", "with", "by", "from", "to", "of", "grant", "application",
	"project", "documents", "criteria", "process", "requirements", "eligibility",
	"personnel", "costs", "budget", "funding", "can", "should", "must", "will",
	"this", "that", "these", "those", "do", "does", "did", "have", "has", "had",
)

var italianIndicators = wordSet(
	"che", "cosa", "come", "quale", "dove", "quando", "perché", "è", "sono", "il", "la",
	"di", "a", "da", "in", "con", "su", "per", "tra", "fra", "sovvenzioni", "domanda",
	"progetto", "documenti", "criteri", "processo",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Detect scores whitespace tokens against each language's indicator
// list and returns the highest scorer. Ties resolve Turkish over
// English over Italian; an empty query is Turkish.
//
// Note "in" and "da" score for more than one language; the tie order
// keeps the result stable for such overlapping tokens.
func Detect(query string) store.Language {
	words := strings.Fields(strings.ToLower(query))

	var trScore, enScore, itScore int
	for _, word := range words {
		if _, ok := turkishIndicators[word]; ok {
			trScore++
		}
		if _, ok := englishIndicators[word]; ok {
			enScore++
		}
		if _, ok := italianIndicators[word]; ok {
			itScore++
		}
	}

	switch {
	case trScore >= enScore && trScore >= itScore:
		return store.LanguageTurkish
	case enScore >= itScore:
		return store.LanguageEnglish
	default:
		return store.LanguageItalian
	}
}
