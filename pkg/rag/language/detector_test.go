package language

import (
	"testing"

	"grant-assistant-be/pkg/store"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  store.Language
	}{
		{
			name:  "turkish question",
			query: "AMIF hibe başvuru kriterleri nedir",
			want:  store.LanguageTurkish,
		},
		{
			name:  "english question",
			query: "What are the eligibility criteria for the grant",
			want:  store.LanguageEnglish,
		},
		{
			name:  "italian question",
			query: "Quali sono i criteri della domanda di sovvenzioni",
			want:  store.LanguageItalian,
		},
		{
			name:  "empty query defaults to turkish",
			query: "",
			want:  store.LanguageTurkish,
		},
		{
			name:  "no indicators defaults to turkish",
			query: "xyzzy plugh",
			want:  store.LanguageTurkish,
		},
		{
			name:  "turkish wins ties with english",
			query: "proje budget",
			want:  store.LanguageTurkish,
		},
		{
			name:  "english wins ties with italian",
			query: "in domanda of progetto the",
			want:  store.LanguageEnglish,
		},
		{
			name:  "exact token match only, no substrings",
			query: "information innovative", // "in" appears only as substring
			want:  store.LanguageTurkish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.query); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
