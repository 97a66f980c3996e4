package relevance

import (
	"testing"

	"grant-assistant-be/pkg/store"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		query string
		lang  store.Language
		want  bool
	}{
		{
			name:  "short turkish greeting",
			query: "merhaba",
			lang:  store.LanguageTurkish,
			want:  false,
		},
		{
			name:  "short english greeting",
			query: "hello there",
			lang:  store.LanguageEnglish,
			want:  false,
		},
		{
			name:  "greeting in long query is not filtered",
			query: "hello can you explain the funding rules for integration projects",
			lang:  store.LanguageEnglish,
			want:  true,
		},
		{
			name:  "domain keyword short query",
			query: "amif",
			lang:  store.LanguageEnglish,
			want:  true,
		},
		{
			name:  "turkish domain keyword",
			query: "hibe nedir",
			lang:  store.LanguageTurkish,
			want:  true,
		},
		{
			name:  "short query without keywords",
			query: "tell me something",
			lang:  store.LanguageEnglish,
			want:  false,
		},
		{
			name:  "long query without keywords",
			query: "can you explain to me how all of this works",
			lang:  store.LanguageEnglish,
			want:  true,
		},
		{
			name:  "english greetings used for italian",
			query: "hello",
			lang:  store.LanguageItalian,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelevant(tt.query, tt.lang); got != tt.want {
				t.Errorf("IsRelevant(%q, %q) = %v, want %v", tt.query, tt.lang, got, tt.want)
			}
		})
	}
}
