package conversation

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Context carries the lightweight signals extracted from a message. It
// is stored alongside each history entry so past turns can be ranked
// without re-running the pipeline.
type Context struct {
	TopicKeywords []string
	GrantTypes    []string
	Complexity    string
	Theme         string
}

var topicKeywords = []string{"amif", "grant", "hibe", "funding", "application", "başvuru"}

type grantTypePatterns struct {
	name     string
	patterns []string
}

var grantTypes = []grantTypePatterns{
	{"women", []string{"women", "woman", "kadın", "kadınlar"}},
	{"children", []string{"children", "child", "çocuk", "çocuklar"}},
	{"health", []string{"health", "sağlık", "healthcare"}},
	{"digital", []string{"digital", "dijital", "technology"}},
	{"pathways", []string{"pathways", "education", "eğitim"}},
}

var themeWords = []struct {
	theme string
	words []string
}{
	{"comparison", []string{"compare", "karşılaştır", "difference", "fark"}},
	{"eligibility", []string{"eligibility", "uygunluk", "criteria"}},
	{"financial", []string{"budget", "cost", "maliyet", "bütçe"}},
}

// ExtractContext derives topic keywords, mentioned grant types, query
// complexity and a coarse semantic theme from a message.
func ExtractContext(message string) Context {
	lower := strings.ToLower(message)

	var topics []string
	for _, keyword := range topicKeywords {
		if strings.Contains(lower, keyword) {
			topics = append(topics, keyword)
		}
	}

	var mentioned []string
	for _, gt := range grantTypes {
		for _, pattern := range gt.patterns {
			if strings.Contains(lower, pattern) {
				mentioned = append(mentioned, gt.name)
				break
			}
		}
	}

	wordCount := len(strings.Fields(message))
	complexity := "complex"
	if wordCount < 5 {
		complexity = "simple"
	} else if wordCount < 15 {
		complexity = "medium"
	}

	theme := "general"
	for _, tw := range themeWords {
		matched := false
		for _, word := range tw.words {
			if strings.Contains(lower, word) {
				matched = true
				break
			}
		}
		if matched {
			theme = tw.theme
			break
		}
	}

	return Context{
		TopicKeywords: topics,
		GrantTypes:    mentioned,
		Complexity:    complexity,
		Theme:         theme,
	}
}

// QueryHash gives a short stable fingerprint for deduplicating queries
// across turns.
func QueryHash(query string) string {
	sum := md5.Sum([]byte(strings.ToLower(query)))
	return hex.EncodeToString(sum[:])[:16]
}
