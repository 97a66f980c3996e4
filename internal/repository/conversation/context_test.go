package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContext(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		topics     []string
		grantTypes []string
		complexity string
		theme      string
	}{
		{
			name:       "short grant question",
			message:    "AMIF grant deadline?",
			topics:     []string{"amif", "grant"},
			grantTypes: nil,
			complexity: "simple",
			theme:      "general",
		},
		{
			name:       "comparison across grant types",
			message:    "Compare the eligibility criteria of the WOMEN grant and the CHILDREN grant please",
			topics:     []string{"grant"},
			grantTypes: []string{"women", "children"},
			complexity: "medium",
			theme:      "comparison",
		},
		{
			name:       "turkish budget question",
			message:    "Bu hibe için bütçe limiti nedir ve başvuru nasıl yapılır acaba detaylı anlatır mısınız",
			topics:     []string{"hibe", "başvuru"},
			grantTypes: nil,
			complexity: "medium",
			theme:      "financial",
		},
		{
			name:       "eligibility beats financial on order",
			message:    "eligibility criteria and budget",
			topics:     nil,
			grantTypes: nil,
			complexity: "simple",
			theme:      "eligibility",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ExtractContext(tt.message)
			assert.Equal(t, tt.topics, ctx.TopicKeywords)
			assert.Equal(t, tt.grantTypes, ctx.GrantTypes)
			assert.Equal(t, tt.complexity, ctx.Complexity)
			assert.Equal(t, tt.theme, ctx.Theme)
		})
	}
}

func TestExtractContextLongQueryIsComplex(t *testing.T) {
	ctx := ExtractContext("what are the detailed application requirements and supporting documents needed for submitting a full proposal under this call")
	assert.Equal(t, "complex", ctx.Complexity)
}

func TestQueryHash(t *testing.T) {
	assert.Equal(t, QueryHash("Hello World"), QueryHash("hello world"))
	assert.Len(t, QueryHash("anything"), 16)
	assert.NotEqual(t, QueryHash("budget"), QueryHash("eligibility"))
}
