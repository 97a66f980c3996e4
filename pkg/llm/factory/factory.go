package factory

import (
	"fmt"

	"grant-assistant-be/pkg/llm"
	"grant-assistant-be/pkg/llm/ollama"
	"grant-assistant-be/pkg/llm/openai"
)

// NewLLMProvider resolves the configured backend once at startup. The
// rest of the system only ever sees llm.LLMProvider.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
