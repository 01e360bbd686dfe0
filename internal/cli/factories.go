package cli

import (
	"fmt"

	"greenlens/config"
	"greenlens/internal/adapter/embedding"
	"greenlens/internal/adapter/llm"
	"greenlens/internal/port"
)

func buildEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	switch e.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(e.APIKeyEnv, e.Model, e.BaseURL, e.BatchSize)
	case "ollama":
		baseURL := e.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return embedding.NewOpenAIEmbedder(e.APIKeyEnv, e.Model, baseURL, e.BatchSize)
	case "mock":
		return embedding.NewMockEmbedder(e.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", e.Provider)
	}
}

func buildGenerator(cfg *config.Config) (port.Generator, error) {
	g := cfg.Generation
	switch g.Provider {
	case "gemini":
		return llm.NewGeminiGenerator(g.APIKeyEnv, g.Model, g.BaseURL)
	case "openai":
		return llm.NewOpenAIGenerator(g.APIKeyEnv, g.Model, g.BaseURL)
	case "ollama":
		baseURL := g.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return llm.NewOpenAIGenerator(g.APIKeyEnv, g.Model, baseURL)
	case "mock":
		return llm.NewMockGenerator(""), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", g.Provider)
	}
}
