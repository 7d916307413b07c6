package factory

import (
	"fmt"
	"time"

	"ai-querychat-be/pkg/llm"
	"ai-querychat-be/pkg/llm/ollama"
	"ai-querychat-be/pkg/llm/openaicompat"
)

type Config struct {
	Provider      string // groq, openai, huggingface or ollama
	Model         string
	BaseURL       string // overrides the vendor default
	APIKey        string
	OllamaBaseURL string
	Timeout       time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "groq", "":
		return openaicompat.NewProvider("groq", cfg.APIKey, orDefault(cfg.BaseURL, openaicompat.GroqBaseURL), cfg.Model, cfg.Timeout), nil
	case "openai":
		return openaicompat.NewProvider("openai", cfg.APIKey, orDefault(cfg.BaseURL, openaicompat.OpenAIBaseURL), cfg.Model, cfg.Timeout), nil
	case "huggingface":
		return openaicompat.NewProvider("huggingface", cfg.APIKey, orDefault(cfg.BaseURL, openaicompat.HuggingFaceBaseURL), cfg.Model, cfg.Timeout), nil
	case "ollama":
		return ollama.NewOllamaProvider(orDefault(cfg.OllamaBaseURL, "http://localhost:11434"), cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
