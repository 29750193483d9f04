package llm

import (
	"context"
	"time"
)

// Client defines the interface for chat-completion providers.
type Client interface {
	// Complete sends one prompt and returns the raw assistant message.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the LLM client.
type Config struct {
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoint root; defaults to api.openai.com
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
