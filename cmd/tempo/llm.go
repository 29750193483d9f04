package main

import (
	"fmt"

	"github.com/Veraticus/the-time-must-flow/internal/config"
	"github.com/Veraticus/the-time-must-flow/internal/llm"
)

// createClassifier builds the LLM classifier from validated configuration.
func createClassifier(cfg *config.Config) (*llm.Classifier, error) {
	client, err := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return llm.NewClassifier(client, logger), nil
}
