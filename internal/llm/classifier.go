package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/the-time-must-flow/internal/model"
)

// Classifier resolves record content to an allowed select option by asking
// the model and tier-matching its answer.
type Classifier struct {
	client Client
	logger *slog.Logger
}

// NewClassifier creates a classifier on top of the given chat-completion client.
func NewClassifier(client Client, logger *slog.Logger) *Classifier {
	return &Classifier{
		client: client,
		logger: logger,
	}
}

// SuggestCategory asks the model which category the record content belongs
// to and resolves the answer against the allowed set.
func (c *Classifier) SuggestCategory(ctx context.Context, content string, categories model.CategorySet) (model.ClassificationResult, error) {
	return c.classify(ctx, buildCategoryPrompt(content, categories), categories)
}

// SuggestTimeType asks the model what kind of time the record represents and
// resolves the answer against the allowed set.
func (c *Classifier) SuggestTimeType(ctx context.Context, content string, timeTypes model.CategorySet) (model.ClassificationResult, error) {
	return c.classify(ctx, buildTimeTypePrompt(content, timeTypes), timeTypes)
}

// Ping issues a minimal completion to verify connectivity and credentials.
func (c *Classifier) Ping(ctx context.Context) error {
	if _, err := c.client.Complete(ctx, "Hello, this is a connection test. Please respond with 'OK'."); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

func (c *Classifier) classify(ctx context.Context, prompt string, options model.CategorySet) (model.ClassificationResult, error) {
	raw, err := c.client.Complete(ctx, prompt)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("classification request failed: %w", err)
	}

	answer := CleanResponse(raw)
	if answer == "" {
		c.logger.Warn("model returned an empty answer")
		return model.ClassificationResult{Tier: model.TierNone}, nil
	}

	label, tier := options.Match(answer)
	result := model.ClassificationResult{
		Category: label,
		Response: answer,
		Tier:     tier,
	}

	if result.Matched() {
		c.logger.Debug("answer matched an option",
			"answer", answer,
			"option", label,
			"tier", tier)
	} else {
		c.logger.Warn("answer matched no option",
			"answer", answer,
			"options", []string(options))
	}

	return result, nil
}

func buildCategoryPrompt(content string, categories model.CategorySet) string {
	return fmt.Sprintf(`Please classify the following time tracking record into one of the exact categories listed below.

Time Record: %s

Available Categories:
%s
Instructions:
1. Analyze the content of the time record
2. Choose the most appropriate category from the list above
3. Respond with ONLY the exact category name, nothing else
4. If none of the categories fit perfectly, choose the closest one

Classification:`, content, optionList(categories))
}

func buildTimeTypePrompt(content string, timeTypes model.CategorySet) string {
	return fmt.Sprintf(`Please determine the time type of the following time tracking record. Choose from one of the exact time types listed below.

Time Record: %s

Available Time Types:
%s
Instructions:
1. Analyze the content of the time record
2. Determine what type of work this represents
3. Choose the most appropriate time type from the list above
4. Respond with ONLY the exact time type name, nothing else
5. If none of the time types fit perfectly, choose the closest one

Time Type:`, content, optionList(timeTypes))
}

func optionList(options model.CategorySet) string {
	var b strings.Builder
	for _, option := range options {
		fmt.Fprintf(&b, "- %s\n", option)
	}
	return b.String()
}
