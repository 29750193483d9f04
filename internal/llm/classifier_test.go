package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-time-must-flow/internal/common"
	"github.com/Veraticus/the-time-must-flow/internal/model"
)

// stubClient returns a scripted completion and records the prompt it was sent.
type stubClient struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifier_SuggestCategory(t *testing.T) {
	categories := model.CategorySet{"Work", "Exercise", "Reading"}

	tests := []struct {
		name         string
		response     string
		wantCategory string
		wantTier     model.MatchTier
	}{
		{
			name:         "exact answer",
			response:     "Reading",
			wantCategory: "Reading",
			wantTier:     model.TierExact,
		},
		{
			name:         "case-insensitive answer",
			response:     "work",
			wantCategory: "Work",
			wantTier:     model.TierCaseInsensitive,
		},
		{
			name:         "partial answer",
			response:     "Some Exercise today",
			wantCategory: "Exercise",
			wantTier:     model.TierPartial,
		},
		{
			name:         "think block cleaned before matching",
			response:     "<think>running means exercise</think>Exercise",
			wantCategory: "Exercise",
			wantTier:     model.TierExact,
		},
		{
			name:         "unmatchable answer",
			response:     "Gardening",
			wantCategory: "",
			wantTier:     model.TierNone,
		},
		{
			name:         "empty answer",
			response:     "",
			wantCategory: "",
			wantTier:     model.TierNone,
		},
		{
			name:         "whitespace answer",
			response:     "  \n ",
			wantCategory: "",
			wantTier:     model.TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{response: tt.response}
			classifier := NewClassifier(client, testLogger())

			result, err := classifier.SuggestCategory(context.Background(), "morning run", categories)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantTier, result.Tier)
		})
	}
}

func TestClassifier_SuggestCategory_PromptShape(t *testing.T) {
	client := &stubClient{response: "Work"}
	classifier := NewClassifier(client, testLogger())

	_, err := classifier.SuggestCategory(context.Background(), "quarterly report", model.CategorySet{"Work", "Exercise"})
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, "Time Record: quarterly report")
	assert.Contains(t, client.lastPrompt, "- Work\n- Exercise\n")
	assert.Contains(t, client.lastPrompt, "ONLY the exact category name")
}

func TestClassifier_SuggestTimeType_PromptShape(t *testing.T) {
	client := &stubClient{response: "Focused"}
	classifier := NewClassifier(client, testLogger())

	result, err := classifier.SuggestTimeType(context.Background(), "quarterly report", model.CategorySet{"Focused", "Fragmented"})
	require.NoError(t, err)

	assert.Equal(t, "Focused", result.Category)
	assert.Equal(t, model.TierExact, result.Tier)
	assert.Contains(t, client.lastPrompt, "Available Time Types:")
	assert.Contains(t, client.lastPrompt, "- Focused\n- Fragmented\n")
}

func TestClassifier_SuggestCategory_APIFailure(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("%w: connection timeout", common.ErrAPICallFailed)}
	classifier := NewClassifier(client, testLogger())

	_, err := classifier.SuggestCategory(context.Background(), "morning run", model.CategorySet{"Work"})

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAPICallFailed)
}

func TestClassifier_Ping(t *testing.T) {
	ok := NewClassifier(&stubClient{response: "OK"}, testLogger())
	require.NoError(t, ok.Ping(context.Background()))

	failed := NewClassifier(&stubClient{err: fmt.Errorf("%w: unauthorized", common.ErrAPICallFailed)}, testLogger())
	err := failed.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAPICallFailed)
}
