package llm

import (
	"regexp"
	"strings"
)

const (
	// A bare option name fits comfortably under this; anything longer is
	// usually reasoning text with the answer buried inside.
	maxBareAnswerLen = 50
	// Option names on their own line stay under this.
	maxOptionLineLen = 20
)

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	xmlTagRe     = regexp.MustCompile(`<[^>]+>`)

	// Words that mark a line as explanation rather than an option name.
	reasoningWords  = []string{"step", "analyze", "break", "classify", "category"}
	lineRejectWords = []string{"step", "analyze", "break"}
)

// CleanResponse normalizes a raw model answer down to a bare option name.
// Reasoning models wrap deliberation in <think> blocks, and chatty models
// prepend explanations; when that happens the actual answer tends to sit on
// its own short line at the end.
func CleanResponse(content string) string {
	cleaned := strings.TrimSpace(content)

	if strings.Contains(cleaned, "<think>") {
		cleaned = strings.TrimSpace(thinkBlockRe.ReplaceAllString(cleaned, ""))
	}
	cleaned = strings.TrimSpace(xmlTagRe.ReplaceAllString(cleaned, ""))

	if len(cleaned) > maxBareAnswerLen || containsAny(cleaned, reasoningWords) {
		lines := strings.Split(cleaned, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line != "" && len(line) < maxOptionLineLen && !containsAny(line, lineRejectWords) {
				return line
			}
		}
	}

	return cleaned
}

func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
