// Package model defines the core domain models used throughout the application.
package model

import "time"

// Record represents a single time-tracking entry from the Notion database.
// It is an ephemeral in-memory copy; Notion owns the data.
type Record struct {
	Date     time.Time
	ID       string
	Content  string
	Category string
	TimeType string
}

// Preview returns the first n runes of the record content, for log lines.
func (r *Record) Preview(n int) string {
	runes := []rune(r.Content)
	if len(runes) <= n {
		return r.Content
	}
	return string(runes[:n]) + "..."
}
