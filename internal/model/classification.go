package model

// ClassificationResult captures the outcome of classifying one record
// against one option set.
type ClassificationResult struct {
	RecordID string
	Category string
	Response string // cleaned model answer, kept for diagnostics
	Tier     MatchTier
}

// Matched reports whether the result carries a usable label. A record is
// only written back to Notion when this is true.
func (r ClassificationResult) Matched() bool {
	return r.Tier != TierNone && r.Category != ""
}
