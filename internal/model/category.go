package model

import "strings"

// MatchTier describes how strongly an AI answer agrees with an allowed option.
type MatchTier string

// Match tiers, strongest first.
const (
	TierExact           MatchTier = "exact"
	TierCaseInsensitive MatchTier = "case-insensitive"
	TierPartial         MatchTier = "partial"
	TierNone            MatchTier = "none"
)

// CategorySet is the ordered list of allowed labels for one select property,
// fetched fresh each run from the database schema.
type CategorySet []string

// Match resolves a free-text answer against the set. Tiers are tried in
// order: exact equality, case-insensitive equality, then substring
// containment in either direction. Each tier scans the full set before the
// next is tried, and the first option in declared order wins within a tier,
// so results are deterministic regardless of how many options qualify.
func (s CategorySet) Match(response string) (string, MatchTier) {
	response = strings.TrimSpace(response)
	if response == "" {
		return "", TierNone
	}

	for _, option := range s {
		if response == option {
			return option, TierExact
		}
	}

	for _, option := range s {
		if strings.EqualFold(response, option) {
			return option, TierCaseInsensitive
		}
	}

	lower := strings.ToLower(response)
	for _, option := range s {
		optLower := strings.ToLower(option)
		if strings.Contains(lower, optLower) || strings.Contains(optLower, lower) {
			return option, TierPartial
		}
	}

	return "", TierNone
}
