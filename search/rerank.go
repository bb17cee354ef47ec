package search

import (
	"strings"

	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/index"
)

// containmentBoost is added once per text field that contains the whole
// query as a substring.
const containmentBoost = 2.0

// rerankScore computes a lexical relevance score for one indicator.
//
// Each text field contributes a containment boost when the lowercased query
// appears in it verbatim, plus one point per distinct query token found
// among the field's tokens. Records with empty fields simply score lower;
// they are never dropped.
func rerankScore(queryLower string, queryTokens []string, record *core.IndicatorRecord) float64 {
	if record == nil || queryLower == "" {
		return 0
	}

	score := 0.0
	for _, field := range record.TextFields() {
		if field == "" {
			continue
		}
		fieldLower := strings.ToLower(field)
		if strings.Contains(fieldLower, queryLower) {
			score += containmentBoost
		}
		if len(queryTokens) == 0 {
			continue
		}

		fieldTokens := make(map[string]bool)
		for _, t := range index.Tokenize(fieldLower) {
			fieldTokens[t] = true
		}
		seen := make(map[string]bool, len(queryTokens))
		for _, t := range queryTokens {
			if seen[t] {
				continue
			}
			seen[t] = true
			if fieldTokens[t] {
				score++
			}
		}
	}
	return score
}
