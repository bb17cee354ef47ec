package search

import (
	"slices"

	"github.com/poiesic/statseek/core"
)

// fuse merges normalized per-method hits into deduplicated candidates with
// weighted fused scores. Candidates are ordered by fused score descending,
// ties by ascending id, and truncated to limit.
//
// A method that did not retrieve an indicator contributes zero to its fused
// score; the candidate's MethodScores map only holds methods that hit.
func fuse(perMethod map[core.Method][]core.MethodHit, weights core.Weights, limit int) []*core.ScoredCandidate {
	byId := make(map[core.ID]*core.ScoredCandidate)

	for _, method := range core.Methods {
		w := weights.For(method)
		for _, hit := range perMethod[method] {
			cand, ok := byId[hit.IndicatorId]
			if !ok {
				cand = &core.ScoredCandidate{
					IndicatorId:  hit.IndicatorId,
					MethodScores: make(map[core.Method]float64, len(core.Methods)),
				}
				byId[hit.IndicatorId] = cand
			}
			cand.MethodScores[method] = hit.Score
			cand.FusedScore += w * hit.Score
		}
	}

	candidates := make([]*core.ScoredCandidate, 0, len(byId))
	for _, cand := range byId {
		candidates = append(candidates, cand)
	}

	slices.SortFunc(candidates, func(a, b *core.ScoredCandidate) int {
		switch {
		case a.FusedScore > b.FusedScore:
			return -1
		case a.FusedScore < b.FusedScore:
			return 1
		case a.IndicatorId < b.IndicatorId:
			return -1
		case a.IndicatorId > b.IndicatorId:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
