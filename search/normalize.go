package search

import (
	"github.com/poiesic/statseek/core"
)

// normalizeKeywordHits rescales unbounded keyword scores into [0, 1] with
// min-max normalization over the hits of one method for one query.
// When all scores are equal, positive scores map to 1 so a lone hit still
// contributes fully; non-positive scores map to 0.
func normalizeKeywordHits(hits []core.MethodHit) []core.MethodHit {
	if len(hits) == 0 {
		return hits
	}

	min, max := hits[0].Score, hits[0].Score
	for _, h := range hits[1:] {
		if h.Score < min {
			min = h.Score
		}
		if h.Score > max {
			max = h.Score
		}
	}

	out := make([]core.MethodHit, len(hits))
	if max == min {
		flat := 0.0
		if max > 0 {
			flat = 1.0
		}
		for i, h := range hits {
			out[i] = core.MethodHit{IndicatorId: h.IndicatorId, Score: flat}
		}
		return out
	}

	span := max - min
	for i, h := range hits {
		out[i] = core.MethodHit{IndicatorId: h.IndicatorId, Score: (h.Score - min) / span}
	}
	return out
}

// clampVectorHits clamps cosine similarities into [0, 1] without rescaling.
// Vector scores already live on a comparable unit scale, so stretching them
// per query would discard the absolute similarity signal.
func clampVectorHits(hits []core.MethodHit) []core.MethodHit {
	out := make([]core.MethodHit, len(hits))
	for i, h := range hits {
		s := h.Score
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
		out[i] = core.MethodHit{IndicatorId: h.IndicatorId, Score: s}
	}
	return out
}
