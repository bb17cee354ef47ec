package index

import (
	"context"
	"math"
	"slices"

	"github.com/poiesic/statseek/core"
)

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// Document is a unit of indexable text identified by an indicator id.
type Document struct {
	Id   core.ID
	Text string
}

// BM25 is an in-memory Okapi BM25 index over indicator text.
// The index is immutable after construction and safe for concurrent queries.
type BM25 struct {
	ids       []core.ID
	docLens   []int
	avgDocLen float64
	termFreqs []map[string]int
	docFreq   map[string]int
}

// NewBM25 builds a BM25 index from the given documents.
// Documents with no tokens still occupy a slot but never score.
func NewBM25(docs []Document) *BM25 {
	idx := &BM25{
		ids:       make([]core.ID, len(docs)),
		docLens:   make([]int, len(docs)),
		termFreqs: make([]map[string]int, len(docs)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for i, doc := range docs {
		tokens := Tokenize(doc.Text)
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}

		idx.ids[i] = doc.Id
		idx.docLens[i] = len(tokens)
		idx.termFreqs[i] = tf
		totalLen += len(tokens)

		for term := range tf {
			idx.docFreq[term]++
		}
	}

	if len(docs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(docs))
	}

	return idx
}

// Len returns the number of indexed documents.
func (idx *BM25) Len() int {
	return len(idx.ids)
}

// Query scores all documents against the query tokens and returns up to
// topN hits with positive scores, ordered by score descending. Ties break
// by ascending indicator id for deterministic output.
func (idx *BM25) Query(ctx context.Context, tokens []string, topN int) ([]core.MethodHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 || len(idx.ids) == 0 || topN <= 0 {
		return nil, nil
	}

	n := float64(len(idx.ids))
	idfs := make(map[string]float64, len(tokens))
	for _, term := range tokens {
		if _, ok := idfs[term]; ok {
			continue
		}
		df := float64(idx.docFreq[term])
		idfs[term] = math.Log((n-df+0.5)/(df+0.5) + 1)
	}

	var hits []core.MethodHit
	for i, tf := range idx.termFreqs {
		score := 0.0
		lenNorm := 1 - bm25B + bm25B*float64(idx.docLens[i])/idx.avgDocLen
		for _, term := range tokens {
			freq := float64(tf[term])
			if freq == 0 {
				continue
			}
			score += idfs[term] * freq * (bm25K1 + 1) / (freq + bm25K1*lenNorm)
		}
		if score > 0 {
			hits = append(hits, core.MethodHit{IndicatorId: idx.ids[i], Score: score})
		}
	}

	sortHits(hits)
	if len(hits) > topN {
		hits = hits[:topN]
	}
	return hits, nil
}

// sortHits orders hits by score descending, ties by id ascending.
func sortHits(hits []core.MethodHit) {
	slices.SortFunc(hits, func(a, b core.MethodHit) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.IndicatorId < b.IndicatorId:
			return -1
		case a.IndicatorId > b.IndicatorId:
			return 1
		default:
			return 0
		}
	})
}
