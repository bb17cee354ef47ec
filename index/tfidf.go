package index

import (
	"context"
	"math"

	"github.com/poiesic/statseek/core"
)

// TFIDF is an in-memory TF-IDF index over indicator text using unigram and
// token-bigram features. Scores are cosine similarities between l2-normalized
// document and query vectors. Immutable after construction and safe for
// concurrent queries.
type TFIDF struct {
	ids     []core.ID
	docs    []map[string]float64
	docFreq map[string]int
	numDocs int
}

// NewTFIDF builds a TF-IDF index from the given documents.
func NewTFIDF(docs []Document) *TFIDF {
	idx := &TFIDF{
		ids:     make([]core.ID, len(docs)),
		docs:    make([]map[string]float64, len(docs)),
		docFreq: make(map[string]int),
		numDocs: len(docs),
	}

	counts := make([]map[string]int, len(docs))
	for i, doc := range docs {
		features := ngramFeatures(Tokenize(doc.Text))
		tf := make(map[string]int, len(features))
		for _, f := range features {
			tf[f]++
		}

		idx.ids[i] = doc.Id
		counts[i] = tf
		for feature := range tf {
			idx.docFreq[feature]++
		}
	}

	for i, tf := range counts {
		idx.docs[i] = idx.weigh(tf)
	}

	return idx
}

// Len returns the number of indexed documents.
func (idx *TFIDF) Len() int {
	return len(idx.ids)
}

// Query scores all documents against the query tokens and returns up to
// topN hits with positive cosine similarity, ordered by score descending.
// Ties break by ascending indicator id.
func (idx *TFIDF) Query(ctx context.Context, tokens []string, topN int) ([]core.MethodHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 || idx.numDocs == 0 || topN <= 0 {
		return nil, nil
	}

	features := ngramFeatures(tokens)
	tf := make(map[string]int, len(features))
	for _, f := range features {
		tf[f]++
	}
	query := idx.weigh(tf)
	if len(query) == 0 {
		return nil, nil
	}

	var hits []core.MethodHit
	for i, doc := range idx.docs {
		score := 0.0
		for feature, qw := range query {
			if dw, ok := doc[feature]; ok {
				score += qw * dw
			}
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

// weigh converts raw feature counts into an l2-normalized tf-idf vector
// using smoothed inverse document frequency.
func (idx *TFIDF) weigh(tf map[string]int) map[string]float64 {
	vec := make(map[string]float64, len(tf))
	sumSquares := 0.0
	for feature, count := range tf {
		df := idx.docFreq[feature]
		idf := math.Log(float64(1+idx.numDocs)/float64(1+df)) + 1
		w := float64(count) * idf
		vec[feature] = w
		sumSquares += w * w
	}

	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	for feature := range vec {
		vec[feature] /= norm
	}
	return vec
}

// ngramFeatures expands tokens into unigram and adjacent-pair features.
func ngramFeatures(tokens []string) []string {
	features := make([]string, 0, 2*len(tokens))
	features = append(features, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		features = append(features, tokens[i]+" "+tokens[i+1])
	}
	return features
}
