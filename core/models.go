package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that rebuilding the same
// catalog yields the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Method identifies one of the retrieval methods that contribute to a
// hybrid search.
type Method string

const (
	// MethodVector is embedding-similarity retrieval.
	MethodVector Method = "vector"
	// MethodBM25 is Okapi BM25 lexical retrieval.
	MethodBM25 Method = "bm25"
	// MethodTFIDF is TF-IDF cosine lexical retrieval.
	MethodTFIDF Method = "tfidf"
)

// Methods lists all retrieval methods in a fixed order.
var Methods = []Method{MethodVector, MethodBM25, MethodTFIDF}

// IndicatorRecord represents one statistical indicator in the catalog.
// Records are immutable after the catalog is built; only Vector is
// populated later by the embedding step.
type IndicatorRecord struct {
	Id          ID
	Code        string // source item code, e.g. "A1101"
	Name        string // canonical display name
	Field       string // top-level classification
	Category    string // mid-level classification
	SubCategory string // fine classification
	Definition  string // prose definition of the indicator
	Source      string // originating statistical survey
	Vector      []float32
}

// GroupCode returns the indicator's group key: the first five characters
// of the item code. Indicators sharing a group code are variants of the
// same underlying metric (totals, rates, per-capita forms).
func (r *IndicatorRecord) GroupCode() string {
	runes := []rune(r.Code)
	if len(runes) <= 5 {
		return r.Code
	}
	return string(runes[:5])
}

// TextFields returns the record's text fields in a fixed order.
// The reranker scores fields individually.
func (r *IndicatorRecord) TextFields() []string {
	return []string{r.Name, r.Field, r.Category, r.SubCategory, r.Definition, r.Source}
}

// SearchableText returns the concatenation of all text fields.
// Keyword indices are built over this string.
func (r *IndicatorRecord) SearchableText() string {
	return strings.Join(r.TextFields(), " ")
}

// Weights holds the non-negative per-method weights for hybrid fusion.
// Weights need not sum to 1; at least one must be positive.
type Weights struct {
	Vector float64
	BM25   float64
	TFIDF  float64
}

// DefaultWeights returns the standard fusion weights: 0.6 for vector
// similarity with the remainder split evenly between the keyword methods.
func DefaultWeights() Weights {
	return Weights{Vector: 0.6, BM25: 0.2, TFIDF: 0.2}
}

// For returns the weight assigned to the given method.
func (w Weights) For(m Method) float64 {
	switch m {
	case MethodVector:
		return w.Vector
	case MethodBM25:
		return w.BM25
	case MethodTFIDF:
		return w.TFIDF
	}
	return 0
}

// MethodHit is one (indicator, score) pair returned by a single
// retrieval method. Scores are method-specific until normalized.
type MethodHit struct {
	IndicatorId ID
	Score       float64
}

// ScoredCandidate is the per-query working state for one indicator.
// MethodScores holds normalized per-method scores; methods that did not
// retrieve the indicator are absent and contribute zero.
type ScoredCandidate struct {
	IndicatorId  ID
	MethodScores map[Method]float64
	FusedScore   float64
	RerankScore  float64
}

// SearchResult is a final, presentation-ready hit.
type SearchResult struct {
	Record      *IndicatorRecord
	FusedScore  float64
	RerankScore float64
}
