package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/statseek/ai"
	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/index"
	"github.com/poiesic/statseek/storage"
)

// defaultFuseLimit bounds how many fused candidates survive into reranking.
const defaultFuseLimit = 100

// KeywordIndex is a lexical index that scores documents against query tokens.
// Both the BM25 and TF-IDF indices satisfy it.
type KeywordIndex interface {
	Query(ctx context.Context, tokens []string, topN int) ([]core.MethodHit, error)
}

// Searcher provides hybrid retrieval over the indicator catalog, fusing
// vector similarity with BM25 and TF-IDF keyword scores and reranking the
// fused candidates lexically.
type Searcher struct {
	catalog       storage.CatalogRepository
	bm25          KeywordIndex
	tfidf         KeywordIndex
	embedder      ai.Embedder
	logger        *slog.Logger
	fuseLimit     int
	groupCollapse bool
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithFuseLimit sets how many fused candidates are kept for reranking.
// Default is 100.
func WithFuseLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return fmt.Errorf("%w: fuse limit %d", core.ErrInvalidLimit, limit)
		}
		s.fuseLimit = limit
		return nil
	}
}

// WithGroupCollapse keeps only the best-ranked indicator per group code,
// hiding variants of the same underlying metric. Default is off.
func WithGroupCollapse(enabled bool) Option {
	return func(s *Searcher) error {
		s.groupCollapse = enabled
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	catalog storage.CatalogRepository,
	bm25 KeywordIndex,
	tfidf KeywordIndex,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if bm25 == nil {
		return nil, ErrBM25IndexRequired
	}
	if tfidf == nil {
		return nil, ErrTFIDFIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		catalog:   catalog,
		bm25:      bm25,
		tfidf:     tfidf,
		embedder:  provider.Embedder(),
		logger:    slog.Default(),
		fuseLimit: defaultFuseLimit,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a hybrid search for the query.
// Returns up to topK results, ranked by rerank score then fused score.
func (s *Searcher) Search(ctx context.Context, query string, topK int, weights core.Weights) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, topK, weights, nil)
}

// SearchWithMonitor runs a hybrid search with monitoring.
// The monitor receives callbacks at each stage of the search process.
// Returns up to topK results, ranked by rerank score then fused score.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, topK int, weights core.Weights, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// Validate before touching any collaborator.
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: blank query", core.ErrInvalidQuery)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK %d", core.ErrInvalidLimit, topK)
	}
	if err := core.ValidateWeights(weights); err != nil {
		return nil, err
	}

	monitor.Start(trimmed)

	tokens := index.Tokenize(trimmed)
	perMethod, failures := s.retrieve(ctx, trimmed, tokens, monitor)
	if len(failures) == len(core.Methods) {
		return nil, fmt.Errorf("%w: %d retrieval methods failed", core.ErrRetrievalUnavailable, len(failures))
	}

	// 2. Normalize and fuse into deduplicated candidates.
	perMethod[core.MethodVector] = clampVectorHits(perMethod[core.MethodVector])
	perMethod[core.MethodBM25] = normalizeKeywordHits(perMethod[core.MethodBM25])
	perMethod[core.MethodTFIDF] = normalizeKeywordHits(perMethod[core.MethodTFIDF])

	candidates := fuse(perMethod, weights, s.fuseLimit)
	monitor.AfterFusion(candidates)

	if len(candidates) == 0 {
		results := []*core.SearchResult{}
		monitor.Finish(results)
		return results, nil
	}

	// 3. Hydrate candidate records. Ids no longer in the catalog are
	// silently dropped.
	ids := make([]core.ID, len(candidates))
	for i, cand := range candidates {
		ids[i] = cand.IndicatorId
	}
	records, err := s.catalog.GetIndicators(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving indicator records", "candidateCount", len(ids), "err", err)
		return nil, err
	}
	monitor.AfterRecordRetrieval(records)

	byId := make(map[core.ID]*core.IndicatorRecord, len(records))
	for _, record := range records {
		if record != nil {
			byId[record.Id] = record
		}
	}

	// 4. Rerank lexically, preserving fusion order among rerank ties.
	queryLower := strings.ToLower(trimmed)
	results := make([]*core.SearchResult, 0, len(candidates))
	for _, cand := range candidates {
		record, ok := byId[cand.IndicatorId]
		if !ok {
			s.logger.Debug("candidate no longer in catalog", "id", cand.IndicatorId)
			continue
		}
		cand.RerankScore = rerankScore(queryLower, tokens, record)
		results = append(results, &core.SearchResult{
			Record:      record,
			FusedScore:  cand.FusedScore,
			RerankScore: cand.RerankScore,
		})
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		switch {
		case a.RerankScore > b.RerankScore:
			return -1
		case a.RerankScore < b.RerankScore:
			return 1
		case a.FusedScore > b.FusedScore:
			return -1
		case a.FusedScore < b.FusedScore:
			return 1
		case a.Record.Id < b.Record.Id:
			return -1
		case a.Record.Id > b.Record.Id:
			return 1
		default:
			return 0
		}
	})
	monitor.AfterRerank(results)

	if s.groupCollapse {
		results = collapseGroups(results)
	}
	if len(results) > topK {
		results = results[:topK]
	}
	monitor.Finish(results)

	return results, nil
}

// retrieve fans the three retrieval methods out in parallel.
// A failed method is logged and reported to the monitor; the remaining
// methods still contribute. The returned map holds raw, unnormalized hits.
func (s *Searcher) retrieve(ctx context.Context, query string, tokens []string, monitor SearchMonitor) (map[core.Method][]core.MethodHit, []core.Method) {
	type slot struct {
		hits []core.MethodHit
		err  error
	}
	slots := make([]slot, len(core.Methods))
	topN := 2 * s.fuseLimit

	g, gctx := errgroup.WithContext(ctx)
	for i, method := range core.Methods {
		g.Go(func() error {
			var hits []core.MethodHit
			var err error
			switch method {
			case core.MethodVector:
				var embedding []float32
				embedding, err = s.embedder.EmbedText(gctx, query)
				if err == nil {
					hits, err = s.catalog.FindSimilar(gctx, embedding, topN)
				}
			case core.MethodBM25:
				hits, err = s.bm25.Query(gctx, tokens, topN)
			case core.MethodTFIDF:
				hits, err = s.tfidf.Query(gctx, tokens, topN)
			}
			slots[i] = slot{hits: hits, err: err}
			return nil
		})
	}
	// Goroutines report through slots, never through the group error.
	_ = g.Wait()

	perMethod := make(map[core.Method][]core.MethodHit, len(core.Methods))
	var failures []core.Method
	for i, method := range core.Methods {
		if slots[i].err != nil {
			s.logger.Warn("retrieval method failed", "method", method, "err", slots[i].err)
			monitor.RetrievalFailed(method, slots[i].err)
			failures = append(failures, method)
			continue
		}
		perMethod[method] = slots[i].hits
		monitor.AfterRetrieval(method, slots[i].hits)
	}
	return perMethod, failures
}

// collapseGroups keeps only the first result for each group code.
// Results must already be in final rank order.
func collapseGroups(results []*core.SearchResult) []*core.SearchResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		group := r.Record.GroupCode()
		if seen[group] {
			continue
		}
		seen[group] = true
		out = append(out, r)
	}
	return out
}
