package search

import (
	"github.com/poiesic/statseek/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterRetrieval(method core.Method, hits []core.MethodHit)
	RetrievalFailed(method core.Method, err error)
	AfterFusion(candidates []*core.ScoredCandidate)
	AfterRecordRetrieval(records []*core.IndicatorRecord)
	AfterRerank(results []*core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                     {}
func (n *noopMonitor) AfterRetrieval(_ core.Method, _ []core.MethodHit)   {}
func (n *noopMonitor) RetrievalFailed(_ core.Method, _ error)             {}
func (n *noopMonitor) AfterFusion(_ []*core.ScoredCandidate)              {}
func (n *noopMonitor) AfterRecordRetrieval(_ []*core.IndicatorRecord)     {}
func (n *noopMonitor) AfterRerank(_ []*core.SearchResult)                 {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                      {}
