// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search implements hybrid retrieval over the indicator catalog.
//
// A query is run through three retrieval methods in parallel: embedding
// similarity against stored vectors, Okapi BM25, and TF-IDF cosine over
// the catalog text. Keyword scores are min-max normalized per query,
// vector similarities are clamped to [0, 1], and the per-method scores
// are fused with configurable weights. Fused candidates are hydrated
// from the catalog, reranked by lexical overlap with the query, and
// truncated to the requested size.
//
// A single failed retrieval method degrades the search rather than
// failing it; the search errors only when every method fails.
//
// # Usage
//
//	searcher, err := search.NewSearcher(catalog, bm25, tfidf, provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := searcher.Search(ctx, "人口", 10, core.DefaultWeights())
package search
