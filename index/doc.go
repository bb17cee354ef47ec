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


// Package index provides in-memory lexical indices for keyword retrieval.
//
// Two scoring models are available: Okapi BM25 and cosine TF-IDF over
// unigram and bigram features. Both are built once from the indicator
// catalog and are safe for concurrent queries afterwards.
//
// Tokenization handles mixed Japanese and Latin text: input is NFKC
// normalized, lowercased, and CJK runs are split into character bigrams
// so that compound words match without a morphological analyzer.
package index
