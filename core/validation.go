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


package core

import "fmt"

// ValidateIndicator validates an IndicatorRecord according to domain rules.
//
// Validation rules:
//   - Code must not be empty
//   - Name must not be empty
//
// NOT validated (populated later):
//   - Vector (can be empty until the embedding step runs)
//   - ID (derived from Code by the ingestion pipeline)
func ValidateIndicator(record *IndicatorRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidIndicator)
	}

	if record.Code == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndicator, ErrEmptyCode)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndicator, ErrEmptyName)
	}

	return nil
}

// ValidateWeights validates fusion weights.
//
// Validation rules:
//   - no weight may be negative
//   - at least one weight must be positive
func ValidateWeights(w Weights) error {
	if w.Vector < 0 || w.BM25 < 0 || w.TFIDF < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if w.Vector == 0 && w.BM25 == 0 && w.TFIDF == 0 {
		return fmt.Errorf("%w: at least one weight must be positive", ErrInvalidWeights)
	}
	return nil
}
