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

import "errors"

// Domain errors
var (
	// ErrInvalidQuery indicates an empty or whitespace-only query string.
	ErrInvalidQuery = errors.New("query cannot be empty")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrInvalidWeights indicates retrieval weights that are negative or all zero.
	ErrInvalidWeights = errors.New("invalid retrieval weights")

	// ErrRetrievalUnavailable indicates that every retrieval method failed.
	ErrRetrievalUnavailable = errors.New("all retrieval methods unavailable")

	// ErrInvalidIndicator indicates an IndicatorRecord failed validation.
	ErrInvalidIndicator = errors.New("invalid indicator record")

	// ErrEmptyCode indicates the Code field is empty.
	ErrEmptyCode = errors.New("indicator code cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("indicator name cannot be empty")
)
