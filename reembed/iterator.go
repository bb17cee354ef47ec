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


package reembed

import (
	"context"

	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/storage"
)

const (
	// DefaultBatchSize is the default number of records per batch
	DefaultBatchSize = 100
)

// RecordIterator iterates over the whole indicator catalog in batches.
type RecordIterator struct {
	catalog   storage.CatalogRepository
	batchSize int
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of records per batch (must be > 0)
func NewRecordIterator(catalog storage.CatalogRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecordIterator{
		catalog:   catalog,
		batchSize: batchSize,
	}
}

// ForEach iterates over all indicator records, calling fn for each batch.
// Iteration stops on first error from fn or when all records are processed.
// Context cancellation is checked between batches.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.IndicatorRecord) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := it.catalog.GetAllIndicators(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for start := 0; start < len(records); start += it.batchSize {
		end := start + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := fn(records[start:end]); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
