package storage

import (
	"context"

	"github.com/poiesic/statseek/core"
)

// CatalogRepository provides operations for managing the indicator catalog.
// Implementations must be thread-safe and support concurrent access.
type CatalogRepository interface {
	// AddIndicators adds one or more indicator records to storage.
	// Records must carry content-based IDs (IDFromContent of the item code).
	// Existing records with the same ID are overwritten.
	AddIndicators(ctx context.Context, records ...*core.IndicatorRecord) error

	// GetIndicator retrieves a single indicator by ID.
	// Returns ErrNotFound if the indicator doesn't exist.
	GetIndicator(ctx context.Context, id core.ID) (*core.IndicatorRecord, error)

	// GetIndicators retrieves multiple indicators by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetIndicators(ctx context.Context, ids ...core.ID) ([]*core.IndicatorRecord, error)

	// GetIndicatorByCode retrieves an indicator by its item code.
	// Returns ErrNotFound if no indicator has the code.
	GetIndicatorByCode(ctx context.Context, code string) (*core.IndicatorRecord, error)

	// GetAllIndicators retrieves every indicator in the catalog.
	// Order is unspecified but stable for an unchanged catalog.
	GetAllIndicators(ctx context.Context) ([]*core.IndicatorRecord, error)

	// CountIndicators returns the number of indicators in the catalog.
	CountIndicators(ctx context.Context) (int, error)

	// UpdateIndicators overwrites existing indicator records.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateIndicators(ctx context.Context, records ...*core.IndicatorRecord) error

	// FindSimilar finds indicators whose embedding is most similar to the
	// given vector. Records without embeddings are skipped. Returns up to
	// topN hits ordered by similarity descending, ties broken by ID ascending.
	FindSimilar(ctx context.Context, vector []float32, topN int) ([]core.MethodHit, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}
