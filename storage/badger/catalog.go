package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (storage.CatalogRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &CatalogRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *CatalogRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, topN int) ([]core.MethodHit, error) {
	return r.backend.FindSimilar(ctx, vector, topN)
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddIndicators adds one or more indicator records to storage.
// Records must carry IDs; existing records with the same ID are overwritten.
func (r *CatalogRepository) AddIndicators(ctx context.Context, records ...*core.IndicatorRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateIndicator(record); err != nil {
				return err
			}
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Code)
			}

			key := makeIndicatorKey(record.Id)
			if err := tx.Set(key, storage.MarshalIndicator(record)); err != nil {
				return err
			}

			codeKey := makeIndicatorCodeKey(record.Code)
			if err := tx.Set(codeKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// UpdateIndicators overwrites existing indicator records.
func (r *CatalogRepository) UpdateIndicators(ctx context.Context, records ...*core.IndicatorRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeIndicatorKey(record.Id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Set(key, storage.MarshalIndicator(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetIndicator retrieves a single indicator by ID.
func (r *CatalogRepository) GetIndicator(ctx context.Context, id core.ID) (*core.IndicatorRecord, error) {
	var record *core.IndicatorRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndicatorKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalIndicator(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetIndicators retrieves multiple indicators by their IDs.
// Missing records are skipped without error.
func (r *CatalogRepository) GetIndicators(ctx context.Context, ids ...core.ID) ([]*core.IndicatorRecord, error) {
	records := make([]*core.IndicatorRecord, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeIndicatorKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				record, err := storage.UnmarshalIndicator(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetIndicatorByCode retrieves an indicator by its item code.
func (r *CatalogRepository) GetIndicatorByCode(ctx context.Context, code string) (*core.IndicatorRecord, error) {
	var id core.ID

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndicatorCodeKey(code))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return r.GetIndicator(ctx, id)
}

// GetAllIndicators retrieves every indicator in the catalog.
func (r *CatalogRepository) GetAllIndicators(ctx context.Context) ([]*core.IndicatorRecord, error) {
	var records []*core.IndicatorRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indicatorPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalIndicator(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountIndicators returns the number of indicators in the catalog.
func (r *CatalogRepository) CountIndicators(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(indicatorPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}
