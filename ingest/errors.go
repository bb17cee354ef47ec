package ingest

import "errors"

var (
	// ErrCatalogRequired is returned when a catalog repository is not provided.
	ErrCatalogRequired = errors.New("catalog repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrMissingHeader is returned when the catalog CSV has no header row.
	ErrMissingHeader = errors.New("catalog CSV missing header row")

	// ErrUnknownColumn is returned when the catalog CSV header carries a
	// column the reader does not recognize.
	ErrUnknownColumn = errors.New("unknown catalog CSV column")

	// ErrRequiredColumn is returned when the catalog CSV header lacks a
	// required column.
	ErrRequiredColumn = errors.New("required catalog CSV column missing")
)
