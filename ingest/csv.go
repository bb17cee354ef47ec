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


package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/statseek/core"
)

// catalog CSV columns. code and name are required; the rest may be absent.
const (
	colCode        = "code"
	colName        = "name"
	colField       = "field"
	colCategory    = "category"
	colSubCategory = "subcategory"
	colDefinition  = "definition"
	colSource      = "source"
)

// ReadCatalogCSV parses an indicator catalog from CSV.
//
// The first row is a header naming the columns in any order. Each data row
// becomes one IndicatorRecord with its id derived from the item code, so
// re-reading the same catalog yields the same ids. Rows failing validation
// abort the read with the offending line number.
func ReadCatalogCSV(r io.Reader) ([]*core.IndicatorRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []*core.IndicatorRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog row: %w", err)
		}
		line++

		record := recordFromRow(columns, row)
		record.Id = core.IDFromContent(record.Code)
		if err := core.ValidateIndicator(record); err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// mapColumns resolves header names to column positions.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case colCode, colName, colField, colCategory, colSubCategory, colDefinition, colSource:
			columns[name] = i
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}

	for _, required := range []string{colCode, colName} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrRequiredColumn, required)
		}
	}
	return columns, nil
}

// recordFromRow builds a record from one data row, tolerating short rows.
func recordFromRow(columns map[string]int, row []string) *core.IndicatorRecord {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	return &core.IndicatorRecord{
		Code:        cell(colCode),
		Name:        cell(colName),
		Field:       cell(colField),
		Category:    cell(colCategory),
		SubCategory: cell(colSubCategory),
		Definition:  cell(colDefinition),
		Source:      cell(colSource),
	}
}
