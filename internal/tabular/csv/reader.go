// Package csv reads comma-separated medicine tables.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/logger"
	"github.com/custodia-labs/medlens/internal/textenc"
)

// Ensure Reader implements the interface.
var _ driven.TabularReader = (*Reader)(nil)

// errNoHeader is returned for a file without a header row.
var errNoHeader = errors.New("no header row")

// Reader parses CSV files.
type Reader struct{}

// New creates a CSV reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".csv"}
}

// Read parses a CSV file, trying UTF-8 first and Latin-1 second.
func (r *Reader) Read(ctx context.Context, file domain.SourceFile) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}

	table, enc, err := textenc.DecodeWithFallback(data, func(text string) (*domain.Table, error) {
		return Parse(strings.NewReader(text))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}
	if enc != textenc.UTF8 {
		logger.Debug("Read %s as %s", file.Name, enc)
	}

	table.Name = file.Name
	return table, nil
}

// Parse reads CSV text into a table. The first record is the header; its
// names are normalised. Rows may be shorter or longer than the header.
func Parse(r io.Reader) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = domain.NormaliseColumn(h)
	}

	table := &domain.Table{Columns: columns, Rows: [][]string{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}
