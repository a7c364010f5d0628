// Package xlsx reads medicine tables from the first sheet of an Excel workbook.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.TabularReader = (*Reader)(nil)

var (
	errNoSheet  = errors.New("workbook has no sheets")
	errNoHeader = errors.New("no header row")
)

// Reader parses .xlsx workbooks.
type Reader struct{}

// New creates an Excel reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".xlsx"}
}

// Read parses the first sheet. The first non-blank row is the header and
// blank rows after it are dropped.
func (r *Reader) Read(ctx context.Context, file domain.SourceFile) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := readWorkbook(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, file.Name, err)
	}
	table.Name = file.Name
	return table, nil
}

func readWorkbook(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}

	var table *domain.Table
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if table == nil {
			columns := make([]string, len(row))
			for i, h := range row {
				columns[i] = domain.NormaliseColumn(h)
			}
			table = &domain.Table{Columns: columns, Rows: [][]string{}}
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if table == nil {
		return nil, errNoHeader
	}
	return table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
