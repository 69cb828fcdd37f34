// server/internal/serials/excel.go
package serials

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSerials is returned when the workbook's first column holds no usable values.
var ErrNoSerials = errors.New("no valid serial numbers found in the first column of the Excel file")

// ParseWorkbook extracts serial numbers from the first column of the first
// sheet of an .xlsx workbook. Blank cells are skipped; everything else is
// taken verbatim (trimmed), matching the portal's bulk-import behavior.
func ParseWorkbook(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSerials
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var out []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		out = append(out, cell)
	}
	if len(out) == 0 {
		return nil, ErrNoSerials
	}
	return out, nil
}
