package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrBadCell reports a cell whose text does not parse as the column's type.
var ErrBadCell = errors.New("bad cell value")

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// sheet is one worksheet with its header row mapped to column indices
type sheet struct {
	name string
	cols map[string]int
	rows [][]string
}

// readSheet loads the named worksheet, or nil if the workbook has no
// such sheet.
func readSheet(f *excelize.File, name string) (*sheet, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	s := &sheet{name: name, cols: map[string]int{}}
	if len(rows) == 0 {
		return s, nil
	}
	for i, header := range rows[0] {
		s.cols[strings.TrimSpace(header)] = i
	}
	s.rows = rows[1:]
	return s, nil
}

// row is one data row of a sheet; index is the 1-based worksheet row
// number used in error messages.
type row struct {
	sheet *sheet
	index int
	data  []string
}

func (r row) blank() bool {
	for _, cell := range r.data {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (r row) cell(col string) string {
	i, ok := r.sheet.cols[col]
	if !ok || i >= len(r.data) {
		return ""
	}
	return strings.TrimSpace(r.data[i])
}

func (r row) badCell(col, value string) error {
	return fmt.Errorf("%w: sheet %q row %d column %q: %q", ErrBadCell, r.sheet.name, r.index, col, value)
}

func (r row) uintCell(col string) (uint, error) {
	value := r.cell(col)
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, r.badCell(col, value)
	}
	return uint(n), nil
}

func (r row) intCell(col string) (int, error) {
	value := r.cell(col)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, r.badCell(col, value)
	}
	return n, nil
}

func (r row) floatCell(col string) (float64, error) {
	value := r.cell(col)
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, r.badCell(col, value)
	}
	return n, nil
}

// optStringCell maps a blank cell to nil rather than an empty string
func (r row) optStringCell(col string) *string {
	value := r.cell(col)
	if value == "" {
		return nil
	}
	return &value
}

func (r row) timeCell(col string) (time.Time, error) {
	value := r.cell(col)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, r.badCell(col, value)
}
