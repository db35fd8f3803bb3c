package fetcher

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// CellKind tags the content type of a workbook cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumeric
)

// Cell is one workbook cell with a kind tag and typed accessors.
type Cell struct {
	Kind CellKind
	raw  string
	num  float64
}

// String returns the cell's display text.
func (c Cell) String() string {
	return c.raw
}

// Float returns the cell's numeric value. Fails for non-numeric cells.
func (c Cell) Float() (float64, error) {
	if c.Kind != CellNumeric {
		return 0, eris.Errorf("workbook: cell %q is not numeric", c.raw)
	}
	return c.num, nil
}

// Int returns the cell's numeric value truncated to an integer.
func (c Cell) Int() (int, error) {
	f, err := c.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// NewNumericCell builds a numeric cell directly, without a workbook file.
func NewNumericCell(v float64) Cell {
	return Cell{Kind: CellNumeric, raw: strconv.FormatFloat(v, 'f', -1, 64), num: v}
}

// NewStringCell builds a string cell directly. Empty text yields an empty cell.
func NewStringCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellString, raw: s}
}

// Sheet is one workbook sheet flattened into a typed cell grid.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// ReadWorkbook opens an XLSX file and returns all sheets as typed cell grids.
func ReadWorkbook(path string) ([]Sheet, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "workbook: open file")
	}

	sheets := make([]Sheet, 0, len(f.Sheets))
	for _, sh := range f.Sheets {
		rows := make([][]Cell, 0, len(sh.Rows))
		for _, row := range sh.Rows {
			rows = append(rows, rowToCells(row))
		}
		sheets = append(sheets, Sheet{Name: sh.Name, Rows: rows})
	}

	return sheets, nil
}

func rowToCells(row *xlsx.Row) []Cell {
	cells := make([]Cell, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = convertCell(cell)
	}
	return cells
}

// convertCell maps a tealeg cell to a tagged Cell. Numeric cells that fail
// float conversion degrade to string cells rather than erroring here; the
// row parsers decide what a bad cell means for their row.
func convertCell(cell *xlsx.Cell) Cell {
	raw := cell.String()
	if raw == "" {
		return Cell{Kind: CellEmpty}
	}
	if cell.Type() == xlsx.CellTypeNumeric {
		if f, err := cell.Float(); err == nil {
			return Cell{Kind: CellNumeric, raw: raw, num: f}
		}
	}
	// Text cells stay text even when they look numeric; the row parsers
	// decide whether a string in a numeric column is an error or, on the
	// general path, something to strip digits out of.
	return Cell{Kind: CellString, raw: raw}
}
