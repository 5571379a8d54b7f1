package models

import (
	"github.com/tiendc/go-deepcopy"
)

// UntypedTag is the type tag recorded for a column whose type cell is empty.
const UntypedTag = ":"

// Column is one schema column.
type Column struct {
	Type   string `json:"type"`
	Member string `json:"member"`
}

// SheetSchema is the typed column layout of a sheet.
// Types and Members are positionally aligned.
type SheetSchema struct {
	// Name is the sheet name, used as the generated type name and file stem.
	Name string `json:"name"`
	// Types holds one type tag per column.
	Types []string `json:"types"`
	// Members holds one member name per column.
	Members []string `json:"members"`
}

// Len returns the column count.
func (s SheetSchema) Len() int {
	return len(s.Types)
}

// Columns returns the columns in sheet order.
func (s SheetSchema) Columns() []Column {
	cols := make([]Column, len(s.Types))
	for i := range s.Types {
		cols[i] = Column{Type: s.Types[i], Member: s.Members[i]}
	}
	return cols
}

// Clone returns a copy that shares no backing arrays with s.
func (s SheetSchema) Clone() (SheetSchema, error) {
	var out SheetSchema
	if err := deepcopy.Copy(&out, &s); err != nil {
		return SheetSchema{}, err
	}
	return out, nil
}

// Cell is one data matrix entry. Set is false for cells never written.
type Cell struct {
	Text string `json:"text"`
	Set  bool   `json:"set"`
}

// DataMatrix is a row-major grid of raw cell text. Rows 0 and 1 belong to
// the type and member-name rows and are never set.
type DataMatrix struct {
	rows  int
	cols  int
	cells []Cell
}

// NewDataMatrix allocates an unset rows x cols matrix.
func NewDataMatrix(rows, cols int) DataMatrix {
	return DataMatrix{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// Rows returns the row count, header rows included.
func (m DataMatrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m DataMatrix) Cols() int { return m.cols }

// At returns the cell at 0-based r/c. Out-of-range positions are unset.
func (m DataMatrix) At(r, c int) Cell {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return Cell{}
	}
	return m.cells[r*m.cols+c]
}

// Set stores text at 0-based r/c.
func (m DataMatrix) Set(r, c int, text string) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return
	}
	m.cells[r*m.cols+c] = Cell{Text: text, Set: true}
}
