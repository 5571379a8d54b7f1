// Package models defines the value types shared by the conversion pipeline.
package models

// Grid is the raw cell grid of one worksheet.
//
// Cells are addressed by absolute 1-based row and column. A cell that was
// never written, or holds an empty string, is null.
type Grid struct {
	// SheetName is the worksheet name.
	SheetName string `json:"sheet_name"`
	// Extent is the populated bounds of the sheet.
	Extent Extent `json:"extent"`

	rows [][]string
}

// NewGrid wraps physical rows (0-based, as returned by the workbook reader).
func NewGrid(sheetName string, extent Extent, rows [][]string) Grid {
	return Grid{
		SheetName: sheetName,
		Extent:    extent,
		rows:      rows,
	}
}

// Cell returns the text at row/col and whether the cell is populated.
func (g Grid) Cell(row, col int) (string, bool) {
	r, c := row-1, col-1
	if r < 0 || r >= len(g.rows) {
		return "", false
	}
	if c < 0 || c >= len(g.rows[r]) {
		return "", false
	}
	v := g.rows[r][c]
	return v, v != ""
}
