package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Extent represents the populated cell bounds of a sheet.
// The zero value is an empty extent.
type Extent struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Empty reports whether the extent covers no cells.
func (e Extent) Empty() bool {
	return e.R1 <= 0 || e.C1 <= 0 || e.R2 < e.R1 || e.C2 < e.C1
}

// Rows returns the number of rows covered by the extent.
func (e Extent) Rows() int {
	if e.Empty() {
		return 0
	}
	return e.R2 - e.R1 + 1
}

// Cols returns the number of columns covered by the extent.
func (e Extent) Cols() int {
	if e.Empty() {
		return 0
	}
	return e.C2 - e.C1 + 1
}

// String returns the extent in A1 range notation, e.g. "A1:D10".
func (e Extent) String() string {
	if e.Empty() {
		return ""
	}
	start, err := excelize.CoordinatesToCellName(e.C1, e.R1)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", e.R1, e.C1, e.R2, e.C2)
	}
	end, err := excelize.CoordinatesToCellName(e.C2, e.R2)
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", e.R1, e.C1, e.R2, e.C2)
	}
	return start + ":" + end
}
