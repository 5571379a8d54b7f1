package parser

import (
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
)

// FindExtent returns the 1-based bounding box of non-empty cells in rows.
// The result is empty when every cell is empty.
func FindExtent(rows [][]string) models.Extent {
	var e models.Extent
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			row, col := r+1, c+1
			if e.R1 == 0 {
				e.R1 = row
			}
			e.R2 = row
			if e.C1 == 0 || col < e.C1 {
				e.C1 = col
			}
			if col > e.C2 {
				e.C2 = col
			}
		}
	}
	return e
}
