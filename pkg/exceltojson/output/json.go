// Package output builds and writes the generated artifacts of a sheet.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/coerce"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xuri/excelize/v2"
)

// headerRows is the number of matrix rows holding types and member names.
const headerRows = 2

// Row is one JSON object keyed by member name in schema order.
type Row = *orderedmap.OrderedMap[string, any]

// CoercionError reports a data cell that does not match its column type.
type CoercionError struct {
	Sheet  string
	Row    int // 1-based sheet row
	Column int // 1-based sheet column
	Tag    string
	Raw    string
	Err    error
}

func (e *CoercionError) Error() string {
	cell, _ := excelize.CoordinatesToCellName(e.Column, e.Row)
	return fmt.Sprintf("sheet %q cell %s (row %d, column %d): cannot read %q as %s: %v",
		e.Sheet, cell, e.Row, e.Column, e.Raw, e.Tag, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// BuildRows converts every data row of m into a JSON object, skipping the
// two header rows. origin is the sheet extent the matrix was read from and
// only locates cells in errors. ok is false when m is too short to hold the
// header rows, in which case no data file should be written.
func BuildRows(s models.SheetSchema, m models.DataMatrix, origin models.Extent, reg *coerce.Registry) (rows []Row, ok bool, err error) {
	if m.Rows() < headerRows {
		return nil, false, nil
	}

	rows = make([]Row, 0, m.Rows()-headerRows)
	for r := headerRows; r < m.Rows(); r++ {
		obj := orderedmap.New[string, any](s.Len())
		for c := 0; c < s.Len(); c++ {
			cell := m.At(r, c)
			tag := s.Types[c]
			v, err := reg.Coerce(tag, cell.Text, cell.Set)
			if err != nil {
				cerr := &CoercionError{
					Sheet:  s.Name,
					Row:    origin.R1 + r,
					Column: origin.C1 + c,
					Tag:    tag,
					Raw:    cell.Text,
					Err:    err,
				}
				return nil, true, errors.WithHint(cerr, "fix the cell in the source workbook and run again")
			}
			obj.Set(s.Members[c], v)
		}
		rows = append(rows, obj)
	}
	return rows, true, nil
}

// ToJSON serializes rows as a JSON array. pretty indents with two spaces.
func ToJSON(rows []Row, pretty bool) ([]byte, error) {
	if rows == nil {
		rows = []Row{}
	}
	if pretty {
		return json.MarshalIndent(rows, "", "  ")
	}
	return json.Marshal(rows)
}
