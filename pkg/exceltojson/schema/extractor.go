// Package schema turns a raw sheet grid into a typed column schema and a
// data matrix.
//
// The first populated row holds the column type tags, the second the member
// names, and every following row is data.
package schema

import (
	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
)

var (
	// ErrEmptySheet indicates a grid with no populated extent.
	ErrEmptySheet = errors.New("sheet has no populated cells")
	// ErrMissingMemberName indicates an empty cell in the member-name row.
	ErrMissingMemberName = errors.New("missing member name")
	// ErrDuplicateMemberName indicates two columns with the same member name.
	ErrDuplicateMemberName = errors.New("duplicate member name")
)

// CellSource is a sheet grid addressed by absolute 1-based row and column.
type CellSource interface {
	Cell(row, col int) (string, bool)
}

// NullCellFunc receives the absolute position of every null data cell.
type NullCellFunc func(row, col int)

// Extractor holds the in-progress state for one sheet.
type Extractor struct {
	name    string
	extent  models.Extent
	phase   Phase
	types   []string
	members []string
	data    models.DataMatrix
	onNull  NullCellFunc
}

// NewExtractor prepares extraction of a sheet with the given name and extent.
// onNull may be nil.
func NewExtractor(name string, extent models.Extent, onNull NullCellFunc) *Extractor {
	return &Extractor{
		name:    name,
		extent:  extent,
		phase:   TypeParsing,
		types:   make([]string, extent.Cols()),
		members: make([]string, extent.Cols()),
		data:    models.NewDataMatrix(extent.Rows(), extent.Cols()),
		onNull:  onNull,
	}
}

// Phase returns the current phase.
func (x *Extractor) Phase() Phase {
	return x.phase
}

// Feed consumes the cell at absolute row/col. Cells must be fed row by row,
// left to right.
func (x *Extractor) Feed(row, col int, val string, ok bool) error {
	dr := row - x.extent.R1
	dc := col - x.extent.C1

	switch x.phase {
	case TypeParsing:
		if !ok {
			val = models.UntypedTag
		}
		x.types[dc] = val
	case MemberNameParsing:
		if !ok {
			return errors.Wrapf(ErrMissingMemberName, "row %d column %d", row, col)
		}
		for i, m := range x.members[:dc] {
			if m == val {
				return errors.Wrapf(ErrDuplicateMemberName, "%q in row %d columns %d and %d",
					val, row, x.extent.C1+i, col)
			}
		}
		x.members[dc] = val
	case DataParsing:
		if !ok {
			if x.onNull != nil {
				x.onNull(row, col)
			}
			return nil
		}
		x.data.Set(dr, dc, val)
	}

	x.phase = x.phase.Next(col, x.extent.C2)
	return nil
}

// Result returns the schema and data matrix read so far.
func (x *Extractor) Result() (models.SheetSchema, models.DataMatrix, error) {
	s, err := models.SheetSchema{
		Name:    x.name,
		Types:   x.types,
		Members: x.members,
	}.Clone()
	if err != nil {
		return models.SheetSchema{}, models.DataMatrix{}, errors.Wrap(err, "copy schema")
	}
	return s, x.data, nil
}

// Extract reads the whole grid within extent.
func Extract(name string, extent models.Extent, src CellSource, onNull NullCellFunc) (models.SheetSchema, models.DataMatrix, error) {
	if extent.Empty() {
		return models.SheetSchema{}, models.DataMatrix{}, ErrEmptySheet
	}

	x := NewExtractor(name, extent, onNull)
	for r := extent.R1; r <= extent.R2; r++ {
		for c := extent.C1; c <= extent.C2; c++ {
			val, ok := src.Cell(r, c)
			if err := x.Feed(r, c, val, ok); err != nil {
				return models.SheetSchema{}, models.DataMatrix{}, err
			}
		}
	}
	return x.Result()
}

// ExtractGrid is Extract over a models.Grid.
func ExtractGrid(g models.Grid, onNull NullCellFunc) (models.SheetSchema, models.DataMatrix, error) {
	return Extract(g.SheetName, g.Extent, g, onNull)
}
