package schema

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseNext(t *testing.T) {
	tests := []struct {
		phase    Phase
		col      int
		lastCol  int
		expected Phase
	}{
		{TypeParsing, 1, 3, TypeParsing},
		{TypeParsing, 3, 3, MemberNameParsing},
		{MemberNameParsing, 2, 3, MemberNameParsing},
		{MemberNameParsing, 3, 3, DataParsing},
		{DataParsing, 3, 3, DataParsing},
		{DataParsing, 1, 3, DataParsing},
	}

	for _, tt := range tests {
		result := tt.phase.Next(tt.col, tt.lastCol)
		if result != tt.expected {
			t.Errorf("%v.Next(%d, %d) = %v, expected %v",
				tt.phase, tt.col, tt.lastCol, result, tt.expected)
		}
	}
}

func TestExtractItemSheet(t *testing.T) {
	grid := parser.NewGrid("Item", [][]string{
		{"int", "string"},
		{"id", "name"},
		{"1", "Sword"},
		{"2", "Shield"},
	})

	s, m, err := ExtractGrid(grid, nil)
	require.NoError(t, err)

	assert.Equal(t, "Item", s.Name)
	assert.Equal(t, []string{"int", "string"}, s.Types)
	assert.Equal(t, []string{"id", "name"}, s.Members)
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 2, m.Cols())

	// Header rows stay in the index space but are never populated.
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			assert.False(t, m.At(r, c).Set, "header cell %d,%d", r, c)
		}
	}
	assert.Equal(t, models.Cell{Text: "1", Set: true}, m.At(2, 0))
	assert.Equal(t, models.Cell{Text: "Shield", Set: true}, m.At(3, 1))
}

func TestExtractNullTypeCellBecomesSentinel(t *testing.T) {
	grid := parser.NewGrid("S", [][]string{
		{"int", "", "float"},
		{"a", "b", "c"},
	})

	s, _, err := ExtractGrid(grid, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"int", models.UntypedTag, "float"}, s.Types)
	assert.Equal(t, []string{"a", "b", "c"}, s.Members)
}

func TestExtractNullDataCellIsReported(t *testing.T) {
	grid := parser.NewGrid("S", [][]string{
		{"int", "string"},
		{"id", "name"},
		{"1", ""},
		{"", "x"},
	})

	type pos struct{ row, col int }
	var nulls []pos
	s, m, err := ExtractGrid(grid, func(row, col int) {
		nulls = append(nulls, pos{row, col})
	})
	require.NoError(t, err)

	assert.Equal(t, []pos{{3, 2}, {4, 1}}, nulls)
	assert.Equal(t, 2, s.Len())
	assert.False(t, m.At(2, 1).Set)
	assert.False(t, m.At(3, 0).Set)
	assert.Equal(t, "x", m.At(3, 1).Text)
}

func TestExtractOffsetExtent(t *testing.T) {
	// Populated block starts at B3.
	grid := parser.NewGrid("Offset", [][]string{
		{},
		{},
		{"", "int", "string"},
		{"", "id", "name"},
		{"", "7", "Bow"},
	})
	require.Equal(t, models.Extent{R1: 3, C1: 2, R2: 5, C2: 3}, grid.Extent)

	s, m, err := ExtractGrid(grid, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"int", "string"}, s.Types)
	assert.Equal(t, []string{"id", "name"}, s.Members)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, "Bow", m.At(2, 1).Text)
}

func TestExtractHeaderOnlyAndSingleRow(t *testing.T) {
	s, m, err := ExtractGrid(parser.NewGrid("H", [][]string{{"int"}, {"id"}}), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, s.Members)
	assert.Equal(t, 2, m.Rows())

	s, m, err = ExtractGrid(parser.NewGrid("One", [][]string{{"int", "float"}}), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"int", "float"}, s.Types)
	assert.Equal(t, []string{"", ""}, s.Members)
	assert.Equal(t, 1, m.Rows())
}

func TestExtractMissingMemberName(t *testing.T) {
	grid := parser.NewGrid("S", [][]string{
		{"int", "string"},
		{"id", ""},
		{"1", "x"},
	})
	// The extent still spans two columns because of the type row.
	_, _, err := ExtractGrid(grid, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingMemberName))
	assert.Contains(t, err.Error(), "row 2 column 2")
}

func TestExtractDuplicateMemberName(t *testing.T) {
	grid := parser.NewGrid("Dup", [][]string{
		{"", "int", "int", "string"},
		{"", "k", "k", "name"},
		{"", "1", "2", "x"},
	})

	_, _, err := ExtractGrid(grid, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateMemberName))
	assert.Contains(t, err.Error(), `"k" in row 2 columns 2 and 3`)
}

func TestExtractEmptySheet(t *testing.T) {
	_, _, err := ExtractGrid(parser.NewGrid("Empty", nil), nil)
	assert.True(t, errors.Is(err, ErrEmptySheet))
}

func TestExtractResultIsIndependentCopy(t *testing.T) {
	grid := parser.NewGrid("S", [][]string{{"int"}, {"id"}})
	x := NewExtractor(grid.SheetName, grid.Extent, nil)
	require.NoError(t, x.Feed(1, 1, "int", true))
	assert.Equal(t, MemberNameParsing, x.Phase())
	require.NoError(t, x.Feed(2, 1, "id", true))
	assert.Equal(t, DataParsing, x.Phase())

	s, _, err := x.Result()
	require.NoError(t, err)
	s.Types[0] = "float"

	again, _, err := x.Result()
	require.NoError(t, err)
	assert.Equal(t, "int", again.Types[0])
}
