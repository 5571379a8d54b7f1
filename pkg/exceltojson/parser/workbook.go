package parser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
	"github.com/xuri/excelize/v2"
)

// Workbook is an open workbook file.
type Workbook struct {
	path string
	f    *excelize.File
}

// OpenWorkbook opens the workbook at path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", path)
	}
	return &Workbook{path: path, f: f}, nil
}

// Name returns the workbook file name (no path).
func (wb *Workbook) Name() string {
	return filepath.Base(wb.path)
}

// SheetNames returns the sheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	return wb.f.GetSheetList()
}

// ReadGrid reads the raw cell grid of a sheet.
//
// Cell values are read unformatted so numbers keep their stored text; dates
// stored as numbers therefore read as their serial number. Boolean cells read
// as "True" or "False".
func (wb *Workbook) ReadGrid(sheetName string) (models.Grid, error) {
	rows, err := wb.f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Grid{}, errors.Wrapf(err, "read sheet %q", sheetName)
	}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			if rows[r][c], err = wb.cellText(sheetName, r+1, c+1, v); err != nil {
				return models.Grid{}, errors.Wrapf(err, "read sheet %q", sheetName)
			}
		}
	}
	return NewGrid(sheetName, rows), nil
}

// cellText maps typed cell values that have no useful raw form to text.
func (wb *Workbook) cellText(sheetName string, row, col int, raw string) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	typ, err := wb.f.GetCellType(sheetName, cell)
	if err != nil {
		return "", err
	}
	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" {
			return "True", nil
		}
		return "False", nil
	case excelize.CellTypeDate:
		return wb.f.GetCellValue(sheetName, cell)
	}
	return raw, nil
}

// Close releases the workbook.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// NewGrid builds a grid from physical rows, computing its populated extent.
func NewGrid(sheetName string, rows [][]string) models.Grid {
	return models.NewGrid(sheetName, FindExtent(rows), rows)
}

// ListWorkbooks returns the workbook files in dir, sorted by name.
// Office lock files are ignored.
func ListWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, lockFilePrefix) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), WorkbookExt) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
