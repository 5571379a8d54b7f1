package exceltojson

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrConfig indicates unusable run configuration: a missing setting, an
// unreadable template or a missing input directory.
var ErrConfig = errors.New("invalid configuration")

// Stage names the step at which a sheet failed.
type Stage string

const (
	StageRead     Stage = "read"
	StageExtract  Stage = "extract"
	StageJSON     Stage = "json"
	StageTemplate Stage = "template"
	StageWrite    Stage = "write"
)

// SheetError represents a fatal error while converting one sheet.
type SheetError struct {
	Workbook  string
	SheetName string
	Stage     Stage
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s[%s] %s: %v", e.Workbook, e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(workbook, sheetName string, stage Stage, err error) *SheetError {
	return &SheetError{
		Workbook:  workbook,
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
