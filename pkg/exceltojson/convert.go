package exceltojson

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/internal/logger"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/coerce"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/models"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/output"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/parser"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/schema"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/template"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Skip reasons recorded in the report.
const (
	SkipReservedPrefix = "reserved prefix"
	SkipEmpty          = "no populated cells"
)

// LoadTemplate reads and parses the template file at path.
func LoadTemplate(path string) (*template.Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read template %s", path), ErrConfig)
	}
	tpl, err := template.Parse(string(b))
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse template %s", path), ErrConfig)
	}
	return tpl, nil
}

// Run converts every workbook in opts.ExcelDir.
//
// Configuration problems abort before any sheet is touched. A sheet that
// fails does not stop the others; all sheet errors are returned combined
// alongside the full report.
func Run(ctx context.Context, opts Options) (*models.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tpl, err := LoadTemplate(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	if tpl.Empty() {
		logger.Warnw("template has no $EXTENSION token, source files will not be generated",
			logger.FieldPath, opts.TemplatePath)
	}

	if st, err := os.Stat(opts.ExcelDir); err != nil || !st.IsDir() {
		return nil, errors.Wrapf(ErrConfig, "excel directory %s not found", opts.ExcelDir)
	}
	files, err := parser.ListWorkbooks(opts.ExcelDir)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "list %s", opts.ExcelDir), ErrConfig)
	}

	for _, dir := range []string{opts.DataDir, opts.ClassDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "create %s", dir), ErrConfig)
		}
	}

	c := &converter{
		opts: opts,
		tpl:  tpl,
		reg:  opts.registry(),
	}

	// Each workbook owns its slot, so results keep directory order.
	books := make([]models.WorkbookReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			books[i] = c.convertWorkbook(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &models.Report{Workbooks: books}, err
	}

	report := &models.Report{Workbooks: books}
	var errs error
	for _, wb := range books {
		errs = multierr.Append(errs, wb.Err)
		for _, s := range wb.Sheets {
			errs = multierr.Append(errs, s.Err)
		}
	}

	logger.Infow("complete",
		logger.FieldCount, report.Converted(),
		"failed", report.Failed(),
		"workbooks", len(books))
	return report, errs
}

type converter struct {
	opts Options
	tpl  *template.Template
	reg  *coerce.Registry
}

func (c *converter) convertWorkbook(ctx context.Context, path string) models.WorkbookReport {
	wb, err := parser.OpenWorkbook(path)
	if err != nil {
		logger.Errorw("cannot open workbook", logger.FieldFile, path, logger.FieldError, err)
		return models.WorkbookReport{BookName: path, Err: err}
	}
	defer wb.Close()

	report := models.WorkbookReport{BookName: wb.Name()}
	logger.Debugw("workbook opened", logger.FieldWorkbook, wb.Name())

	for _, name := range wb.SheetNames() {
		if ctx.Err() != nil {
			break
		}
		report.Sheets = append(report.Sheets, c.convertSheet(wb, name))
	}
	return report
}

func (c *converter) convertSheet(wb *parser.Workbook, name string) models.SheetResult {
	result := models.SheetResult{SheetName: name}
	fail := func(stage Stage, err error) models.SheetResult {
		serr := NewSheetError(wb.Name(), name, stage, err)
		logger.Errorw("sheet conversion failed",
			logger.FieldWorkbook, wb.Name(),
			logger.FieldSheet, name,
			logger.FieldStage, string(stage),
			logger.FieldError, err)
		result.Err = serr
		return result
	}

	if c.opts.ReservedPrefix != "" && strings.HasPrefix(name, c.opts.ReservedPrefix) {
		logger.Debugw("sheet skipped", logger.FieldSheet, name, "reason", SkipReservedPrefix)
		result.Skipped = SkipReservedPrefix
		return result
	}

	grid, err := wb.ReadGrid(name)
	if err != nil {
		return fail(StageRead, err)
	}
	if grid.Extent.Empty() {
		logger.Debugw("sheet skipped", logger.FieldSheet, name, "reason", SkipEmpty)
		result.Skipped = SkipEmpty
		return result
	}

	s, m, err := schema.ExtractGrid(grid, func(row, col int) {
		logger.Warnw("value is null",
			logger.FieldWorkbook, wb.Name(),
			logger.FieldSheet, name,
			logger.FieldRow, row,
			logger.FieldColumn, col)
	})
	if err != nil {
		return fail(StageExtract, err)
	}

	// Both artifacts are built before either is written.
	rows, hasData, err := output.BuildRows(s, m, grid.Extent, c.reg)
	if err != nil {
		return fail(StageJSON, err)
	}
	var data []byte
	if hasData {
		if data, err = output.ToJSON(rows, c.opts.Pretty); err != nil {
			return fail(StageJSON, err)
		}
	}
	code, err := c.tpl.Render(s)
	if err != nil {
		return fail(StageTemplate, err)
	}

	if hasData {
		path, err := output.WriteFile(c.opts.DataDir, output.FileName(name, "json"), data)
		if err != nil {
			return fail(StageWrite, err)
		}
		result.JSONPath = path
		result.Rows = len(rows)
	}
	if !code.Empty() {
		path, err := output.WriteFile(c.opts.ClassDir, output.FileName(name, code.Extension), []byte(code.Text))
		if err != nil {
			return fail(StageWrite, err)
		}
		result.CodePath = path
	}

	logger.Infow("sheet parsed",
		logger.FieldWorkbook, wb.Name(),
		logger.FieldSheet, name,
		logger.FieldExtent, grid.Extent.String(),
		logger.FieldCount, result.Rows)
	return result
}
