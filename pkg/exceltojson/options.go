// Package exceltojson converts worksheets into JSON data files and
// template-generated source files.
package exceltojson

import (
	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson/coerce"
)

// DefaultReservedPrefix marks worksheets that are never converted.
const DefaultReservedPrefix = "_"

// Options configures a conversion run. It is built once at startup and not
// modified afterwards.
type Options struct {
	// ExcelDir is the directory scanned for *.xlsx workbooks.
	ExcelDir string
	// TemplatePath is the code-generation template file.
	TemplatePath string
	// DataDir receives <Sheet>.json files.
	DataDir string
	// ClassDir receives <Sheet>.<ext> files.
	ClassDir string
	// ReservedPrefix skips sheets whose name starts with it.
	// Empty disables the check.
	ReservedPrefix string
	// Pretty indents the JSON output.
	Pretty bool
	// Parallel is the number of workbooks converted at once.
	// Values below 2 convert sequentially.
	Parallel int
	// Coercions maps column type tags to value conversions.
	// If nil, coerce.Default() is used.
	Coercions *coerce.Registry
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		ReservedPrefix: DefaultReservedPrefix,
		Pretty:         true,
		Parallel:       1,
	}
}

// Validate reports missing required settings as ErrConfig.
func (o Options) Validate() error {
	var missing []string
	if o.ExcelDir == "" {
		missing = append(missing, "excel directory (-e)")
	}
	if o.TemplatePath == "" {
		missing = append(missing, "template file (-t)")
	}
	if o.DataDir == "" {
		missing = append(missing, "data output directory (-d)")
	}
	if o.ClassDir == "" {
		missing = append(missing, "class output directory (-c)")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrConfig, "missing %v", missing)
	}
	return nil
}

func (o Options) registry() *coerce.Registry {
	if o.Coercions != nil {
		return o.Coercions
	}
	return coerce.Default()
}

func (o Options) workers() int {
	if o.Parallel < 1 {
		return 1
	}
	return o.Parallel
}
