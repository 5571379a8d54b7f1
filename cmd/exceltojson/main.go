// Package main provides the CLI entry point for exceltojson.
package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/internal/logger"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "EXCELTOJSON"

// Configuration keys. Each is also the long flag name.
const (
	keyExcel    = "excel"
	keyTemplate = "template"
	keyData     = "data"
	keyClass    = "class"
	keyConfig   = "config"
	keyPrefix   = "prefix"
	keyPretty   = "pretty"
	keyParallel = "parallel"
	keyVerbose  = "verbose"
	keyLogJSON  = "log-json"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "exceltojson",
		Short: "Convert Excel worksheets into JSON data and generated source files",
		Long: `exceltojson reads every .xlsx workbook in a directory. Each worksheet
becomes <Sheet>.json in the data directory and, through the template,
<Sheet>.<ext> in the class directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	f := cmd.Flags()
	f.StringP(keyExcel, "e", "", "Directory containing .xlsx workbooks")
	f.StringP(keyTemplate, "t", "", "Code-generation template file")
	f.StringP(keyData, "d", "", "Output directory for JSON data files")
	f.StringP(keyClass, "c", "", "Output directory for generated source files")
	f.String(keyConfig, "", "Config file (yaml, toml or json)")
	f.String(keyPrefix, exceltojson.DefaultReservedPrefix, "Skip worksheets whose name starts with this prefix")
	f.Bool(keyPretty, true, "Indent JSON output")
	f.IntP(keyParallel, "j", 1, "Number of workbooks converted at once")
	f.CountP(keyVerbose, "v", "Increase log verbosity")
	f.Bool(keyLogJSON, false, "Write logs as JSON")

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	// Flags parsed; only configuration errors below print usage.
	cmd.SilenceUsage = true

	if err := loadConfig(v, cmd.Flags()); err != nil {
		return usageError(cmd, err)
	}

	if err := logger.Initialize(v.GetBool(keyLogJSON), v.GetInt(keyVerbose)); err != nil {
		return err
	}
	defer logger.Cleanup()

	opts := buildOptions(v)
	if err := opts.Validate(); err != nil {
		return usageError(cmd, err)
	}

	report, err := exceltojson.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, exceltojson.ErrConfig) {
			logger.Errorw("cannot start conversion", logger.FieldError, err)
			return usageError(cmd, err)
		}
		for _, hint := range errors.GetAllHints(err) {
			logger.Infow("hint", "text", hint)
		}
		logger.Errorw("conversion finished with errors",
			logger.FieldCount, report.Failed(),
			logger.FieldError, err)
		return err
	}
	return nil
}

// usageError prints usage after err is reported.
func usageError(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = false
	return err
}

// loadConfig layers flags over environment variables over the optional
// config file.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Mark(errors.Wrapf(err, "read config %s", path), exceltojson.ErrConfig)
		}
	}
	return nil
}

func buildOptions(v *viper.Viper) exceltojson.Options {
	opts := exceltojson.DefaultOptions()
	opts.ExcelDir = v.GetString(keyExcel)
	opts.TemplatePath = v.GetString(keyTemplate)
	opts.DataDir = v.GetString(keyData)
	opts.ClassDir = v.GetString(keyClass)
	opts.ReservedPrefix = v.GetString(keyPrefix)
	opts.Pretty = v.GetBool(keyPretty)
	opts.Parallel = v.GetInt(keyParallel)
	return opts
}
