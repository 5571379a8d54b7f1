package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lsk2017/ExcelToJson/pkg/exceltojson"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildOptionsFromFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-e", "in", "-t", "tpl.tml", "-d", "data", "-c", "class",
		"--prefix", "#", "--pretty=false", "-j", "3",
	}))

	v := viper.New()
	require.NoError(t, loadConfig(v, cmd.Flags()))
	opts := buildOptions(v)

	assert.Equal(t, "in", opts.ExcelDir)
	assert.Equal(t, "tpl.tml", opts.TemplatePath)
	assert.Equal(t, "data", opts.DataDir)
	assert.Equal(t, "class", opts.ClassDir)
	assert.Equal(t, "#", opts.ReservedPrefix)
	assert.False(t, opts.Pretty)
	assert.Equal(t, 3, opts.Parallel)
}

func TestBuildOptionsDefaults(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	v := viper.New()
	require.NoError(t, loadConfig(v, cmd.Flags()))
	opts := buildOptions(v)

	assert.Equal(t, exceltojson.DefaultReservedPrefix, opts.ReservedPrefix)
	assert.True(t, opts.Pretty)
	assert.Equal(t, 1, opts.Parallel)
}

func TestBuildOptionsFromEnvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "exceltojson.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("excel: from-file\ntemplate: file.tml\nparallel: 2\n"), 0644))
	t.Setenv("EXCELTOJSON_DATA", "from-env")
	t.Setenv("EXCELTOJSON_TEMPLATE", "env.tml")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfg, "-c", "from-flag"}))

	v := viper.New()
	require.NoError(t, loadConfig(v, cmd.Flags()))
	opts := buildOptions(v)

	assert.Equal(t, "from-file", opts.ExcelDir)
	assert.Equal(t, "env.tml", opts.TemplatePath)
	assert.Equal(t, "from-env", opts.DataDir)
	assert.Equal(t, "from-flag", opts.ClassDir)
	assert.Equal(t, 2, opts.Parallel)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

	err := loadConfig(viper.New(), cmd.Flags())
	require.Error(t, err)
	assert.True(t, errors.Is(err, exceltojson.ErrConfig))
}

func TestRootCmdMissingFlags(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-e", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, exceltojson.ErrConfig))
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "template file (-t)")
}

func TestRootCmdConverts(t *testing.T) {
	root := t.TempDir()
	excelDir := filepath.Join(root, "excel")
	dataDir := filepath.Join(root, "data")
	classDir := filepath.Join(root, "class")
	tplPath := filepath.Join(root, "class.tml")
	require.NoError(t, os.MkdirAll(excelDir, 0755))
	require.NoError(t, os.WriteFile(tplPath, []byte("$EXTENSION(cs)\nclass $SHEET_NAME {}"), 0644))

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Item"))
	require.NoError(t, f.SetSheetRow("Item", "A1", &[]any{"int", "string"}))
	require.NoError(t, f.SetSheetRow("Item", "A2", &[]any{"id", "name"}))
	require.NoError(t, f.SetSheetRow("Item", "A3", &[]any{1, "Sword"}))
	require.NoError(t, f.SaveAs(filepath.Join(excelDir, "items.xlsx")))
	require.NoError(t, f.Close())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-e", excelDir, "-t", tplPath, "-d", dataDir, "-c", classDir, "--pretty=false"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dataDir, "Item.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"name":"Sword"}]`, string(data))

	code, err := os.ReadFile(filepath.Join(classDir, "Item.cs"))
	require.NoError(t, err)
	assert.Equal(t, "\nclass Item {}", string(code))
}

func TestRootCmdMalformedFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"flag without value", []string{"-e"}, "flag needs an argument"},
		{"unknown shorthand", []string{"-x", "foo"}, "unknown shorthand flag: 'x'"},
		{"positional argument", []string{"-e", "a", "extra"}, `unknown command "extra"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, out.String(), "Error: ")
			assert.Contains(t, out.String(), tt.expected)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestRootCmdConfigErrorPrintsUsage(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing template file", []string{"-e", root, "-t", filepath.Join(root, "absent.tml"), "-d", root, "-c", root}},
		{"missing excel directory", []string{"-e", filepath.Join(root, "absent"), "-t", writeTemplate(t, root), "-d", root, "-c", root}},
		{"unreadable config file", []string{"--config", filepath.Join(root, "absent.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.True(t, errors.Is(err, exceltojson.ErrConfig))
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestRootCmdSheetFailureOmitsUsage(t *testing.T) {
	root := t.TempDir()
	excelDir := filepath.Join(root, "excel")
	require.NoError(t, os.MkdirAll(excelDir, 0755))

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"int"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"id"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"abc"}))
	require.NoError(t, f.SaveAs(filepath.Join(excelDir, "bad.xlsx")))
	require.NoError(t, f.Close())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-e", excelDir, "-t", writeTemplate(t, root), "-d", root, "-c", root})

	err := cmd.Execute()
	require.Error(t, err)
	assert.False(t, errors.Is(err, exceltojson.ErrConfig))
	assert.Contains(t, out.String(), "Error: ")
	assert.NotContains(t, out.String(), "Usage:")
}

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "class.tml")
	require.NoError(t, os.WriteFile(path, []byte("$EXTENSION(cs)\nclass $SHEET_NAME {}"), 0644))
	return path
}
