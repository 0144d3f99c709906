package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zemscript/engine/parser"
	"zemscript/lib/diag"
)

func runArgs(t *testing.T, argv ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(argv, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func write(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Eval(t *testing.T) {
	code, stdout, stderr := runArgs(t, "-e", "x = 1 + 2;", "--show-result")
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "3\n", stdout)

	code, stdout, _ = runArgs(t, "-e", "println('hi', 2);")
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi 2\n", stdout)
}

func TestRun_Errors(t *testing.T) {
	code, stdout, stderr := runArgs(t, "-e", "x = y;")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "variable 'y' is not set")

	code, _, stderr = runArgs(t, "-e", "x = ;")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stderr)

	code, _, _ = runArgs(t, "--no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runArgs(t, filepath.Join(t.TempDir(), "missing.zem"))
	assert.Equal(t, 1, code)
}

func TestRun_Format(t *testing.T) {
	code, stdout, _ := runArgs(t, "-e", "x = 1 + 2 * 3;", "--format")
	assert.Equal(t, 0, code)
	assert.Equal(t, "x = (1 + (2 * 3));\n", stdout)

	code, stdout, _ = runArgs(t, "-e", "x = 1;", "--print-ast")
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, stdout)
}

func TestRun_ScriptWithPrelude(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "prelude.zem", "double = function(x) { return x * 2; };")
	cfg := write(t, dir, "zem.yaml", "prelude: [prelude.zem]\nshow_result: true\nlog_level: warn\n")
	script := write(t, dir, "main.zem", "double(21);")

	code, stdout, stderr := runArgs(t, "--config", cfg, script)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "42\n", stdout)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	dir := t.TempDir()
	path := write(t, dir, "zem.yaml", "dev: true\nlog_level: info\nmetrics_port: 9090\nprelude: [a.zem, /abs/b.zem]\n")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Dev:         true,
		LogLevel:    "info",
		MetricsPort: 9090,
		Prelude:     []string{filepath.Join(dir, "a.zem"), "/abs/b.zem"},
	}, cfg)

	merged := cfg.Merge(Args{LogLevel: "debug", ShowResult: true})
	assert.Equal(t, "debug", merged.LogLevel)
	assert.True(t, merged.ShowResult)
	assert.True(t, merged.Dev)
	assert.Equal(t, uint(9090), merged.MetricsPort)

	bad := write(t, dir, "bad.yaml", "verbose: true\n")
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(false, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	assert.Same(t, logger, zap.L())

	logger, err = NewLogger(false, "")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))

	logger, err = NewLogger(true, "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger(false, "loud")
	assert.Error(t, err)
}

func TestParse_IncompleteInput(t *testing.T) {
	for _, src := range []string{
		"x = 1",
		"f = function(a) {",
		"if (x) { y = 1;",
		"s = 'abc",
		"/* comment",
	} {
		_, err := parser.Parse(src)
		require.Error(t, err, src)
		assert.True(t, diag.IsIncomplete(err), src)
	}

	for _, src := range []string{"x = ;", "x = 1 +;", "s = 'a' # 'b';"} {
		_, err := parser.Parse(src)
		require.Error(t, err, src)
		assert.False(t, diag.IsIncomplete(err), src)
	}
	_, err := parser.Parse("x = 1;")
	assert.False(t, diag.IsIncomplete(err))
}
