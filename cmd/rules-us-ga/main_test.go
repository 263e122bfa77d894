package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fixture = "../../ocga/testdata/gov.ga.ocga.2018.title.48.xml"

// execute runs the CLI with args and a fresh HOME, returning stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return executeIn(t, args...)
}

// executeIn runs the CLI with args under the current HOME.
func executeIn(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func sourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gov.ga.ocga.2018.title.48.xml"), data, 0644))
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rules-us-ga version "+Version+" (build: "+BuildTime+")\n", out)
}

func TestConvertThenValidate(t *testing.T) {
	src := sourceDir(t)
	root := t.TempDir()
	report := filepath.Join(t.TempDir(), "report.yaml")

	out, err := execute(t, "convert", "--source", src, "--corpus", root, "--title", "48", "--report", report)
	require.NoError(t, err)
	assert.Contains(t, out, "Titles processed:   1")
	assert.Contains(t, out, "Sections converted: 5")
	assert.FileExists(t, filepath.Join(root, "statutes", "title-48", "us-ga-title-48.akn.xml"))

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, yaml.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary["files_written"])

	out, err = execute(t, "validate", "--corpus", root, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s) checked, 0 issue(s), 0 error(s)")
}

func TestConvert_FailureExitsNonZero(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "gov.ga.ocga.2018.title.49.xml"), []byte("<Code>"), 0644))

	out, err := execute(t, "convert", "--source", src, "--corpus", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert")
	assert.Contains(t, out, "Failed:             1")
}

func TestValidate_ReportsIssues(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "statutes", "title-48", "broken.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<akomaNtoso"), 0644))

	out, err := execute(t, "validate", "--corpus", root)
	require.Error(t, err)
	assert.Contains(t, out, "statutes/title-48/broken.xml: error [not-well-formed]")
}

func TestExportMarkdown(t *testing.T) {
	src := sourceDir(t)

	out, err := execute(t, "export", "markdown", "--source", src, "--title", "48")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Title 48"))
	assert.Contains(t, out, "### § 48-1-1. Short title")

	file := filepath.Join(t.TempDir(), "title-48.md")
	_, err = execute(t, "export", "markdown", "--source", src, "--title", "48", "-o", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestExportMarkdown_UnknownTitle(t *testing.T) {
	_, err := execute(t, "export", "markdown", "--source", sourceDir(t), "--title", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source file for title 12")
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".config", "rules-us-ga", "config.yaml")

	out, err := executeIn(t, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "Created "+path+"\n", out)
	require.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("validate:\n  workers: 3\n"), 0644))
	out, err = executeIn(t, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "Config already exists at "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "validate:\n  workers: 3\n", string(data))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
