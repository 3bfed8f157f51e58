package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/config"
	"github.com/walteh/smbprecheck/pkg/stage"
	"github.com/walteh/smbprecheck/pkg/workbook"
)

func TestRunUpdateIDs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvLogDir, filepath.Join(dir, "log"))

	control := filepath.Join(dir, "control.xlsx")
	base := filepath.Join(dir, "cases")
	common := []string{"--control", control, "--env-file", ""}

	require.Equal(t, 0, run(context.Background(), append([]string{"init"}, common...)), "init should succeed")
	assert.Equal(t, 1, run(context.Background(), append([]string{"init"}, common...)), "init should refuse to overwrite")

	original := filepath.Join(base, "case.xlsx")
	doc, err := workbook.Create(original, "Test Case")
	require.NoError(t, err)
	require.NoError(t, doc.SetValue("Test Case", "A2", "TC"))
	require.NoError(t, doc.SetValue("Test Case", "A5", "TC_07"))
	require.NoError(t, doc.Save())
	require.NoError(t, doc.Close())

	code := run(context.Background(), append([]string{"update-ids", "--base", base}, common...))
	require.Equal(t, 0, code, "update-ids should succeed")

	processed, err := workbook.Open(stage.ProcessedPath(original))
	require.NoError(t, err, "processed copy should exist")
	defer processed.Close()

	for cell, want := range map[string]string{"A3": "TC_00", "A4": "TC_00_01", "A5": "TC_01"} {
		got, err := processed.Value("Test Case", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}

	untouched, err := workbook.Open(original)
	require.NoError(t, err)
	defer untouched.Close()
	v, err := untouched.Value("Test Case", "A5")
	require.NoError(t, err)
	assert.Equal(t, "TC_07", v, "the original should not change")
}

func TestRunMissingControl(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvLogDir, filepath.Join(dir, "log"))

	code := run(context.Background(), []string{"scan", "--control", filepath.Join(dir, "missing.xlsx"), "--env-file", ""})
	assert.Equal(t, 1, code)
}

func TestVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, FormatVersion(), "smbprecheck")
}
