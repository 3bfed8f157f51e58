package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/xuri/excelize/v2"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dir string) string
		wantKind fault.Kind
	}{
		{
			name: "existing_workbook",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "a.xlsx")
				doc, err := Create(path, "Test Case")
				require.NoError(t, err, "Create should succeed")
				require.NoError(t, doc.Close())
				return path
			},
		},
		{
			name: "missing_file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "missing.xlsx")
			},
			wantKind: fault.KindNotFound,
		},
		{
			name: "unsupported_extension",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "legacy.xls")
				require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))
				return path
			},
			wantKind: fault.KindFormat,
		},
		{
			name: "corrupt_workbook",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "broken.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))
				return path
			},
			wantKind: fault.KindIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t, t.TempDir())

			doc, err := Open(path)
			if tt.wantKind != fault.KindUnknown {
				require.Error(t, err, "Open should fail")
				assert.Equal(t, tt.wantKind, fault.KindOf(err), "error kind should match")
				return
			}

			require.NoError(t, err, "Open should succeed")
			defer doc.Close()
			assert.Equal(t, path, doc.Path(), "path should match")
			assert.True(t, doc.HasSheet("Test Case"), "sheet should exist")
		})
	}
}

func TestDocumentCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cells.xlsx")
	doc, err := Create(path, "Test Case", "Other")
	require.NoError(t, err, "Create should succeed")

	require.NoError(t, doc.SetValue("Test Case", "A1", "Widget"))
	require.NoError(t, doc.File().SetCellInt("Test Case", "A2", 42))
	require.NoError(t, doc.SetBool("Test Case", "A3", true))
	require.NoError(t, doc.Save(), "Save should succeed")
	require.NoError(t, doc.Close())

	doc, err = Open(path)
	require.NoError(t, err, "reopening should succeed")
	defer doc.Close()

	assert.Equal(t, []string{"Test Case", "Other"}, doc.Sheets(), "sheets should keep their order")

	v, isText, err := doc.Text("Test Case", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", v, "string value should round trip")
	assert.True(t, isText, "string cell should be text")

	_, isText, err = doc.Text("Test Case", "A2")
	require.NoError(t, err)
	assert.False(t, isText, "number cell should not be text")
	v, err = doc.Value("Test Case", "A2")
	require.NoError(t, err)
	assert.Equal(t, "42", v, "number should be displayed")

	_, isText, err = doc.Text("Test Case", "A9")
	require.NoError(t, err)
	assert.False(t, isText, "empty cell should not be text")

	last, err := doc.LastRow("Test Case")
	require.NoError(t, err)
	assert.Equal(t, 3, last, "last row should match")

	err = doc.RequireSheet("Missing")
	require.Error(t, err, "missing sheet should fail")
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err), "missing sheet should be NotFound")
	assert.Contains(t, err.Error(), "Test Case, Other", "error should list available sheets")
}

func TestSetInferred(t *testing.T) {
	doc, err := Create(filepath.Join(t.TempDir(), "typed.xlsx"), "Test Case")
	require.NoError(t, err)
	defer doc.Close()

	tests := []struct {
		cell     string
		value    string
		want     string
		wantText bool
	}{
		{cell: "B1", value: "12", want: "12"},
		{cell: "B2", value: "2.5", want: "2.5"},
		{cell: "B3", value: "True", want: "TRUE"},
		{cell: "B4", value: "SIG_B", want: "SIG_B", wantText: true},
		{cell: "B5", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			require.NoError(t, doc.SetInferred("Test Case", tt.cell, tt.value))
			v, err := doc.Value("Test Case", tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)

			_, isText, err := doc.Text("Test Case", tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, isText)
		})
	}
}

func TestValidAddress(t *testing.T) {
	tests := []struct {
		address string
		want    bool
	}{
		{"B3", true},
		{"b3", true},
		{"XFD1048576", true},
		{" C12 ", true},
		{"A1234567", true},
		{"1A", false},
		{"A12345678", false},
		{"ABCD1", false},
		{"A", false},
		{"", false},
		{"A1:B2", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAddress(tt.address), "validity should match")
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("A5:M700")
	require.NoError(t, err)
	assert.Equal(t, Range{MinCol: 1, MinRow: 5, MaxCol: 13, MaxRow: 700}, r, "range should match")

	_, err = ParseRange("M700:A5")
	require.Error(t, err, "reversed range should fail")

	_, err = ParseRange("A5")
	require.Error(t, err, "single cell should fail")

	minCol, maxCol, err := ParseColumns("C:F")
	require.NoError(t, err)
	assert.Equal(t, 3, minCol)
	assert.Equal(t, 6, maxCol)

	minCol, maxCol, err = ParseColumns("D")
	require.NoError(t, err)
	assert.Equal(t, 4, minCol)
	assert.Equal(t, 4, maxCol)

	assert.Equal(t, "D7", CellName(4, 7), "cell name should match")
}

func TestTextIgnoresFormattedNumbers(t *testing.T) {
	doc, err := Create(filepath.Join(t.TempDir(), "formats.xlsx"), "Test Case")
	require.NoError(t, err)
	defer doc.Close()

	f := doc.File()
	require.NoError(t, f.SetCellFloat("Test Case", "A1", 1234.5, -1, 64))
	require.NoError(t, f.SetCellFloat("Test Case", "A2", 45000, -1, 64))
	require.NoError(t, f.SetCellFormula("Test Case", "A3", `"IO_"&"X"`))
	require.NoError(t, f.SetCellStr("Test Case", "A4", "1,234.50"))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	date, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Test Case", "A1", "A1", thousands))
	require.NoError(t, f.SetCellStyle("Test Case", "A2", "A2", date))

	displayed, err := doc.Value("Test Case", "A1")
	require.NoError(t, err)
	assert.Equal(t, "1,234.50", displayed, "display format should apply")

	tests := []struct {
		cell     string
		wantText bool
	}{
		{cell: "A1"},
		{cell: "A2"},
		{cell: "A3"},
		{cell: "A4", wantText: true},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			v, isText, err := doc.Text("Test Case", tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, isText)
			if tt.wantText {
				assert.Equal(t, "1,234.50", v)
			}
		})
	}
}
