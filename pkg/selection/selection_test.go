package selection

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/state"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644), "creating %s", name)
	}
}

func TestParseTokens(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{";;", nil},
		{"Case", []string{"case"}},
		{" Case ; IO;case; ;draft ", []string{"case", "io", "draft"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTokens(tt.raw))
		})
	}
}

func TestFilterSpecMatch(t *testing.T) {
	tests := []struct {
		name    string
		include string
		exclude string
		file    string
		want    bool
	}{
		{name: "empty_filters_admit_all", file: "a.xlsx", want: true},
		{name: "include_hit", include: "case", file: "TestCase_1.xlsx", want: true},
		{name: "include_miss", include: "case", file: "io_list.xlsx", want: false},
		{name: "any_include_token", include: "case;io", file: "IO_list.xlsx", want: true},
		{name: "exclude_hit", exclude: "draft", file: "Draft_b.xlsx", want: false},
		{name: "exclude_wins_over_include", include: "case", exclude: "old", file: "case_old.xlsx", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFilterSpec(tt.include, tt.exclude).Match(tt.file))
		})
	}
}

func TestFilterCountProperty(t *testing.T) {
	files := []string{"case_a.xlsx", "CASE_b.xlsm", "io_map.xlsx", "draft_case.xlsx", "notes.xlsx", "io_draft.xlsx"}

	filters := []struct{ include, exclude string }{
		{"", ""},
		{"case", ""},
		{"case;io", "draft"},
		{"", "draft;notes"},
		{"zzz", ""},
	}

	for _, f := range filters {
		t.Run(f.include+"|"+f.exclude, func(t *testing.T) {
			spec := NewFilterSpec(f.include, f.exclude)

			want := 0
			for _, name := range files {
				lowered := strings.ToLower(name)
				included := len(spec.Include) == 0
				for _, tok := range spec.Include {
					included = included || strings.Contains(lowered, tok)
				}
				for _, tok := range spec.Exclude {
					if strings.Contains(lowered, tok) {
						included = false
					}
				}
				if included {
					want++
				}
			}

			got := 0
			for _, name := range files {
				if spec.Match(name) {
					got++
				}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestScan(t *testing.T) {
	ctx := testContext(t)

	t.Run("lists_matching_files_sorted", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "b.xlsx", "A.XLSM", "notes.txt", "~$b.xlsx", "c.xls")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0755))

		found, err := Scan(ctx, dir, nil)
		require.NoError(t, err)

		var names []string
		for _, c := range found {
			names = append(names, c.Name)
			assert.True(t, filepath.IsAbs(c.Path), "paths should be absolute")
		}
		assert.Equal(t, []string{"A.XLSM", "b.xlsx"}, names)
	})

	t.Run("custom_patterns", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.xlsx", "case_1.xlsx")

		found, err := Scan(ctx, dir, []string{"case_*.xlsx"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "case_1.xlsx", found[0].Name)
	})

	t.Run("empty_folder", func(t *testing.T) {
		found, err := Scan(ctx, t.TempDir(), nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	errCases := []struct {
		name     string
		folder   func(t *testing.T) string
		patterns []string
	}{
		{name: "unset", folder: func(t *testing.T) string { return " " }},
		{name: "missing", folder: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") }},
		{name: "not_a_directory", folder: func(t *testing.T) string {
			dir := t.TempDir()
			touch(t, dir, "file.xlsx")
			return filepath.Join(dir, "file.xlsx")
		}},
		{name: "bad_pattern", folder: func(t *testing.T) string { return t.TempDir() }, patterns: []string{"[a"}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(ctx, tt.folder(t), tt.patterns)
			require.Error(t, err)
			assert.Equal(t, fault.KindConfiguration, fault.KindOf(err))
		})
	}
}

func TestSelect(t *testing.T) {
	ctx := testContext(t)
	yes, no := true, false

	mem := state.NewMemory()
	require.NoError(t, mem.ReplaceFileRows(ctx, []state.FileRow{
		{Name: "a.xlsx", OriginalPath: "/src/a.xlsx"},
		{Name: "draft_b.xlsx"},
		{Name: "draft_c.xlsx", Include: &yes},
		{Name: "d.xlsx", Include: &no},
		{Name: "e.xlsx"},
	}))
	rows, err := mem.FileRows(ctx)
	require.NoError(t, err)

	selected, err := Select(ctx, rows, "/base", NewFilterSpec("", "draft"), mem)
	require.NoError(t, err)

	var names []string
	for _, e := range selected {
		names = append(names, e.Name)
		assert.Empty(t, e.ProcessedPath, "entries are not staged yet")
	}
	assert.Equal(t, []string{"a.xlsx", "draft_c.xlsx", "e.xlsx"}, names, "manual values should win over the filter")

	assert.Equal(t, "/src/a.xlsx", selected[0].OriginalPath)
	assert.Equal(t, filepath.Join("/base", "e.xlsx"), selected[2].OriginalPath, "missing paths fall back to the base folder")

	assert.Equal(t, &yes, mem.Rows[0].Include, "automatic decisions should be persisted")
	assert.Equal(t, &no, mem.Rows[1].Include, "automatic decisions should be persisted")
}

func TestScanAndSelectDraftExclusion(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	touch(t, dir, "a.xlsx", "draft_b.xlsx")

	found, err := Scan(ctx, dir, nil)
	require.NoError(t, err)

	spec := NewFilterSpec("", "draft")
	mem := state.NewMemory()
	require.NoError(t, mem.ReplaceFileRows(ctx, Rows(found, spec)))
	rows, err := mem.FileRows(ctx)
	require.NoError(t, err)

	selected, err := Select(ctx, rows, dir, spec, mem)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "a.xlsx", selected[0].Name)
}
