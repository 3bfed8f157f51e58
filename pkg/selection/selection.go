package selection

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// 📌 Entry is a file chosen for the current batch
type Entry struct {
	Row           int    // file table row
	Name          string // display name
	OriginalPath  string // never written by a batch
	ProcessedPath string // set once staged
}

// IncludeWriter persists automatic include decisions
type IncludeWriter interface {
	SetInclude(ctx context.Context, row int, include bool) error
}

// Rows builds fresh file table rows with their automatic include decisions
func Rows(candidates []Candidate, spec FilterSpec) []state.FileRow {
	rows := make([]state.FileRow, 0, len(candidates))
	for _, c := range candidates {
		include := spec.Match(c.Name)
		rows = append(rows, state.FileRow{
			Name:         c.Name,
			OriginalPath: c.Path,
			Include:      &include,
		})
	}
	return rows
}

// ✅ Select returns the included rows as entries, in table order. A manual
// include value wins; otherwise the filter decides and the decision is
// written back through w.
func Select(ctx context.Context, rows []state.FileRow, base string, spec FilterSpec, w IncludeWriter) ([]Entry, error) {
	logger := zerolog.Ctx(ctx)

	var selected []Entry
	for _, row := range rows {
		var include bool
		if row.Include != nil {
			include = *row.Include
		} else {
			include = spec.Match(row.Name)
			if err := w.SetInclude(ctx, row.Row, include); err != nil {
				return nil, errors.Errorf("recording include for %s: %w", row.Name, err)
			}
		}

		if !include {
			logger.Debug().Str("file", row.Name).Msg("file not selected")
			continue
		}

		original := row.OriginalPath
		if original == "" {
			original = filepath.Join(base, row.Name)
		}
		selected = append(selected, Entry{Row: row.Row, Name: row.Name, OriginalPath: original})
	}
	return selected, nil
}
