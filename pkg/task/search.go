package task

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/workbook"
	"gitlab.com/tozd/go/errors"
)

// DefaultSearchColumns are the columns scanned for the search text
const DefaultSearchColumns = "C:F"

// 🔎 Search records every text cell containing the search text as a staged
// edit pointing at the cell to its right.
type Search struct {
	Sheet    string
	MinCol   int
	MaxCol   int
	Settings state.SettingsStore
	Edits    state.EditStore
}

var _ Task = (*Search)(nil)

// NewSearch creates a Search task over the columns minCol..maxCol
func NewSearch(sheet string, minCol, maxCol int, settings state.SettingsStore, edits state.EditStore) *Search {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Search{Sheet: sheet, MinCol: minCol, MaxCol: maxCol, Settings: settings, Edits: edits}
}

func (s *Search) Name() string  { return "value-find" }
func (s *Search) Mutates() bool { return false }

func (s *Search) Run(ctx context.Context, doc *workbook.Document) Result {
	settings, err := s.Settings.Settings(ctx)
	if err != nil {
		return Failed(errors.Errorf("loading settings: %w", err))
	}
	if settings.SearchText == "" {
		return Failed(fault.Configuration("search text is empty"))
	}
	if settings.TargetSheet == "" {
		return Failed(fault.Configuration("target sheet is empty"))
	}

	if err := doc.RequireSheet(s.Sheet); err != nil {
		return Failed(err)
	}

	last, err := doc.LastRow(s.Sheet)
	if err != nil {
		return Failed(err)
	}

	needle := strings.ToLower(settings.SearchText)
	matches := 0
	for row := 1; row <= last; row++ {
		for col := s.MinCol; col <= s.MaxCol; col++ {
			value, isText, err := doc.Text(s.Sheet, workbook.CellName(col, row))
			if err != nil {
				return Failed(err)
			}
			if !isText || !strings.Contains(strings.ToLower(value), needle) {
				continue
			}

			adjacent := workbook.CellName(col+1, row)
			adjacentValue, err := doc.Value(s.Sheet, adjacent)
			if err != nil {
				return Failed(err)
			}

			edit := state.StagedEdit{
				FilePath:      doc.Path(),
				MatchValue:    value,
				TargetSheet:   settings.TargetSheet,
				AdjacentValue: adjacentValue,
				CellAddress:   adjacent,
			}
			if err := s.Edits.AppendStagedEdit(ctx, edit); err != nil {
				return Failed(errors.Errorf("staging edit: %w", err))
			}
			matches++
		}
	}

	zerolog.Ctx(ctx).Debug().Str("search", settings.SearchText).Int("matches", matches).Msg("search complete")

	if matches == 0 {
		return Succeeded("no match")
	}
	return Succeeded("%d matches", matches)
}
