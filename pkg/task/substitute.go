package task

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/text"
	"github.com/walteh/smbprecheck/pkg/workbook"
	"gitlab.com/tozd/go/errors"
)

// DefaultSubstituteRange is the block of cells searched for IO names
const DefaultSubstituteRange = "A5:M700"

// Substitute replaces IO names in the text cells of a fixed range
type Substitute struct {
	Sheet    string
	Range    workbook.Range
	Mappings state.MappingStore

	replacer text.TextReplacer
}

var _ Task = (*Substitute)(nil)

// NewSubstitute creates a Substitute task reading its pairs from mappings
func NewSubstitute(sheet string, rng workbook.Range, mappings state.MappingStore) *Substitute {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Substitute{
		Sheet:    sheet,
		Range:    rng,
		Mappings: mappings,
		replacer: text.NewCaseInsensitiveReplacer(),
	}
}

func (s *Substitute) Name() string  { return "io-change" }
func (s *Substitute) Mutates() bool { return true }

// 🔄 Run applies every From/To pair in order to each text cell of the range
func (s *Substitute) Run(ctx context.Context, doc *workbook.Document) Result {
	pairs, err := s.Mappings.Mappings(ctx)
	if err != nil {
		return Failed(errors.Errorf("loading mappings: %w", err))
	}

	rules := make([]text.ReplacementRule, 0, len(pairs))
	for _, p := range pairs {
		if p.From == "" {
			continue
		}
		rules = append(rules, text.ReplacementRule{FromText: p.From, ToText: p.To})
	}
	if err := s.replacer.ValidateRules(rules); err != nil {
		return Failed(fault.Wrap(fault.KindConfiguration, errors.Errorf("mapping sheet: %w", err)))
	}

	if err := doc.RequireSheet(s.Sheet); err != nil {
		return Failed(err)
	}

	cells, replacements := 0, 0
	for row := s.Range.MinRow; row <= s.Range.MaxRow; row++ {
		for col := s.Range.MinCol; col <= s.Range.MaxCol; col++ {
			cell := workbook.CellName(col, row)
			value, isText, err := doc.Text(s.Sheet, cell)
			if err != nil {
				return Failed(err)
			}
			if !isText {
				continue
			}

			modified, n := s.replacer.ReplaceString(value, rules)
			if n == 0 || modified == value {
				continue
			}
			if err := doc.SetValue(s.Sheet, cell, modified); err != nil {
				return Failed(err)
			}
			cells++
			replacements += n
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("cells", cells).
		Int("replacements", replacements).
		Msg("io names substituted")

	return Succeeded("io names substituted (%d cells, %d replacements)", cells, replacements)
}
