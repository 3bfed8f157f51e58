package task

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/workbook"
)

// DefaultKeyword marks a row that repeats the current case id
const DefaultKeyword = "precondition"

const (
	rootRow       = 2
	firstChildRow = 5
)

// 🔢 IncrementLastNumber adds one to the number after the last "_" and pads
// it to two digits.
func IncrementLastNumber(id string) (string, error) {
	idx := strings.LastIndex(id, "_")
	if idx < 0 {
		return "", fault.Format("id %q has no _ separator", id)
	}
	prefix, suffix := id[:idx+1], id[idx+1:]
	if suffix == "" || strings.TrimLeft(suffix, "0123456789") != "" {
		return "", fault.Format("id %q does not end in a number", id)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fault.Format("id %q does not end in a number", id)
	}
	return fmt.Sprintf("%s%02d", prefix, n+1), nil
}

// Renumber rewrites the hierarchical case ids in column A
type Renumber struct {
	Sheet   string
	Keyword string
}

var _ Task = (*Renumber)(nil)

// NewRenumber creates a Renumber task, falling back to the default sheet and keyword
func NewRenumber(sheet, keyword string) *Renumber {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return &Renumber{Sheet: sheet, Keyword: keyword}
}

func (r *Renumber) Name() string  { return "update-ids" }
func (r *Renumber) Mutates() bool { return true }

// 🔁 Run derives every id from the root id in A2. Rows 3 and 4 always hold
// the first case and its first step; from row 5 on, an id as long as the case
// id starts a new case and an id as long as the step id becomes the next step,
// or the same step again when column B mentions the keyword.
func (r *Renumber) Run(ctx context.Context, doc *workbook.Document) Result {
	logger := zerolog.Ctx(ctx)

	if err := doc.RequireSheet(r.Sheet); err != nil {
		return Failed(err)
	}

	root, err := r.id(doc, rootRow)
	if err != nil {
		return Failed(err)
	}
	if root == "" {
		return Failed(fault.Format("root id in A%d is empty", rootRow))
	}

	depth1 := root + "_00"
	depth2 := depth1 + "_01"
	if err := doc.SetValue(r.Sheet, "A3", depth1); err != nil {
		return Failed(err)
	}
	if err := doc.SetValue(r.Sheet, "A4", depth2); err != nil {
		return Failed(err)
	}

	keyword := strings.ToLower(r.Keyword)
	rows := 0
	for row := firstChildRow; ; row++ {
		value, err := r.id(doc, row)
		if err != nil {
			return Failed(err)
		}
		if value == "" {
			break
		}

		switch len(value) {
		case len(depth1):
			if depth1, err = IncrementLastNumber(depth1); err != nil {
				return Failed(err)
			}
			depth2 = depth1 + "_00"
			err = doc.SetValue(r.Sheet, workbook.CellName(1, row), depth1)
		case len(depth2):
			desc, derr := doc.Value(r.Sheet, workbook.CellName(2, row))
			if derr != nil {
				return Failed(derr)
			}
			if !strings.Contains(strings.ToLower(desc), keyword) {
				if depth2, err = IncrementLastNumber(depth2); err != nil {
					return Failed(err)
				}
			}
			err = doc.SetValue(r.Sheet, workbook.CellName(1, row), depth2)
		default:
			return Failed(fault.Format("unexpected id pattern at row %d: %s", row, value))
		}
		if err != nil {
			return Failed(err)
		}
		rows++
	}

	logger.Debug().Str("root", root).Int("rows", rows).Msg("case ids renumbered")
	return Succeeded("case ids renumbered (%d rows)", rows)
}

func (r *Renumber) id(doc *workbook.Document, row int) (string, error) {
	v, err := doc.Value(r.Sheet, workbook.CellName(1, row))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}
