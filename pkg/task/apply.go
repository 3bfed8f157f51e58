package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/workbook"
)

// ApplyObserver is told about each staged edit as Apply works through them
type ApplyObserver interface {
	RecordStarted(ctx context.Context, index, total int, edit state.StagedEdit)
	RecordFailed(ctx context.Context, edit state.StagedEdit, err error)
}

// ApplyFailure is one staged edit that could not be written
type ApplyFailure struct {
	Edit state.StagedEdit
	Err  error
}

// 📊 ApplyReport counts the outcome of an Apply run
type ApplyReport struct {
	Succeeded int
	Failed    int
	Failures  []ApplyFailure
}

// Total is the number of records attempted
func (r ApplyReport) Total() int {
	return r.Succeeded + r.Failed
}

// ✍️ Apply writes the new value of every staged edit into its document. A
// bad record is counted and reported; it never stops the run.
type Apply struct {
	Observer ApplyObserver
}

// NewApply creates an Apply task. observer may be nil.
func NewApply(observer ApplyObserver) *Apply {
	return &Apply{Observer: observer}
}

func (a *Apply) Name() string { return "change-value" }

// Run applies edits in order, opening each document fresh
func (a *Apply) Run(ctx context.Context, edits []state.StagedEdit) (ApplyReport, Result) {
	logger := zerolog.Ctx(ctx)

	var report ApplyReport
	for i, edit := range edits {
		if a.Observer != nil {
			a.Observer.RecordStarted(ctx, i+1, len(edits), edit)
		}

		if err := applyOne(edit); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, ApplyFailure{Edit: edit, Err: err})
			logger.Debug().Err(err).Str("file", edit.FilePath).Str("cell", edit.CellAddress).Msg("staged edit failed")
			if a.Observer != nil {
				a.Observer.RecordFailed(ctx, edit, err)
			}
			continue
		}
		report.Succeeded++
	}

	msg := fmt.Sprintf("%d applied, %d failed", report.Succeeded, report.Failed)
	if len(edits) == 0 {
		msg = "no staged edits"
	}
	return report, Result{Success: true, Message: msg}
}

func applyOne(edit state.StagedEdit) error {
	if err := edit.Validate(); err != nil {
		return err
	}

	doc, err := workbook.Open(strings.TrimSpace(edit.FilePath))
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := doc.RequireSheet(edit.TargetSheet); err != nil {
		return err
	}
	if err := doc.SetInferred(edit.TargetSheet, strings.ToUpper(strings.TrimSpace(edit.CellAddress)), edit.NewValue); err != nil {
		return err
	}
	return doc.Save()
}
