package operation

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/status"
	"github.com/walteh/smbprecheck/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// ✍️ ApplyOperation writes every staged edit, isolating failures per record
type ApplyOperation struct {
	BaseOperation

	progress status.ProgressState
}

var _ task.ApplyObserver = (*ApplyOperation)(nil)

// 🏭 NewApplyOperation creates an apply run
func NewApplyOperation(opts Options) *ApplyOperation {
	return &ApplyOperation{BaseOperation: NewBaseOperation(opts)}
}

func (op *ApplyOperation) Name() string {
	return "change-value"
}

func (op *ApplyOperation) Execute(ctx context.Context) (*Summary, error) {
	start := op.Clock()
	sum := &Summary{Operation: op.Name(), State: StateRunning}

	if op.Store == nil {
		return nil, errors.Errorf("store is required")
	}

	edits, err := op.Store.StagedEdits(ctx)
	if err != nil {
		return nil, errors.Errorf("reading staged edits: %w", err)
	}

	op.progress = status.NewProgress(len(edits), start)
	op.Status.StartOperation(ctx, op.progress)
	op.Console.StartBatch(ctx, log.BatchOperation{Task: op.Name(), Total: len(edits)})

	report, res := task.NewApply(op).Run(ctx, edits)

	op.Console.EndBatch(ctx)
	if len(edits) > 0 {
		op.Status.FinishOperation(ctx, op.progress)
	}

	sum.State = StateCompleted
	sum.Message = res.Message
	sum.Total = report.Total()
	sum.Failed = report.Failed
	sum.Apply = &report
	sum.Elapsed = op.Clock().Sub(start)
	sum.LogPath = op.Session.Path()

	zerolog.Ctx(ctx).Debug().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("staged edits applied")

	return sum, nil
}

// RecordStarted implements task.ApplyObserver
func (op *ApplyOperation) RecordStarted(ctx context.Context, index, total int, edit state.StagedEdit) {
	op.progress = op.progress.At(index)
	op.Status.UpdateProgress(ctx, op.progress, filepath.Base(edit.FilePath)+" "+edit.CellAddress)
}

// RecordFailed implements task.ApplyObserver
func (op *ApplyOperation) RecordFailed(ctx context.Context, edit state.StagedEdit, err error) {
	if rerr := op.Session.Record(edit.FilePath, err.Error()); rerr != nil {
		zerolog.Ctx(ctx).Error().Err(rerr).Msg("writing session log")
	}
	op.Console.LogEntry(ctx, log.EntryOperation{
		Name:    filepath.Base(edit.FilePath),
		Path:    edit.FilePath,
		Status:  status.StatusFail,
		Message: err.Error(),
	})
}
