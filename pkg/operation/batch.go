// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/selection"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/status"
	"github.com/walteh/smbprecheck/pkg/task"
	"github.com/walteh/smbprecheck/pkg/workbook"
	"gitlab.com/tozd/go/errors"
)

// 📦 BatchOperation runs one task over every selected file, stopping at the
// first failure.
type BatchOperation struct {
	BaseOperation
	Task task.Task

	// ClearEdits empties the staged edit table before the run
	ClearEdits bool
}

// 🏭 NewBatchOperation creates a batch for t
func NewBatchOperation(opts Options, t task.Task) *BatchOperation {
	return &BatchOperation{
		BaseOperation: NewBaseOperation(opts),
		Task:          t,
	}
}

func (op *BatchOperation) Name() string {
	return op.Task.Name()
}

// 🏃 Execute runs the batch and always returns a summary
func (op *BatchOperation) Execute(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	start := op.Clock()
	sum := &Summary{Operation: op.Task.Name(), State: StateValidating}

	finish := func() *Summary {
		sum.Elapsed = op.Clock().Sub(start)
		sum.LogPath = op.Session.Path()
		return sum
	}

	settings, err := op.resolveSettings(ctx)
	if err != nil {
		err = op.abort(ctx, sum, settings.BaseFolder, err)
		return finish(), err
	}

	sum.State = StateSelecting
	entries, err := op.selectEntries(ctx, settings)
	if err != nil {
		err = op.abort(ctx, sum, settings.BaseFolder, err)
		return finish(), err
	}

	if len(entries) == 0 {
		sum.State = StateNothingSelected
		sum.Message = "no files selected, check the Include? column or the include/exclude filters"
		if err := op.Store.Save(ctx); err != nil {
			return finish(), errors.Errorf("saving store: %w", err)
		}
		op.Console.Warning(sum.Message)
		return finish(), nil
	}

	if err := op.Store.ClearStatuses(ctx); err != nil {
		return finish(), errors.Errorf("clearing statuses: %w", err)
	}
	if op.ClearEdits {
		if err := op.Store.ClearStagedEdits(ctx); err != nil {
			return finish(), errors.Errorf("clearing staged edits: %w", err)
		}
	}
	if err := op.Store.Save(ctx); err != nil {
		return finish(), errors.Errorf("saving store: %w", err)
	}

	sum.State = StateRunning
	sum.Total = len(entries)
	progress := status.NewProgress(len(entries), op.Clock())
	op.Status.StartOperation(ctx, progress)
	op.Console.StartBatch(ctx, log.BatchOperation{Task: op.Task.Name(), Folder: settings.BaseFolder, Total: len(entries)})
	defer op.Console.EndBatch(ctx)

	for i := range entries {
		entry := &entries[i]
		progress = progress.At(i + 1)
		op.Status.UpdateProgress(ctx, progress, entry.Name)

		res := op.runEntry(ctx, entry)
		if !res.Success {
			sum.FailedFile = entry.Name
			sum.Failed = 1
			if serr := op.Store.SetStatus(ctx, entry.Row, status.StatusFail, res.Message); serr != nil {
				logger.Error().Err(serr).Int("row", entry.Row).Msg("recording failure")
			}
			op.Console.LogEntry(ctx, log.EntryOperation{Name: entry.Name, Path: entry.OriginalPath, Status: status.StatusFail, Message: res.Message})
			err := res.Err
			if err == nil {
				err = errors.New(res.Message)
			}
			err = op.abort(ctx, sum, entry.OriginalPath, errors.Errorf("%s on %s: %w", op.Task.Name(), entry.Name, err))
			return finish(), err
		}

		if err := op.Store.SetStatus(ctx, entry.Row, status.StatusSuccess, res.Message); err != nil {
			return finish(), errors.Errorf("recording status of %s: %w", entry.Name, err)
		}
		op.Console.LogEntry(ctx, log.EntryOperation{Name: entry.Name, Path: entry.ProcessedPath, Status: status.StatusSuccess, Message: res.Message})
		sum.Succeeded = append(sum.Succeeded, entry.Name)
	}

	op.Status.FinishOperation(ctx, progress)

	sum.State = StateCompleted
	sum.Message = fmt.Sprintf("%s completed (%d/%d)", op.Task.Name(), len(sum.Succeeded), sum.Total)
	if err := op.Store.Save(ctx); err != nil {
		return finish(), errors.Errorf("saving store: %w", err)
	}
	return finish(), nil
}

// selectEntries fills an empty file table from a folder scan and then selects
func (op *BatchOperation) selectEntries(ctx context.Context, settings state.Settings) ([]selection.Entry, error) {
	spec := selection.NewFilterSpec(settings.IncludeFilter, settings.ExcludeFilter)

	rows, err := op.Store.FileRows(ctx)
	if err != nil {
		return nil, errors.Errorf("reading file table: %w", err)
	}

	if len(rows) == 0 {
		found, err := selection.Scan(ctx, settings.BaseFolder, op.Patterns)
		if err != nil {
			return nil, err
		}
		if err := op.Store.ReplaceFileRows(ctx, selection.Rows(found, spec)); err != nil {
			return nil, errors.Errorf("writing file table: %w", err)
		}
		if rows, err = op.Store.FileRows(ctx); err != nil {
			return nil, errors.Errorf("reading file table: %w", err)
		}
	}

	return selection.Select(ctx, rows, settings.BaseFolder, spec, op.Store)
}

// runEntry stages the entry and runs the task on its working copy
func (op *BatchOperation) runEntry(ctx context.Context, entry *selection.Entry) task.Result {
	processed, err := op.Stager.Stage(ctx, entry.OriginalPath)
	if err != nil {
		return task.Failed(err)
	}
	entry.ProcessedPath = processed

	doc, err := workbook.Open(processed)
	if err != nil {
		return task.Failed(err)
	}
	defer doc.Close()

	res := op.Task.Run(ctx, doc)
	if res.Success && op.Task.Mutates() {
		if err := doc.Save(); err != nil {
			return task.Failed(err)
		}
	}
	return res
}

// ❌ abort records err in the session log, saves the store and marks the summary
func (op *BaseOperation) abort(ctx context.Context, sum *Summary, path string, err error) error {
	sum.State = StateAborted
	sum.Err = err

	if rerr := op.Session.Record(path, err.Error()); rerr != nil {
		zerolog.Ctx(ctx).Error().Err(rerr).Msg("writing session log")
	}
	if op.Store != nil {
		if serr := op.Store.Save(ctx); serr != nil {
			zerolog.Ctx(ctx).Error().Err(serr).Msg("saving store after abort")
		}
	}
	op.Console.Error(err.Error())
	return err
}
