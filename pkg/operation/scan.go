package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/selection"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ScanOperation rewrites the file table from the base folder
type ScanOperation struct {
	BaseOperation
}

// NewScanOperation creates a scan run
func NewScanOperation(opts Options) *ScanOperation {
	return &ScanOperation{BaseOperation: NewBaseOperation(opts)}
}

func (op *ScanOperation) Name() string {
	return "scan"
}

func (op *ScanOperation) Execute(ctx context.Context) (*Summary, error) {
	start := op.Clock()
	sum := &Summary{Operation: op.Name(), State: StateValidating}

	settings, err := op.resolveSettings(ctx)
	if err != nil {
		err = op.abort(ctx, sum, settings.BaseFolder, err)
		sum.Elapsed = op.Clock().Sub(start)
		sum.LogPath = op.Session.Path()
		return sum, err
	}

	found, err := selection.Scan(ctx, settings.BaseFolder, op.Patterns)
	if err != nil {
		err = op.abort(ctx, sum, settings.BaseFolder, err)
		sum.Elapsed = op.Clock().Sub(start)
		sum.LogPath = op.Session.Path()
		return sum, err
	}

	rows := selection.Rows(found, selection.NewFilterSpec(settings.IncludeFilter, settings.ExcludeFilter))
	if err := op.Store.ReplaceFileRows(ctx, rows); err != nil {
		return nil, errors.Errorf("writing file table: %w", err)
	}
	if err := op.Store.Save(ctx); err != nil {
		return nil, errors.Errorf("saving store: %w", err)
	}

	for _, r := range rows {
		if *r.Include {
			sum.Succeeded = append(sum.Succeeded, r.Name)
		}
	}
	sum.State = StateCompleted
	sum.Total = len(rows)
	sum.Message = fmt.Sprintf("%d files listed, %d included", len(rows), len(sum.Succeeded))
	sum.Elapsed = op.Clock().Sub(start)

	op.Console.Success(sum.Message)
	return sum, nil
}

// 📂 SubfolderOperation lists the immediate subfolders of the base folder
type SubfolderOperation struct {
	BaseOperation
}

// NewSubfolderOperation creates a subfolder listing run
func NewSubfolderOperation(opts Options) *SubfolderOperation {
	return &SubfolderOperation{BaseOperation: NewBaseOperation(opts)}
}

func (op *SubfolderOperation) Name() string {
	return "list-subfolders"
}

func (op *SubfolderOperation) Execute(ctx context.Context) (*Summary, error) {
	start := op.Clock()
	sum := &Summary{Operation: op.Name(), State: StateValidating}

	settings, err := op.resolveSettings(ctx)
	if err != nil {
		err = op.abort(ctx, sum, settings.BaseFolder, err)
		sum.Elapsed = op.Clock().Sub(start)
		sum.LogPath = op.Session.Path()
		return sum, err
	}

	entries, err := os.ReadDir(settings.BaseFolder)
	if err != nil {
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("reading base folder: %w", err))
	}

	abs, err := filepath.Abs(settings.BaseFolder)
	if err != nil {
		return nil, errors.Errorf("resolving base folder: %w", err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, withTrailingSeparator(filepath.Join(abs, e.Name())))
		}
	}
	sort.Strings(folders)

	zerolog.Ctx(ctx).Debug().Int("folders", len(folders)).Msg("subfolders listed")

	if err := op.Store.SetSubfolders(ctx, folders); err != nil {
		return nil, errors.Errorf("writing subfolders: %w", err)
	}
	if err := op.Store.Save(ctx); err != nil {
		return nil, errors.Errorf("saving store: %w", err)
	}

	sum.State = StateCompleted
	sum.Total = len(folders)
	sum.Succeeded = folders
	sum.Message = fmt.Sprintf("%d subfolders listed", len(folders))
	sum.Elapsed = op.Clock().Sub(start)

	op.Console.Success(sum.Message)
	return sum, nil
}
