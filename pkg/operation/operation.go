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
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/stage"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/status"
	"github.com/walteh/smbprecheck/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// 🚦 State is where a batch run is, or where it ended
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSelecting
	StateRunning
	StateCompleted
	StateAborted
	StateNothingSelected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSelecting:
		return "selecting"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	case StateNothingSelected:
		return "nothing_selected"
	default:
		return "unknown"
	}
}

// 🎯 Operation is one command run against the store
type Operation interface {
	Name() string
	Execute(ctx context.Context) (*Summary, error)
}

// 📊 Summary describes how an operation ended
type Summary struct {
	Operation string
	State     State
	Message   string

	Total     int
	Succeeded []string // names of the files that succeeded, in order
	Failed    int

	FailedFile string // set when a batch aborted on a file
	Err        error

	LogPath string // session log, empty when nothing was logged
	Elapsed time.Duration

	Apply *task.ApplyReport
}

// 🔧 Options contains the collaborators shared by every operation
type Options struct {
	// Store holds settings, the file table and staged edits
	Store state.Store
	// Stager prepares backups and working copies
	Stager *stage.Stager
	// Session records fatal errors and failed staged edits
	Session *log.Session
	// Console prints per-file outcomes
	Console *log.Logger
	// Status reports progress
	Status status.StatusReporter
	// BaseOverride replaces the stored base folder when set
	BaseOverride string
	// Patterns selects the files a scan picks up
	Patterns []string
	// Clock defaults to time.Now
	Clock func() time.Time
}

// BaseOperation carries Options with defaults filled in
type BaseOperation struct {
	Options
}

// 🏗️ NewBaseOperation fills unset options with working defaults
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Stager == nil {
		opts.Stager = stage.New()
	}
	if opts.Session == nil {
		opts.Session = log.NewSession(filepath.Join("vba", "log"))
	}
	if opts.Console == nil {
		opts.Console = log.New(io.Discard, zerolog.Nop())
	}
	if opts.Status == nil {
		opts.Status = status.New(nil)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return BaseOperation{Options: opts}
}

// 📁 resolveSettings persists a base folder override and checks the folder exists
func (op *BaseOperation) resolveSettings(ctx context.Context) (state.Settings, error) {
	if op.Store == nil {
		return state.Settings{}, errors.Errorf("store is required")
	}

	if op.BaseOverride != "" {
		abs, err := filepath.Abs(op.BaseOverride)
		if err != nil {
			return state.Settings{}, errors.Errorf("resolving base folder: %w", err)
		}
		if err := op.Store.SetBaseFolder(ctx, withTrailingSeparator(abs)); err != nil {
			return state.Settings{}, errors.Errorf("saving base folder: %w", err)
		}
	}

	settings, err := op.Store.Settings(ctx)
	if err != nil {
		return state.Settings{}, errors.Errorf("reading settings: %w", err)
	}

	if settings.BaseFolder == "" {
		return settings, fault.Configuration("base folder is empty")
	}
	info, err := os.Stat(settings.BaseFolder)
	if err != nil || !info.IsDir() {
		return settings, fault.Configuration("base folder not found: %s", settings.BaseFolder)
	}

	zerolog.Ctx(ctx).Debug().Str("base", settings.BaseFolder).Msg("base folder resolved")
	return settings, nil
}

func withTrailingSeparator(path string) string {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return path
	}
	return path + string(filepath.Separator)
}
