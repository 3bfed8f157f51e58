package opts

import (
	"context"
	"io"
	"os"

	"github.com/walteh/smbprecheck/pkg/config"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/operation"
	"github.com/walteh/smbprecheck/pkg/stage"
	"github.com/walteh/smbprecheck/pkg/state"
	"github.com/walteh/smbprecheck/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands.
// It is filled in before any subcommand runs.
type RootOpts struct {
	Config  *config.Config
	Session *log.Session
	Console *log.Logger
	Runner  *operation.Runner
	Out     io.Writer
}

// OpenStore opens the control workbook named by the config
func (o *RootOpts) OpenStore(ctx context.Context) (*state.Control, error) {
	if o.Config == nil {
		return nil, errors.New("options not initialized")
	}
	c, err := state.OpenControl(ctx, o.Config.Control)
	if err != nil {
		return nil, errors.Errorf("opening control workbook: %w", err)
	}
	return c, nil
}

// Options builds the operation options for store
func (o *RootOpts) Options(store state.Store) operation.Options {
	return operation.Options{
		Store:    store,
		Stager:   stage.New(),
		Session:  o.Session,
		Console:  o.Console,
		Status:   status.New(status.NewDefaultFileFormatter()),
		Patterns: o.Config.Patterns,
	}
}

// Writer returns where command output goes
func (o *RootOpts) Writer() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}
