package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// runOperation opens the control workbook, runs the operation built by
// build and prints its summary. The workbook is closed on every path.
func runOperation(cmd *cobra.Command, o *opts.RootOpts, build func(operation.Options) operation.Operation) error {
	ctx := cmd.Context()

	store, err := o.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	op := build(o.Options(store))
	log.FromContext(ctx).Header(op.Name())

	sum, err := o.Runner.Run(ctx, op)
	if sum != nil {
		if perr := printSummary(o.Writer(), sum, o.Session.Count()); perr != nil {
			return errors.Errorf("printing summary: %w", perr)
		}
	}
	if err != nil {
		return errors.Errorf("%s: %w", op.Name(), err)
	}
	return nil
}

// addBaseFlag registers --base on cmd
func addBaseFlag(cmd *cobra.Command, base *string) {
	cmd.Flags().StringVar(base, "base", "", "base folder, saved to the control workbook before the run")
}
