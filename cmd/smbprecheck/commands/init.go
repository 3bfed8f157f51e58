package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/state"
	"gitlab.com/tozd/go/errors"
)

// NewInitCmd creates the command that writes an empty control workbook
func NewInitCmd(o *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty control workbook",
		Long: `Init writes a control workbook with the settings labels, the file table
header and the mapping, staged edit and subfolder sheets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := o.Config.Control

			if _, err := os.Stat(path); err == nil && !force {
				return fault.Configuration("%s already exists, use --force to replace it", path)
			}
			if force {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return errors.Errorf("removing %s: %w", path, err)
				}
			}

			c, err := state.CreateControl(ctx, path)
			if err != nil {
				return errors.Errorf("creating control workbook: %w", err)
			}
			if err := c.Close(); err != nil {
				return errors.Errorf("closing control workbook: %w", err)
			}

			log.FromContext(ctx).Successf("control workbook written to %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing workbook")

	return cmd
}
