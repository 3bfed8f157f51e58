package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
	"github.com/walteh/smbprecheck/pkg/operation"
)

// NewScanCmd creates the command that rebuilds the file table
func NewScanCmd(o *opts.RootOpts) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the workbooks in the base folder",
		Long: `Scan replaces the file table with the workbooks found directly in the
base folder. Include? is prefilled from the include and exclude filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				options.BaseOverride = base
				return operation.NewScanOperation(options)
			})
		},
	}

	addBaseFlag(cmd, &base)

	return cmd
}

// NewListSubfoldersCmd creates the command that lists the base folder's subfolders
func NewListSubfoldersCmd(o *opts.RootOpts) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "list-subfolders",
		Short: "Write the base folder's subfolders to the control workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				options.BaseOverride = base
				return operation.NewSubfolderOperation(options)
			})
		},
	}

	addBaseFlag(cmd, &base)

	return cmd
}
