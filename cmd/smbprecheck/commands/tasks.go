package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
	"github.com/walteh/smbprecheck/pkg/operation"
	"github.com/walteh/smbprecheck/pkg/task"
)

// NewUpdateIDsCmd creates the renumbering batch command
func NewUpdateIDsCmd(o *opts.RootOpts) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "update-ids",
		Short: "Renumber case and step ids in every selected workbook",
		Long: `Update-ids rewrites column A of the task sheet. Case rows get
<root>_NN and step rows get <case>_NN. Rows whose second column holds the
precondition keyword repeat the previous id.

The batch stops at the first workbook that fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				options.BaseOverride = base
				return operation.NewBatchOperation(options, task.NewRenumber(o.Config.TaskSheet, o.Config.PreconditionKeyword))
			})
		},
	}

	addBaseFlag(cmd, &base)

	return cmd
}

// NewIOChangeCmd creates the io name substitution batch command
func NewIOChangeCmd(o *opts.RootOpts) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "io-change",
		Short: "Replace io names using the mapping sheet",
		Long: `Io-change applies every From/To pair of the mapping sheet, case
insensitively, to the text cells inside the configured range.

The batch stops at the first workbook that fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := o.Config.Range()
			if err != nil {
				return err
			}
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				options.BaseOverride = base
				return operation.NewBatchOperation(options, task.NewSubstitute(o.Config.TaskSheet, rng, options.Store))
			})
		},
	}

	addBaseFlag(cmd, &base)

	return cmd
}

// NewValueFindCmd creates the search batch command
func NewValueFindCmd(o *opts.RootOpts) *cobra.Command {
	var (
		base        string
		appendEdits bool
	)

	cmd := &cobra.Command{
		Use:   "value-find",
		Short: "Stage an edit for every cell containing the search text",
		Long: `Value-find searches the configured columns for the search text and
stages one edit per match, addressed at the cell to the right of the match.
Fill in NewValue on the staged edit sheet, then run change-value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			minCol, maxCol, err := o.Config.Columns()
			if err != nil {
				return err
			}
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				options.BaseOverride = base
				op := operation.NewBatchOperation(options, task.NewSearch(o.Config.TaskSheet, minCol, maxCol, options.Store, options.Store))
				op.ClearEdits = !appendEdits
				return op
			})
		},
	}

	addBaseFlag(cmd, &base)
	cmd.Flags().BoolVar(&appendEdits, "append", false, "keep previously staged edits")

	return cmd
}

// NewChangeValueCmd creates the command that applies staged edits
func NewChangeValueCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change-value",
		Short: "Apply the staged edits",
		Long: `Change-value writes NewValue of every staged edit into its workbook.
Each edit is applied on its own: a failing edit is logged and the rest
continue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, o, func(options operation.Options) operation.Operation {
				return operation.NewApplyOperation(options)
			})
		},
	}

	return cmd
}
