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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/commands"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "smbprecheck",
		Short: "Batch maintenance for test case workbooks",
		Long: `smbprecheck runs maintenance tasks over a folder of test case workbooks.
A control workbook holds the base folder, the filters, the file table with
per-file status, the io name mappings and the staged cell edits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging()
			ctx := logger.WithContext(cmd.Context())
			if cmd.Name() == "version" {
				cmd.SetContext(ctx)
				return nil
			}
			ctx, err := initRootOpts(ctx, rootOpts)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}
	rootCmd.SetArgs(args)

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewInitCmd(rootOpts),
		commands.NewScanCmd(rootOpts),
		commands.NewUpdateIDsCmd(rootOpts),
		commands.NewIOChangeCmd(rootOpts),
		commands.NewValueFindCmd(rootOpts),
		commands.NewChangeValueCmd(rootOpts),
		commands.NewListSubfoldersCmd(rootOpts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err.Error())
		return 1
	}
	return 0
}
