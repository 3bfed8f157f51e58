package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/operation"
	"github.com/walteh/smbprecheck/pkg/status"
)

// 📊 printSummary renders the outcome of one operation. logged is the number
// of entries the session log received.
func printSummary(w io.Writer, sum *operation.Summary, logged int) error {
	elapsed := status.FormatDuration(sum.Elapsed)

	switch sum.State {
	case operation.StateCompleted:
		pterm.Success.WithWriter(w).Printfln("%s: %s (%s)", sum.Operation, sum.Message, elapsed)
	case operation.StateNothingSelected:
		pterm.Warning.WithWriter(w).Printfln("%s: %s", sum.Operation, sum.Message)
	case operation.StateAborted:
		target := sum.FailedFile
		if target == "" {
			target = "validation"
		}
		pterm.Error.WithWriter(w).Printfln("%s aborted on %s after %d of %d files (%s error)",
			sum.Operation, target, len(sum.Succeeded), sum.Total, fault.KindOf(sum.Err))
		if sum.Err != nil {
			pterm.Error.WithWriter(w).Println(status.NewDefaultFileFormatter().FormatError(sum.Err))
		}
	default:
		pterm.Info.WithWriter(w).Printfln("%s: %s", sum.Operation, sum.State)
	}

	if len(sum.Succeeded) > 0 {
		data := pterm.TableData{{"#", "file"}}
		for i, name := range sum.Succeeded {
			data = append(data, []string{fmt.Sprint(i + 1), name})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
			return err
		}
	}

	if sum.Apply != nil && len(sum.Apply.Failures) > 0 {
		data := pterm.TableData{{"file", "sheet", "cell", "error"}}
		for _, f := range sum.Apply.Failures {
			data = append(data, []string{f.Edit.FilePath, f.Edit.TargetSheet, f.Edit.CellAddress, f.Err.Error()})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
			return err
		}
	}

	if sum.LogPath != "" && logged > 0 {
		pterm.Info.WithWriter(w).Printfln("%d entries logged to %s", logged, sum.LogPath)
	}
	return nil
}
