package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/operation"
	"github.com/walteh/smbprecheck/pkg/task"
	"gitlab.com/tozd/go/errors"
)

func TestPrintSummary(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	tests := []struct {
		name    string
		sum     *operation.Summary
		logged  int
		want    []string
		notWant []string
	}{
		{
			name: "completed",
			sum: &operation.Summary{
				Operation: "update-ids",
				State:     operation.StateCompleted,
				Message:   "update-ids completed (2/2)",
				Total:     2,
				Succeeded: []string{"a.xlsx", "b.xlsx"},
				Elapsed:   3 * time.Second,
			},
			want:    []string{"update-ids completed (2/2)", "a.xlsx", "b.xlsx"},
			notWant: []string{"logged to"},
		},
		{
			name: "aborted_with_kind",
			sum: &operation.Summary{
				Operation:  "io-change",
				State:      operation.StateAborted,
				Total:      3,
				Succeeded:  []string{"a.xlsx"},
				FailedFile: "b.xlsx",
				Err:        errors.Errorf("io-change on b.xlsx: %w", fault.NotFound("sheet %q not found", "Test Case")),
				LogPath:    "vba/log/SMB_20250101_000000.log",
			},
			logged: 1,
			want: []string{
				"io-change aborted on b.xlsx after 1 of 3 files (not_found error)",
				`sheet "Test Case" not found`,
				"1 entries logged to vba/log/SMB_20250101_000000.log",
			},
		},
		{
			name: "aborted_in_validation",
			sum: &operation.Summary{
				Operation: "scan",
				State:     operation.StateAborted,
				Err:       fault.Configuration("base folder is empty"),
			},
			want: []string{"scan aborted on validation after 0 of 0 files (configuration error)"},
		},
		{
			name: "apply_failures",
			sum: &operation.Summary{
				Operation: "change-value",
				State:     operation.StateCompleted,
				Message:   "0 applied, 1 failed",
				Apply: &task.ApplyReport{
					Failed: 1,
					Failures: []task.ApplyFailure{{
						Err: fault.Format("invalid cell address %q", "1A"),
					}},
				},
			},
			want: []string{"0 applied, 1 failed", `invalid cell address "1A"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printSummary(&buf, tt.sum, tt.logged))

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}
