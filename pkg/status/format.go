package status

import (
	"fmt"
	"time"
)

// FileFormatter defines how batch progress and outcomes are formatted
type FileFormatter interface {
	// FormatProgress formats the line published before each item
	FormatProgress(state ProgressState, name string, now time.Time) string

	// FormatFinished formats the line published when the batch ends
	FormatFinished(state ProgressState, now time.Time) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatProgress formats "[index/total] name (ETA ...)" with a percentage of completed items
func (f *DefaultFileFormatter) FormatProgress(state ProgressState, name string, now time.Time) string {
	var percentage float64
	if state.Total > 0 {
		percentage = float64(state.Completed()) / float64(state.Total) * 100
	}

	msg := fmt.Sprintf("⏳ [%d/%d] (%.0f%%)", state.Index, state.Total, percentage)
	if name != "" {
		msg += " " + name
	}
	if remaining, ok := state.Remaining(now); ok {
		msg += fmt.Sprintf(" (ETA %s)", FormatDuration(remaining))
	}
	return msg
}

// FormatFinished formats the completion line with the elapsed time
func (f *DefaultFileFormatter) FormatFinished(state ProgressState, now time.Time) string {
	return fmt.Sprintf("✅ Progress: %d/%d (100%%) in %s", state.Total, state.Total, FormatDuration(now.Sub(state.Start)))
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// ⌛ FormatDuration renders minutes from 60s upwards and seconds below
func FormatDuration(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%.1f min", d.Minutes())
	}
	return fmt.Sprintf("%.0f sec", d.Seconds())
}
