package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 8  // Width for status text
)

// 🎯 FormatFileOperation formats one file outcome for display
func FormatFileOperation(name string, st FileStatus, message string) string {
	var prefix string
	switch st {
	case StatusSuccess:
		prefix = color.GreenString("✓")
	case StatusFail:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	label := st.String()
	if label == "" {
		label = "skipped"
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %-*s %-*s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, name,
		statusWidth, label,
		message,
	), " ")
}
