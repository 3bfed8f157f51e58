// Package state holds the persisted batch state: settings, the file table,
// substitution mappings, staged edits and the subfolder listing.
package state

import (
	"context"
	"strings"

	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/status"
	"github.com/walteh/smbprecheck/pkg/workbook"
)

// ⚙️ Settings are the user inputs stored next to the file table
type Settings struct {
	BaseFolder    string
	IncludeFilter string
	ExcludeFilter string
	SearchText    string
	TargetSheet   string
}

// 📋 FileRow is one row of the persisted file table
type FileRow struct {
	Row          int
	Name         string
	OriginalPath string
	Include      *bool // nil until decided
	Status       status.FileStatus
	Message      string
}

// 🔁 Mapping is one From/To substitution pair
type Mapping struct {
	From string
	To   string
}

// ✏️ StagedEdit is a found value waiting for a new value to be applied
type StagedEdit struct {
	FilePath      string
	MatchValue    string
	TargetSheet   string
	AdjacentValue string
	CellAddress   string
	NewValue      string
}

// Validate reports why the edit cannot be applied, if it cannot
func (e StagedEdit) Validate() error {
	var missing []string
	if strings.TrimSpace(e.FilePath) == "" {
		missing = append(missing, "file path")
	}
	if strings.TrimSpace(e.TargetSheet) == "" {
		missing = append(missing, "target sheet")
	}
	if strings.TrimSpace(e.CellAddress) == "" {
		missing = append(missing, "cell address")
	}
	if len(missing) > 0 {
		return fault.Configuration("missing %s", strings.Join(missing, ", "))
	}
	if !workbook.ValidAddress(e.CellAddress) {
		return fault.Format("invalid cell address %q", e.CellAddress)
	}
	return nil
}

// SettingsStore reads the settings block
type SettingsStore interface {
	Settings(ctx context.Context) (Settings, error)
	SetBaseFolder(ctx context.Context, folder string) error
}

// FileTable reads and updates the file table
type FileTable interface {
	FileRows(ctx context.Context) ([]FileRow, error)
	ReplaceFileRows(ctx context.Context, rows []FileRow) error
	SetInclude(ctx context.Context, row int, include bool) error
	SetStatus(ctx context.Context, row int, st status.FileStatus, message string) error
	ClearStatuses(ctx context.Context) error
}

// MappingStore reads substitution pairs
type MappingStore interface {
	Mappings(ctx context.Context) ([]Mapping, error)
}

// EditStore reads and appends staged edits
type EditStore interface {
	StagedEdits(ctx context.Context) ([]StagedEdit, error)
	AppendStagedEdit(ctx context.Context, edit StagedEdit) error
	ClearStagedEdits(ctx context.Context) error
}

// SubfolderStore records the subfolder listing
type SubfolderStore interface {
	SetSubfolders(ctx context.Context, folders []string) error
}

// 🗄️ Store is everything a batch needs to read and persist
type Store interface {
	SettingsStore
	FileTable
	MappingStore
	EditStore
	SubfolderStore

	Save(ctx context.Context) error
	Close() error
}

// ParseInclude reads a manual Include value. Unknown text is treated as unset.
func ParseInclude(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "y", "yes", "1":
		return ptr(true)
	case "false", "n", "no", "0":
		return ptr(false)
	default:
		return nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
