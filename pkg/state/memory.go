package state

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/status"
)

// 🧠 Memory is an in-process Store, used by tests and dry runs
type Memory struct {
	Config     Settings
	Rows       []FileRow
	Pairs      []Mapping
	Edits      []StagedEdit
	Subfolders []string

	// Saves counts calls to Save
	Saves int
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Settings(ctx context.Context) (Settings, error) {
	return m.Config, nil
}

func (m *Memory) SetBaseFolder(ctx context.Context, folder string) error {
	m.Config.BaseFolder = folder
	return nil
}

func (m *Memory) FileRows(ctx context.Context) ([]FileRow, error) {
	return slices.Clone(m.Rows), nil
}

func (m *Memory) ReplaceFileRows(ctx context.Context, rows []FileRow) error {
	m.Rows = make([]FileRow, len(rows))
	for i, row := range rows {
		row.Row = FileTableStartRow + i
		m.Rows[i] = row
	}
	return nil
}

func (m *Memory) SetInclude(ctx context.Context, row int, include bool) error {
	r, err := m.row(row)
	if err != nil {
		return err
	}
	r.Include = ptr(include)
	return nil
}

func (m *Memory) SetStatus(ctx context.Context, row int, st status.FileStatus, message string) error {
	r, err := m.row(row)
	if err != nil {
		return err
	}
	r.Status = st
	r.Message = message
	return nil
}

func (m *Memory) ClearStatuses(ctx context.Context) error {
	for i := range m.Rows {
		m.Rows[i].Status = status.StatusNone
		m.Rows[i].Message = ""
	}
	return nil
}

func (m *Memory) Mappings(ctx context.Context) ([]Mapping, error) {
	return slices.Clone(m.Pairs), nil
}

func (m *Memory) StagedEdits(ctx context.Context) ([]StagedEdit, error) {
	return slices.Clone(m.Edits), nil
}

func (m *Memory) AppendStagedEdit(ctx context.Context, edit StagedEdit) error {
	m.Edits = append(m.Edits, edit)
	return nil
}

func (m *Memory) ClearStagedEdits(ctx context.Context) error {
	m.Edits = nil
	return nil
}

func (m *Memory) SetSubfolders(ctx context.Context, folders []string) error {
	m.Subfolders = slices.Clone(folders)
	return nil
}

func (m *Memory) Save(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Int("rows", len(m.Rows)).Int("edits", len(m.Edits)).Msg("saving memory state")
	m.Saves++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) row(row int) (*FileRow, error) {
	for i := range m.Rows {
		if m.Rows[i].Row == row {
			return &m.Rows[i], nil
		}
	}
	return nil, fault.NotFound("file table row %d not found", row)
}
