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

package state

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/status"
	"github.com/walteh/smbprecheck/pkg/workbook"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// Control workbook layout
const (
	SheetFiles      = "파일"
	SheetMappings   = "IO_name"
	SheetEdits      = "data_update"
	SheetSubfolders = "script_move"

	CellBaseFolder    = "B2"
	CellIncludeFilter = "B4"
	CellExcludeFilter = "B5"
	CellSearchText    = "B10"
	CellTargetSheet   = "B12"

	FileTableHeaderRow = 7
	FileTableStartRow  = 8
	EditStartRow       = 2
	SubfolderStartRow  = 2

	SuccessFill = "C6EFCE"
	FailFill    = "FFC7CE"
)

const (
	colName = iota + 1
	colOriginalPath
	colInclude
	colStatus
	colMessage
)

// ControlSheets lists the sheets a control workbook must contain
var ControlSheets = []string{SheetFiles, SheetMappings, SheetEdits, SheetSubfolders}

// 📒 Control is a Store backed by the control workbook
type Control struct {
	doc          *workbook.Document
	successStyle int
	failStyle    int
}

var _ Store = (*Control)(nil)

// 📂 OpenControl opens an existing control workbook and checks its sheets
func OpenControl(ctx context.Context, path string) (*Control, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening control workbook")

	doc, err := workbook.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening control workbook: %w", err)
	}

	for _, sheet := range ControlSheets {
		if err := doc.RequireSheet(sheet); err != nil {
			doc.Close()
			return nil, err
		}
	}

	c, err := newControl(doc)
	if err != nil {
		doc.Close()
		return nil, err
	}
	return c, nil
}

// 🏗️ CreateControl writes an empty control workbook with labels and headers
func CreateControl(ctx context.Context, path string) (*Control, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("creating control workbook")

	doc, err := workbook.Create(path, ControlSheets...)
	if err != nil {
		return nil, errors.Errorf("creating control workbook: %w", err)
	}

	labels := []struct{ sheet, cell, value string }{
		{SheetFiles, "A2", "Base folder"},
		{SheetFiles, "A4", "Include filter"},
		{SheetFiles, "A5", "Exclude filter"},
		{SheetFiles, "A10", "Find value"},
		{SheetFiles, "A12", "Target sheet"},
		{SheetFiles, workbook.CellName(colName, FileTableHeaderRow), "Name"},
		{SheetFiles, workbook.CellName(colOriginalPath, FileTableHeaderRow), "OriginalPath"},
		{SheetFiles, workbook.CellName(colInclude, FileTableHeaderRow), "Include?"},
		{SheetFiles, workbook.CellName(colStatus, FileTableHeaderRow), "Status"},
		{SheetFiles, workbook.CellName(colMessage, FileTableHeaderRow), "Message"},
		{SheetEdits, "A1", "FilePath"},
		{SheetEdits, "B1", "MatchValue"},
		{SheetEdits, "C1", "TargetSheet"},
		{SheetEdits, "D1", "AdjacentValue"},
		{SheetEdits, "E1", "CellAddress"},
		{SheetEdits, "F1", "NewValue"},
		{SheetSubfolders, "A1", "Subfolder"},
	}
	for _, l := range labels {
		if err := doc.SetValue(l.sheet, l.cell, l.value); err != nil {
			doc.Close()
			return nil, err
		}
	}

	if err := doc.Save(); err != nil {
		doc.Close()
		return nil, err
	}

	c, err := newControl(doc)
	if err != nil {
		doc.Close()
		return nil, err
	}
	return c, nil
}

func newControl(doc *workbook.Document) (*Control, error) {
	success, err := fillStyle(doc.File(), SuccessFill)
	if err != nil {
		return nil, err
	}
	fail, err := fillStyle(doc.File(), FailFill)
	if err != nil {
		return nil, err
	}
	return &Control{doc: doc, successStyle: success, failStyle: fail}, nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, errors.Errorf("creating %s fill: %w", color, err)
	}
	return id, nil
}

// Path returns the control workbook location
func (c *Control) Path() string {
	return c.doc.Path()
}

func (c *Control) text(sheet, cell string) (string, error) {
	v, err := c.doc.Value(sheet, cell)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// Settings implements SettingsStore
func (c *Control) Settings(ctx context.Context) (Settings, error) {
	var s Settings
	fields := []struct {
		cell string
		dst  *string
	}{
		{CellBaseFolder, &s.BaseFolder},
		{CellIncludeFilter, &s.IncludeFilter},
		{CellExcludeFilter, &s.ExcludeFilter},
		{CellSearchText, &s.SearchText},
		{CellTargetSheet, &s.TargetSheet},
	}
	for _, f := range fields {
		v, err := c.text(SheetFiles, f.cell)
		if err != nil {
			return Settings{}, err
		}
		*f.dst = v
	}
	return s, nil
}

// SetBaseFolder implements SettingsStore
func (c *Control) SetBaseFolder(ctx context.Context, folder string) error {
	return c.doc.SetValue(SheetFiles, CellBaseFolder, folder)
}

// 📋 FileRows reads the file table until the first row without a name
func (c *Control) FileRows(ctx context.Context) ([]FileRow, error) {
	var rows []FileRow
	for row := FileTableStartRow; ; row++ {
		name, err := c.text(SheetFiles, workbook.CellName(colName, row))
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}

		r := FileRow{Row: row, Name: name}
		if r.OriginalPath, err = c.text(SheetFiles, workbook.CellName(colOriginalPath, row)); err != nil {
			return nil, err
		}
		include, err := c.text(SheetFiles, workbook.CellName(colInclude, row))
		if err != nil {
			return nil, err
		}
		r.Include = ParseInclude(include)

		st, err := c.text(SheetFiles, workbook.CellName(colStatus, row))
		if err != nil {
			return nil, err
		}
		r.Status = status.ParseFileStatus(st)

		if r.Message, err = c.text(SheetFiles, workbook.CellName(colMessage, row)); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// ReplaceFileRows clears the file table and writes rows from the first data row
func (c *Control) ReplaceFileRows(ctx context.Context, rows []FileRow) error {
	if err := c.removeRows(SheetFiles, FileTableStartRow); err != nil {
		return err
	}

	for i, r := range rows {
		row := FileTableStartRow + i
		if err := c.doc.SetValue(SheetFiles, workbook.CellName(colName, row), r.Name); err != nil {
			return err
		}
		if err := c.doc.SetValue(SheetFiles, workbook.CellName(colOriginalPath, row), r.OriginalPath); err != nil {
			return err
		}
		if r.Include != nil {
			if err := c.doc.SetBool(SheetFiles, workbook.CellName(colInclude, row), *r.Include); err != nil {
				return err
			}
		}
		if r.Status != status.StatusNone {
			if err := c.SetStatus(ctx, row, r.Status, r.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetInclude implements FileTable
func (c *Control) SetInclude(ctx context.Context, row int, include bool) error {
	return c.doc.SetBool(SheetFiles, workbook.CellName(colInclude, row), include)
}

// 🎨 SetStatus writes the status text with its fill and the message
func (c *Control) SetStatus(ctx context.Context, row int, st status.FileStatus, message string) error {
	cell := workbook.CellName(colStatus, row)
	if err := c.doc.SetValue(SheetFiles, cell, st.String()); err != nil {
		return err
	}

	style := 0
	switch st {
	case status.StatusSuccess:
		style = c.successStyle
	case status.StatusFail:
		style = c.failStyle
	}
	if err := c.doc.File().SetCellStyle(SheetFiles, cell, cell, style); err != nil {
		return errors.Errorf("styling %s: %w", cell, err)
	}

	return c.doc.SetValue(SheetFiles, workbook.CellName(colMessage, row), message)
}

// ClearStatuses blanks the status and message columns of every table row
func (c *Control) ClearStatuses(ctx context.Context) error {
	last, err := c.doc.LastRow(SheetFiles)
	if err != nil {
		return err
	}
	for row := FileTableStartRow; row <= last; row++ {
		if err := c.SetStatus(ctx, row, status.StatusNone, ""); err != nil {
			return err
		}
	}
	return nil
}

// 🔁 Mappings reads From/To pairs, skipping rows without a From value
func (c *Control) Mappings(ctx context.Context) ([]Mapping, error) {
	rows, err := c.doc.File().GetRows(SheetMappings)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", SheetMappings, err)
	}

	var pairs []Mapping
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		m := Mapping{From: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			m.To = row[1]
		}
		pairs = append(pairs, m)
	}
	return pairs, nil
}

// StagedEdits reads every data row of the staged edit table
func (c *Control) StagedEdits(ctx context.Context) ([]StagedEdit, error) {
	rows, err := c.doc.File().GetRows(SheetEdits)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", SheetEdits, err)
	}

	var edits []StagedEdit
	for i := EditStartRow - 1; i < len(rows); i++ {
		cols := rows[i]
		get := func(n int) string {
			if n < len(cols) {
				return strings.TrimSpace(cols[n])
			}
			return ""
		}
		e := StagedEdit{
			FilePath:      get(0),
			MatchValue:    get(1),
			TargetSheet:   get(2),
			AdjacentValue: get(3),
			CellAddress:   get(4),
		}
		if len(cols) > 5 {
			e.NewValue = cols[5]
		}
		if e == (StagedEdit{}) {
			continue
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// AppendStagedEdit writes edit below the last used row
func (c *Control) AppendStagedEdit(ctx context.Context, edit StagedEdit) error {
	last, err := c.doc.LastRow(SheetEdits)
	if err != nil {
		return err
	}
	row := max(last+1, EditStartRow)

	values := []string{edit.FilePath, edit.MatchValue, edit.TargetSheet, edit.AdjacentValue, edit.CellAddress, edit.NewValue}
	for i, v := range values {
		if err := c.doc.SetValue(SheetEdits, workbook.CellName(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

// ClearStagedEdits removes every data row of the staged edit table
func (c *Control) ClearStagedEdits(ctx context.Context) error {
	return c.removeRows(SheetEdits, EditStartRow)
}

// SetSubfolders replaces the subfolder listing
func (c *Control) SetSubfolders(ctx context.Context, folders []string) error {
	if err := c.removeRows(SheetSubfolders, SubfolderStartRow); err != nil {
		return err
	}
	for i, folder := range folders {
		if err := c.doc.SetValue(SheetSubfolders, workbook.CellName(1, SubfolderStartRow+i), folder); err != nil {
			return err
		}
	}
	return nil
}

// 💾 Save writes the control workbook back to disk
func (c *Control) Save(ctx context.Context) error {
	zerolog.Ctx(ctx).Debug().Str("path", c.doc.Path()).Msg("saving control workbook")
	return c.doc.Save()
}

// Close releases the control workbook without saving
func (c *Control) Close() error {
	return c.doc.Close()
}

func (c *Control) removeRows(sheet string, from int) error {
	last, err := c.doc.LastRow(sheet)
	if err != nil {
		return err
	}
	for row := last; row >= from; row-- {
		if err := c.doc.File().RemoveRow(sheet, row); err != nil {
			return errors.Errorf("clearing %s row %d: %w", sheet, row, err)
		}
	}
	return nil
}
