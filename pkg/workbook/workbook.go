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

// Package workbook opens spreadsheet documents and exposes the small set of
// cell operations the batch tasks need.
package workbook

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// 📄 Extensions lists the document formats that can be opened and saved
var Extensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// 📗 Document is an open workbook bound to a path on disk
type Document struct {
	file *excelize.File
	path string
}

// 📂 Open opens the workbook at path
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fault.NotFound("file not found: %s", path)
	} else if err != nil {
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("checking file: %w", err))
	}
	if info.IsDir() {
		return nil, fault.NotFound("not a file: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(Extensions, ext) {
		return nil, fault.Format("unsupported file type %q (xlsx/xlsm only): %s", ext, filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("opening workbook %s: %w", filepath.Base(path), err))
	}

	return &Document{file: f, path: path}, nil
}

// 🏗️ Create writes a new workbook containing the given sheets and returns it open
func Create(path string, sheets ...string) (*Document, error) {
	if len(sheets) == 0 {
		return nil, errors.Errorf("at least one sheet is required")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheets[0]); err != nil {
		f.Close()
		return nil, errors.Errorf("naming sheet %q: %w", sheets[0], err)
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, errors.Errorf("creating sheet %q: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		f.Close()
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("creating parent directories: %w", err))
	}
	if err := f.SaveAs(path); err != nil {
		f.Close()
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("saving workbook: %w", err))
	}

	return &Document{file: f, path: path}, nil
}

// Path returns the location the document was opened from
func (d *Document) Path() string {
	return d.path
}

// File exposes the underlying excelize file for styling
func (d *Document) File() *excelize.File {
	return d.file
}

// Sheets returns the sheet names in workbook order
func (d *Document) Sheets() []string {
	return d.file.GetSheetList()
}

// HasSheet reports whether a sheet with the exact name exists
func (d *Document) HasSheet(name string) bool {
	return slices.Contains(d.Sheets(), name)
}

// 🔍 RequireSheet fails with a NotFound error naming the available sheets
func (d *Document) RequireSheet(name string) error {
	if d.HasSheet(name) {
		return nil
	}
	return fault.NotFound("sheet %q not found in %s (sheets: %s)",
		name, filepath.Base(d.path), strings.Join(d.Sheets(), ", "))
}

// Value returns the displayed value of a cell
func (d *Document) Value(sheet, cell string) (string, error) {
	v, err := d.file.GetCellValue(sheet, cell)
	if err != nil {
		return "", errors.Errorf("reading %s!%s: %w", sheet, cell, err)
	}
	return v, nil
}

// 🔤 Text returns the stored string of a cell and whether the cell holds a
// string. Numbers, dates, booleans and formulas are never text, whatever
// their display format.
func (d *Document) Text(sheet, cell string) (string, bool, error) {
	typ, err := d.file.GetCellType(sheet, cell)
	if err != nil {
		return "", false, errors.Errorf("reading type of %s!%s: %w", sheet, cell, err)
	}
	if typ != excelize.CellTypeSharedString && typ != excelize.CellTypeInlineString {
		return "", false, nil
	}

	v, err := d.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false, errors.Errorf("reading %s!%s: %w", sheet, cell, err)
	}
	return v, v != "", nil
}

// SetValue writes a string value into a cell
func (d *Document) SetValue(sheet, cell, value string) error {
	if err := d.file.SetCellStr(sheet, cell, value); err != nil {
		return errors.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// SetInferred writes value as a number or boolean when it reads as one and
// as text otherwise. An empty value clears the cell.
func (d *Document) SetInferred(sheet, cell, value string) error {
	trimmed := strings.TrimSpace(value)

	var err error
	if n, perr := strconv.ParseFloat(trimmed, 64); perr == nil {
		err = d.file.SetCellFloat(sheet, cell, n, -1, 64)
	} else if strings.EqualFold(trimmed, "true") || strings.EqualFold(trimmed, "false") {
		err = d.file.SetCellBool(sheet, cell, strings.EqualFold(trimmed, "true"))
	} else {
		err = d.file.SetCellStr(sheet, cell, value)
	}
	if err != nil {
		return errors.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// SetBool writes a boolean value into a cell
func (d *Document) SetBool(sheet, cell string, value bool) error {
	if err := d.file.SetCellBool(sheet, cell, value); err != nil {
		return errors.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// 📏 LastRow returns the index of the last row that holds any cell
func (d *Document) LastRow(sheet string) (int, error) {
	rows, err := d.file.GetRows(sheet)
	if err != nil {
		return 0, errors.Errorf("reading rows of %s: %w", sheet, err)
	}
	return len(rows), nil
}

// 💾 Save writes the document back to its path
func (d *Document) Save() error {
	if err := d.file.SaveAs(d.path); err != nil {
		return fault.Wrap(fault.KindIO, errors.Errorf("saving %s: %w", filepath.Base(d.path), err))
	}
	return nil
}

// Close releases the document without saving
func (d *Document) Close() error {
	if err := d.file.Close(); err != nil {
		return errors.Errorf("closing %s: %w", filepath.Base(d.path), err)
	}
	return nil
}
