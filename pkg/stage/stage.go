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

// Package stage keeps a one-time backup of every original document and a
// fresh working copy that tasks may modify.
package stage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// Sibling folder names created next to each original document
const (
	BackupDir    = "_backup"
	ProcessedDir = "_processed"
)

// BackupPath returns where the backup of original lives
func BackupPath(original string) string {
	return filepath.Join(filepath.Dir(original), BackupDir, filepath.Base(original))
}

// ProcessedPath returns where the working copy of original lives
func ProcessedPath(original string) string {
	return filepath.Join(filepath.Dir(original), ProcessedDir, filepath.Base(original))
}

// 📦 Stager prepares working copies
type Stager struct{}

// New creates a Stager
func New() *Stager {
	return &Stager{}
}

// 🗂️ Stage backs up original once and refreshes its working copy, returning
// the working copy path. The original is only ever read.
func (s *Stager) Stage(ctx context.Context, original string) (string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(original)
	if os.IsNotExist(err) {
		return "", fault.NotFound("file not found: %s", original)
	} else if err != nil {
		return "", fault.Wrap(fault.KindIO, errors.Errorf("checking file: %w", err))
	}
	if !info.Mode().IsRegular() {
		return "", fault.NotFound("not a regular file: %s", original)
	}

	backup := BackupPath(original)
	processed := ProcessedPath(original)

	for _, dir := range []string{filepath.Dir(backup), filepath.Dir(processed)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fault.Wrap(fault.KindIO, errors.Errorf("creating %s: %w", filepath.Base(dir), err))
		}
	}

	if _, err := os.Stat(backup); os.IsNotExist(err) {
		if err := copyFile(original, backup, info); err != nil {
			return "", fault.Wrap(fault.KindIO, errors.Errorf("creating backup: %w", err))
		}
		logger.Debug().Str("backup", backup).Msg("backup created")
	} else if err != nil {
		return "", fault.Wrap(fault.KindIO, errors.Errorf("checking backup: %w", err))
	}

	if err := copyFile(original, processed, info); err != nil {
		return "", fault.Wrap(fault.KindIO, errors.Errorf("creating working copy: %w", err))
	}
	logger.Debug().Str("processed", processed).Msg("working copy refreshed")

	return processed, nil
}

// copyFile writes src to dst through a temp file and carries over the
// permission bits and modification time of src.
func copyFile(src, dst string, info os.FileInfo) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	tempPath := dst + ".tmp"
	destination, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		os.Remove(tempPath)
		return errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Chtimes(tempPath, info.ModTime(), info.ModTime()); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting modification time: %w", err)
	}

	if err := os.Rename(tempPath, dst); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
