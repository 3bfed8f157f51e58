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

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/walteh/smbprecheck/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

const (
	lineTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout = "20060102_150405"
)

// 📓 Session is the error log of one process run. The log file is created on
// the first recorded error and every later error is appended to it.
type Session struct {
	ID string

	dir  string
	now  func() time.Time
	path string
	n    int
}

// 🏭 NewSession creates a session that writes under dir
func NewSession(dir string) *Session {
	return &Session{
		ID:  uuid.NewString(),
		dir: dir,
		now: time.Now,
	}
}

// WithClock replaces the clock used for timestamps
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Path returns the log file path, empty until the first error is recorded
func (s *Session) Path() string {
	return s.path
}

// Count returns how many errors were recorded
func (s *Session) Count() int {
	return s.n
}

// ✍️ Record appends "timestamp | path | message" to the session log
func (s *Session) Record(path, message string) error {
	now := s.now()

	if s.path == "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return fault.Wrap(fault.KindIO, errors.Errorf("creating log directory: %w", err))
		}
		name := filepath.Join(s.dir, fmt.Sprintf("SMB_%s.log", now.Format(fileTimeLayout)))
		abs, err := filepath.Abs(name)
		if err != nil {
			abs = name
		}
		s.path = abs
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fault.Wrap(fault.KindIO, errors.Errorf("opening session log: %w", err))
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s | %s | %s\n", now.Format(lineTimeLayout), path, message); err != nil {
		return fault.Wrap(fault.KindIO, errors.Errorf("writing session log: %w", err))
	}

	s.n++
	return nil
}
