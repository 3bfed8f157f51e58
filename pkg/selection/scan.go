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

package selection

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"gitlab.com/tozd/go/errors"
)

// DefaultPatterns are the file name patterns scanned when none are configured
var DefaultPatterns = []string{"*.xlsx", "*.xlsm"}

// lockPrefix marks the owner files office suites leave next to open documents
const lockPrefix = "~$"

// 📄 Candidate is a file found by Scan
type Candidate struct {
	Name string
	Path string
}

// 🔍 Scan lists the regular files directly inside folder whose lowercase name
// matches any of patterns, sorted by name.
func Scan(ctx context.Context, folder string, patterns []string) ([]Candidate, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(folder) == "" {
		return nil, fault.Configuration("base folder is not set")
	}
	info, err := os.Stat(folder)
	if os.IsNotExist(err) {
		return nil, fault.Configuration("base folder not found: %s", folder)
	} else if err != nil {
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("checking base folder: %w", err))
	}
	if !info.IsDir() {
		return nil, fault.Configuration("base folder is not a directory: %s", folder)
	}

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fault.Configuration("invalid file pattern %q", pattern)
		}
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Errorf("resolving base folder: %w", err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fault.Wrap(fault.KindIO, errors.Errorf("reading base folder: %w", err))
	}

	var found []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, lockPrefix) {
			continue
		}
		if !matchAny(patterns, strings.ToLower(name)) {
			logger.Debug().Str("file", name).Msg("skipping file, no pattern match")
			continue
		}
		found = append(found, Candidate{Name: name, Path: filepath.Join(abs, name)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })

	logger.Debug().Str("folder", abs).Int("files", len(found)).Msg("scanned base folder")
	return found, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(strings.ToLower(pattern), name); ok {
			return true
		}
	}
	return false
}
