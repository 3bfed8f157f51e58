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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/smbprecheck/pkg/fault"
	"github.com/walteh/smbprecheck/pkg/selection"
	"github.com/walteh/smbprecheck/pkg/task"
	"github.com/walteh/smbprecheck/pkg/workbook"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Defaults applied by Validate
const (
	DefaultControl = "control.xlsx"
	DefaultLogDir  = "vba/log"
)

// 📚 Config represents the complete configuration
type Config struct {
	Control             string   `json:"control,omitempty" yaml:"control,omitempty" hcl:"control,optional"`                                        // Control workbook path
	LogDir              string   `json:"log_dir,omitempty" yaml:"log_dir,omitempty" hcl:"log_dir,optional"`                                        // Session log directory
	Patterns            []string `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"patterns,optional"`                                     // File name globs picked up by a scan
	TaskSheet           string   `json:"task_sheet,omitempty" yaml:"task_sheet,omitempty" hcl:"task_sheet,optional"`                               // Sheet the tasks work on
	PreconditionKeyword string   `json:"precondition_keyword,omitempty" yaml:"precondition_keyword,omitempty" hcl:"precondition_keyword,optional"` // Marks rows that repeat a step id
	SubstituteRange     string   `json:"substitute_range,omitempty" yaml:"substitute_range,omitempty" hcl:"substitute_range,optional"`             // Cells searched by io-change
	SearchColumns       string   `json:"search_columns,omitempty" yaml:"search_columns,omitempty" hcl:"search_columns,optional"`                   // Columns searched by value-find

	location string
}

// 🏭 Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fault.NotFound("config file not found: %s", path)
	} else if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, fault.Configuration("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, fault.Wrap(fault.KindConfiguration, errors.Errorf("parsing config: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	return cfg, nil
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate fills defaults and checks the cell references and patterns
func (cfg *Config) Validate() error {
	if cfg.Control == "" {
		cfg.Control = DefaultControl
	}
	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = append([]string(nil), selection.DefaultPatterns...)
	}
	if cfg.TaskSheet == "" {
		cfg.TaskSheet = task.DefaultSheet
	}
	if cfg.PreconditionKeyword == "" {
		cfg.PreconditionKeyword = task.DefaultKeyword
	}
	if cfg.SubstituteRange == "" {
		cfg.SubstituteRange = task.DefaultSubstituteRange
	}
	if cfg.SearchColumns == "" {
		cfg.SearchColumns = task.DefaultSearchColumns
	}

	cfg.Control = filepath.Clean(cfg.Control)
	cfg.LogDir = filepath.Clean(cfg.LogDir)

	if ext := strings.ToLower(filepath.Ext(cfg.Control)); ext != ".xlsx" && ext != ".xlsm" {
		return fault.Configuration("control must be an .xlsx or .xlsm workbook, got %q", cfg.Control)
	}
	for _, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return fault.Configuration("invalid pattern %q", p)
		}
	}
	if _, err := cfg.Range(); err != nil {
		return fault.Wrap(fault.KindConfiguration, err)
	}
	if _, _, err := cfg.Columns(); err != nil {
		return fault.Wrap(fault.KindConfiguration, err)
	}

	return nil
}

// Range parses SubstituteRange
func (cfg *Config) Range() (workbook.Range, error) {
	return workbook.ParseRange(cfg.SubstituteRange)
}

// Columns parses SearchColumns
func (cfg *Config) Columns() (int, int, error) {
	return workbook.ParseColumns(cfg.SearchColumns)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] io=%s find=%s -> %s", cfg.Control, cfg.TaskSheet, cfg.SubstituteRange, cfg.SearchColumns, cfg.LogDir)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
