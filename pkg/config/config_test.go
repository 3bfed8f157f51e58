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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/smbprecheck/pkg/fault"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml",
			file: "cfg.yaml",
			config: `
control: data/control.xlsm
log_dir: logs/
patterns:
  - "case_*.xlsx"
task_sheet: Cases
precondition_keyword: pre
substitute_range: B2:C10
search_columns: D:E
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("data", "control.xlsm"), cfg.Control, "control should match")
				assert.Equal(t, "logs", cfg.LogDir, "log dir should be cleaned")
				assert.Equal(t, []string{"case_*.xlsx"}, cfg.Patterns)
				assert.Equal(t, "Cases", cfg.TaskSheet)
				assert.Equal(t, "pre", cfg.PreconditionKeyword)

				rng, err := cfg.Range()
				require.NoError(t, err)
				assert.Equal(t, 2, rng.MinCol)
				assert.Equal(t, 10, rng.MaxRow)

				minCol, maxCol, err := cfg.Columns()
				require.NoError(t, err)
				assert.Equal(t, 4, minCol)
				assert.Equal(t, 5, maxCol)
			},
		},
		{
			name:   "json_defaults",
			file:   "cfg.json",
			config: `{"control": "c.xlsx"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "c.xlsx", cfg.Control)
				assert.Equal(t, filepath.Clean(DefaultLogDir), cfg.LogDir)
				assert.Equal(t, []string{"*.xlsx", "*.xlsm"}, cfg.Patterns)
				assert.Equal(t, "Test Case", cfg.TaskSheet)
				assert.Equal(t, "precondition", cfg.PreconditionKeyword)
				assert.Equal(t, "A5:M700", cfg.SubstituteRange)
				assert.Equal(t, "C:F", cfg.SearchColumns)
			},
		},
		{
			name: "hcl_with_env",
			file: "cfg.hcl",
			config: `
control = "${env.SMBPRECHECK_TEST_ROOT}/control.xlsx"
patterns = ["*.xlsm"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("/srv/precheck", "control.xlsx"), cfg.Control)
				assert.Equal(t, []string{"*.xlsm"}, cfg.Patterns)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "cfg.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "cfg.json",
			config:      `{"async": true}`,
			errContains: "parsing JSON",
		},
		{
			name:        "trailing_json",
			file:        "cfg.JSON",
			config:      `{"control": "a.xlsx"} {"control": "b.xlsx"}`,
			errContains: "unexpected data after the config object",
		},
		{
			name:        "bad_range",
			file:        "cfg.yaml",
			config:      "substitute_range: M700:A5\n",
			errContains: "start is after end",
		},
		{
			name:        "bad_control_extension",
			file:        "cfg.yaml",
			config:      "control: control.csv\n",
			errContains: "control must be",
		},
		{
			name:        "unsupported_format",
			file:        "cfg.toml",
			config:      "control = 1",
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SMBPRECHECK_TEST_ROOT", "/srv/precheck")
			ctx := testContext(t)
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))

			cfg, err := Load(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err, "loading should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should match")
				assert.Equal(t, fault.KindConfiguration, fault.KindOf(err))
				return
			}

			require.NoError(t, err, "loading should succeed")
			assert.Equal(t, path, cfg.Location())
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultControl, cfg.Control)
	assert.Empty(t, cfg.Location(), "defaults come from no file")
	assert.NoError(t, cfg.Validate(), "defaults should validate")
}

func TestResolve(t *testing.T) {
	ctx := testContext(t)

	t.Run("explicit_file_and_dotenv", func(t *testing.T) {
		t.Setenv(EnvControl, "")
		os.Unsetenv(EnvControl)
		t.Setenv(EnvLogDir, "from-process")

		dir := t.TempDir()
		path := filepath.Join(dir, "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("control: file.xlsx\nlog_dir: from-file\n"), 0644))
		dotenv := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(dotenv, []byte("SMBPRECHECK_CONTROL=dotenv.xlsx\nSMBPRECHECK_LOG_DIR=from-dotenv\n"), 0644))

		cfg, err := Resolve(ctx, path, dotenv)
		require.NoError(t, err)
		assert.Equal(t, "dotenv.xlsx", cfg.Control, ".env should override the file")
		assert.Equal(t, "from-process", cfg.LogDir, "the process environment should win")
	})

	t.Run("missing_dotenv_is_ignored", func(t *testing.T) {
		t.Setenv(EnvControl, "env.xlsx")

		cfg, err := Resolve(ctx, "", filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Equal(t, "env.xlsx", cfg.Control)
	})

	t.Run("invalid_override", func(t *testing.T) {
		t.Setenv(EnvControl, "control.txt")

		_, err := Resolve(ctx, "", "")
		require.Error(t, err)
		assert.Equal(t, fault.KindConfiguration, fault.KindOf(err))
	})
}
