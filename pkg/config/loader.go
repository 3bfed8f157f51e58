package config

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Environment variables that override the config file
const (
	EnvControl = "SMBPRECHECK_CONTROL"
	EnvLogDir  = "SMBPRECHECK_LOG_DIR"
)

// DefaultFiles are tried in order when no config path is given
var DefaultFiles = []string{".smbprecheck.yaml", ".smbprecheck.yml", ".smbprecheck.json", ".smbprecheck.hcl"}

// 🧭 Resolve loads the config at path, or the first default file that exists,
// or the defaults. Values from dotenv (when the file exists) and the process
// environment are applied last; the process environment wins.
func Resolve(ctx context.Context, path string, dotenv string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	var cfg *Config
	if path != "" {
		loaded, err := Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		for _, candidate := range DefaultFiles {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			loaded, err := Load(ctx, candidate)
			if err != nil {
				return nil, err
			}
			cfg = loaded
			break
		}
		if cfg == nil {
			logger.Debug().Msg("no config file found, using defaults")
			cfg = Default()
		}
	}

	fileEnv := map[string]string{}
	if dotenv != "" {
		if _, err := os.Stat(dotenv); err == nil {
			values, err := godotenv.Read(dotenv)
			if err != nil {
				return nil, errors.Errorf("reading %s: %w", dotenv, err)
			}
			fileEnv = values
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables and revalidates
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvControl); ok && v != "" {
		cfg.Control = v
	}
	if v, ok := lookup(EnvLogDir); ok && v != "" {
		cfg.LogDir = v
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	return nil
}
