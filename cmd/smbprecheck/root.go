package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/smbprecheck/cmd/smbprecheck/opts"
	"github.com/walteh/smbprecheck/pkg/config"
	"github.com/walteh/smbprecheck/pkg/log"
	"github.com/walteh/smbprecheck/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile  string
	controlFile string
	dotenvFile  string
	debug       bool
)

// initRootOpts loads the config and fills in the shared options
func initRootOpts(ctx context.Context, o *opts.RootOpts) (context.Context, error) {
	cfg, err := config.Resolve(ctx, configFile, dotenvFile)
	if err != nil {
		return ctx, errors.Errorf("loading config: %w", err)
	}

	if controlFile != "" {
		cfg.Control = controlFile
		if err := cfg.Validate(); err != nil {
			return ctx, errors.Errorf("validating control flag: %w", err)
		}
	}

	session := log.NewSession(cfg.LogDir)

	logger := zerolog.Ctx(ctx).With().Str("session", session.ID).Logger()
	ctx = logger.WithContext(ctx)

	o.Config = cfg
	o.Session = session
	o.Console = log.New(os.Stdout, logger)
	o.Runner = operation.NewRunner()

	logger.Debug().Str("config", cfg.String()).Str("from", cfg.Location()).Msg("configuration loaded")

	return log.NewContext(ctx, o.Console), nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: first of "+defaultFilesHelp()+")")
	cmd.PersistentFlags().StringVar(&controlFile, "control", "", "control workbook path, overrides the config")
	cmd.PersistentFlags().StringVar(&dotenvFile, "env-file", ".env", "dotenv file with SMBPRECHECK_* overrides")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

func defaultFilesHelp() string {
	return strings.Join(config.DefaultFiles, ", ")
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
