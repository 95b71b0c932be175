/*
Copyright © 2026 the confup authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mbed-tools/confup/pkg/logging"
)

const name = "confup"

var (
	// overridden during build with ldflags
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Run builds the root command and executes it with the given arguments.
// It returns any execution error; the caller owns the exit code.
func Run(ctx context.Context, args []string) error {
	root := &cli.Command{
		Name:    name,
		Usage:   "Upgrade Mbed TLS configuration files to the current format",
		Version: buildVersion,
		Description: `confup upgrades an Mbed TLS configuration file (mbedtls_config.h or the
older config.h) from a previous major version to the current format,
rewriting only what changed. Comments, whitespace, string literals, and
unrelated lines are preserved byte for byte.

This tool makes a best effort to achieve a correct conversion, but it
cannot handle all cases. Review the output manually.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, buildVersion, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", buildVersion,
				"commit", buildCommit,
				"date", buildDate)
			return ctx, nil
		},
		Commands: []*cli.Command{
			upgradeCmd(),
			analyzeCmd(),
		},
	}

	return root.Run(ctx, args)
}
