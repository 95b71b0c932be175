/*
Copyright © 2026 the confup authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mbed-tools/confup/pkg/config"
)

func upgradeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "upgrade",
		EnableShellCompletion: true,
		Usage:                 "Upgrade a configuration file to the current format",
		ArgsUsage:             "[INPUT_FILE]",
		Description: `Upgrade the configuration to the current Mbed TLS version.

The input file defaults to ` + V2ConfigPath + ` or ` + DefaultConfigPath + `,
whichever exists. Use "-" to read standard input or write standard output.

The presumed input version may be overridden by an explicit
MBEDTLS_CONFIG_VERSION declaration inside the file.

# Examples

Upgrade in place (the old file is kept as mbedtls_config.h.bak):
  confup upgrade include/mbedtls/mbedtls_config.h -o include/mbedtls/mbedtls_config.h

Upgrade a 2.x configuration read from stdin to stdout:
  confup upgrade --from-version 2 - -o -`,
		Flags: []cli.Flag{
			fromVersionFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (\"-\" for standard output)",
				Value:   DefaultConfigPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, presumed, err := detectInput(cmd.Args().First(), cmd.String("from-version"))
			if err != nil {
				return err
			}

			output := cmd.String("output")
			c, err := config.Convert(ctx, config.ConvertOptions{
				Presumed:   presumed,
				InputPath:  input,
				OutputPath: output,
				Registry:   config.Default(),
			})
			if err != nil {
				return err
			}

			if !streamToken(output) {
				slog.Info("configuration upgraded",
					"input", input,
					"output", output,
					"fromVersion", c.ContentVersion().String())
			}
			return nil
		},
	}
}
