/*
Copyright © 2026 the confup authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mbed-tools/confup/pkg/config"
	"github.com/mbed-tools/confup/pkg/report"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Report what an upgrade would do without writing the file",
		ArgsUsage:             "[INPUT_FILE]",
		Description: `Analyze a configuration file and report its detected versions and
which upgrade rules would fire. The input file is never modified.`,
		Flags: []cli.Flag{
			fromVersionFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Report format (%s)", strings.Join(report.SupportedFormats(), ", ")),
				Value:   string(report.FormatTable),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report file (default: standard output)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input, presumed, err := detectInput(cmd.Args().First(), cmd.String("from-version"))
			if err != nil {
				return err
			}

			c := config.New(presumed)
			if streamToken(input) {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				if err := c.Parse(string(data)); err != nil {
					return err
				}
			} else if err := c.Load(input); err != nil {
				return err
			}
			if err := c.Analyze(); err != nil {
				return err
			}

			w, err := report.NewFileWriterOrStdout(report.Format(cmd.String("format")), cmd.String("output"))
			if err != nil {
				return err
			}
			defer w.Close()

			return w.Serialize(report.Build(c, input, config.Default()))
		},
	}
}
