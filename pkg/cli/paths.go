/*
Copyright © 2026 the confup authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mbed-tools/confup/pkg/config"
	"github.com/mbed-tools/confup/pkg/errors"
	"github.com/mbed-tools/confup/pkg/version"
)

const (
	// V2ConfigPath is the default configuration file name in Mbed TLS 2.x.
	V2ConfigPath = "include/mbedtls/config.h"
	// DefaultConfigPath is the default configuration file name in Mbed TLS 3.x.
	DefaultConfigPath = "include/mbedtls/mbedtls_config.h"
)

// fromVersionFlag is shared by the commands that resolve an input file.
// Flags carry parse state, so each command gets its own instance.
func fromVersionFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "from-version",
		Usage: "Presumed version of the input file (e.g. \"2.28\")",
	}
}

// detectInput determines the input file and its apparent version from the
// command line and well-known file names. Only the file name is consulted
// here; an explicit version declaration inside the file is picked up later
// during analysis and takes precedence for rule gating.
func detectInput(inputArg, fromVersion string) (string, version.Number, error) {
	if inputArg != "" {
		if fromVersion == "" {
			fromVersion = "2"
		}
		from, err := version.Parse(fromVersion)
		if err != nil {
			return "", version.Number{}, errors.Wrap(errors.ErrCodeInvalidVersion,
				fmt.Sprintf("invalid --from-version %q", fromVersion), err)
		}
		return inputArg, from, nil
	}

	if fromVersion != "" {
		from, err := version.Parse(fromVersion)
		if err != nil {
			return "", version.Number{}, errors.Wrap(errors.ErrCodeInvalidVersion,
				fmt.Sprintf("invalid --from-version %q", fromVersion), err)
		}
		if from.AtLeast(3) {
			return DefaultConfigPath, from, nil
		}
		return V2ConfigPath, from, nil
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return DefaultConfigPath, version.MustParse("3"), nil
	}
	if _, err := os.Stat(V2ConfigPath); err == nil {
		return V2ConfigPath, version.MustParse("2"), nil
	}
	return "", version.Number{}, errors.NewWithContext(errors.ErrCodeNotFound,
		"no Mbed TLS configuration file found",
		map[string]any{
			"tried": []string{DefaultConfigPath, V2ConfigPath},
		})
}

// streamToken reports whether the path selects stdin/stdout.
func streamToken(path string) bool {
	return path == config.StreamPath
}
