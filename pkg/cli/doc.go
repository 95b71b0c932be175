/*
Copyright © 2026 the confup authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the confup command line interface.
//
// The root command exposes two subcommands: upgrade rewrites a
// configuration file to the current format, and analyze reports what
// an upgrade would do without touching the file. Input file detection
// follows the conventional Mbed TLS tree layout when no file is named
// on the command line.
package cli
