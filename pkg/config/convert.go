// Copyright (c) 2026, the confup authors.
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
	"io"
	"log/slog"
	"os"

	"github.com/mbed-tools/confup/pkg/errors"
	"github.com/mbed-tools/confup/pkg/version"
)

// StreamPath is the reserved path token selecting standard input or
// standard output instead of a named file.
const StreamPath = "-"

// ConvertOptions configures a single end-to-end conversion.
type ConvertOptions struct {
	// Presumed is the version assumed for the input when the content
	// declares none.
	Presumed version.Number
	// InputPath names the file to read; StreamPath reads standard input.
	InputPath string
	// OutputPath names the file to write; StreamPath writes standard
	// output. Writing to a named file backs up any existing file first.
	OutputPath string
	// Registry supplies the upgrade rules; nil selects Default().
	Registry *Registry

	// Stdin and Stdout override the process streams, mainly for tests.
	Stdin  io.Reader
	Stdout io.Writer
}

// Convert runs the whole pipeline: load, analyze, upgrade, write. It is
// pure sequencing over the Configuration contract and produces no output
// at all if any stage fails. The upgraded Configuration is returned for
// callers that want to report on what happened.
func Convert(ctx context.Context, opts ConvertOptions) (*Configuration, error) {
	reg := opts.Registry
	if reg == nil {
		reg = Default()
	}

	c := New(opts.Presumed)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.InputPath == StreamPath {
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		text, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, "failed to read standard input", err)
		}
		if err := c.Parse(string(text)); err != nil {
			return nil, err
		}
	} else {
		if err := c.Load(opts.InputPath); err != nil {
			return nil, err
		}
	}

	if err := c.Analyze(); err != nil {
		return nil, err
	}

	slog.Debug("configuration analyzed",
		"input", opts.InputPath,
		"presumedVersion", c.PresumedVersion().String(),
		"contentVersion", c.ContentVersion().String(),
		"chunks", len(c.Chunks()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Upgrade(reg); err != nil {
		return nil, err
	}

	if opts.OutputPath == StreamPath {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		if err := c.Write(out); err != nil {
			return nil, err
		}
	} else {
		if err := c.Save(opts.OutputPath); err != nil {
			return nil, err
		}
	}

	return c, nil
}
