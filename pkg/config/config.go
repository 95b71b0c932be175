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
	"fmt"
	"io"
	"os"

	"github.com/mbed-tools/confup/pkg/errors"
	"github.com/mbed-tools/confup/pkg/lexer"
	"github.com/mbed-tools/confup/pkg/version"
)

const (
	// VersionMacro is the in-file version marker. A directive of the form
	//
	//	#define MBEDTLS_CONFIG_VERSION 0x03000000
	//
	// overrides the presumed version during analysis.
	VersionMacro = "MBEDTLS_CONFIG_VERSION"

	// BackupSuffix is appended to the destination path when Save displaces
	// an existing file.
	BackupSuffix = ".bak"
)

// Configuration is an in-memory representation of an Mbed TLS configuration
// file: the lossless chunk sequence plus the version state that gates which
// upgrade rules fire.
//
// Lifecycle: New -> Parse or Load -> Analyze -> Upgrade -> Write or Save.
// A Configuration is owned by a single conversion and is not safe for
// concurrent use.
type Configuration struct {
	presumed version.Number
	explicit version.Number
	content  version.Number

	chunks   []lexer.Chunk
	analyzed bool
}

// New creates a Configuration for input presumed to be at the given version.
// The presumed version is fixed for the lifetime of the Configuration; only
// an explicit in-file marker found by Analyze can override it for gating.
func New(presumed version.Number) *Configuration {
	c := &Configuration{presumed: presumed}
	c.Reset()
	return c
}

// Reset discards all loaded content and analysis state, returning the
// Configuration to its freshly constructed state.
func (c *Configuration) Reset() {
	c.chunks = nil
	c.explicit = version.Number{}
	c.content = c.presumed
	c.analyzed = false
}

// Parse loads the configuration from a string, replacing any prior content.
func (c *Configuration) Parse(text string) error {
	c.Reset()
	chunks, err := lexer.Scan(text)
	if err != nil {
		return err
	}
	c.chunks = chunks
	return nil
}

// Load loads the configuration from a file.
func (c *Configuration) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeIO
		if os.IsNotExist(err) {
			code = errors.ErrCodeNotFound
		}
		return errors.Wrap(code, fmt.Sprintf("failed to read configuration from %s", path), err)
	}
	return c.Parse(string(data))
}

// Analyze scans the loaded chunks once and derives the effective content
// version. If a MBEDTLS_CONFIG_VERSION marker is present, it overrides the
// presumed version; when several markers exist the last one wins. Call
// Analyze after loading and before Upgrade.
func (c *Configuration) Analyze() error {
	for _, chunk := range c.chunks {
		if !chunk.IsDirective() {
			continue
		}
		d, err := lexer.ParseDirective(chunk)
		if err != nil {
			return err
		}
		if d.Name == "define" && d.Word == VersionMacro {
			v, verr := version.FromC(d.Trail)
			if verr != nil {
				return errors.Wrap(errors.ErrCodeInvalidVersion,
					"unable to parse configuration version marker", verr)
			}
			c.explicit = v
			c.content = v
		}
	}
	c.analyzed = true
	return nil
}

// Upgrade applies every rule in the registry whose threshold version is
// strictly greater than the content version, in ascending threshold order.
// Gating uses the single content version captured by Analyze; it is never
// re-read between rule applications, so firing decisions depend only on the
// original effective version.
//
// Calling Upgrade before Analyze is a usage error.
func (c *Configuration) Upgrade(reg *Registry) error {
	if !c.analyzed {
		return errors.New(errors.ErrCodeInvalidState,
			"configuration must be analyzed before upgrading")
	}
	for _, rule := range reg.rules {
		if c.content.Less(rule.Before) {
			c.chunks = rule.Apply(c.chunks)
		}
	}
	return nil
}

// PresumedVersion returns the version supplied at construction.
func (c *Configuration) PresumedVersion() version.Number {
	return c.presumed
}

// ExplicitVersion returns the version declared by an in-file marker, or the
// zero Number when Analyze found none.
func (c *Configuration) ExplicitVersion() version.Number {
	return c.explicit
}

// ContentVersion returns the effective version used for rule gating: the
// explicit version when present, otherwise the presumed version.
func (c *Configuration) ContentVersion() version.Number {
	return c.content
}

// Analyzed reports whether Analyze has run since the last Reset or Parse.
func (c *Configuration) Analyzed() bool {
	return c.analyzed
}

// Chunks returns a copy of the current chunk sequence.
func (c *Configuration) Chunks() []lexer.Chunk {
	out := make([]lexer.Chunk, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Write serializes the configuration to the given output by concatenating
// chunks in order.
func (c *Configuration) Write(out io.Writer) error {
	for _, chunk := range c.chunks {
		if _, err := io.WriteString(out, string(chunk)); err != nil {
			return errors.Wrap(errors.ErrCodeIO, "failed to write configuration", err)
		}
	}
	return nil
}

// MaybeBackup moves the file at path to path plus BackupSuffix if it
// exists, silently overwriting any previous backup. A missing file is a
// no-op.
func MaybeBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to stat %s", path), err)
	}
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to back up %s", path), err)
	}
	return nil
}

// Save writes the configuration to the given file, backing up any existing
// file at that path first. The backup-then-write sequence is not atomic; a
// crash in between may leave only the backup behind.
func (c *Configuration) Save(path string) error {
	if err := MaybeBackup(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	if err := c.Write(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to finish writing %s", path), err)
	}
	return nil
}
