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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/mbed-tools/confup/pkg/errors"
	"github.com/mbed-tools/confup/pkg/lexer"
	"github.com/mbed-tools/confup/pkg/version"
)

const sampleConfig = `/**
 * \file mbedtls_config.h
 */
#ifndef MBEDTLS_CONFIG_H
#define MBEDTLS_CONFIG_H

/* System support */
#define MBEDTLS_HAVE_ASM
//#define MBEDTLS_NO_UDBL_DIVISION

#define MBEDTLS_SSL_PROTO_TLS1_2

#endif /* MBEDTLS_CONFIG_H */
`

func TestParseAndWriteRoundTrip(t *testing.T) {
	c := New(version.MustParse("3"))
	require.NoError(t, c.Parse(sampleConfig))

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Equal(t, sampleConfig, buf.String())
}

func TestAnalyzeWithoutMarker(t *testing.T) {
	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse(sampleConfig))
	require.NoError(t, c.Analyze())

	assert.True(t, c.ExplicitVersion().IsZero())
	assert.True(t, c.ContentVersion().Equal(version.MustParse("2")))
}

func TestAnalyzeExplicitMarkerPrecedence(t *testing.T) {
	input := "#define MBEDTLS_CONFIG_VERSION 0x03000000\n#define MBEDTLS_HAVE_ASM\n"

	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse(input))
	require.NoError(t, c.Analyze())

	assert.True(t, c.ExplicitVersion().Equal(version.MustParse("3.0.0")))
	assert.True(t, c.ContentVersion().Equal(version.MustParse("3.0.0")),
		"explicit marker must override the presumed version")
}

func TestAnalyzeLastMarkerWins(t *testing.T) {
	input := "#define MBEDTLS_CONFIG_VERSION 0x02000000\n" +
		"#define MBEDTLS_CONFIG_VERSION 0x03010000\n"

	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse(input))
	require.NoError(t, c.Analyze())

	assert.True(t, c.ContentVersion().Equal(version.MustParse("3.1")))
}

func TestAnalyzeBadMarkerLiteral(t *testing.T) {
	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse("#define MBEDTLS_CONFIG_VERSION not_hex\n"))

	err := c.Analyze()
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidVersion, cerrors.CodeOf(err))
}

func TestUpgradeBeforeAnalyzeFails(t *testing.T) {
	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse(sampleConfig))

	err := c.Upgrade(Default())
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidState, cerrors.CodeOf(err))
}

func TestUpgradeGating(t *testing.T) {
	fired := map[string]bool{}
	record := func(name string) func([]lexer.Chunk) []lexer.Chunk {
		return func(chunks []lexer.Chunk) []lexer.Chunk {
			fired[name] = true
			return chunks
		}
	}
	reg := NewRegistry(
		Rule{Name: "at-3.0", Before: version.MustParse("3.0"), Apply: record("at-3.0")},
		Rule{Name: "at-3.1", Before: version.MustParse("3.1"), Apply: record("at-3.1")},
	)

	// Content declares 3.0.0: the 3.0 rule must not fire, the 3.1 rule must.
	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse("#define MBEDTLS_CONFIG_VERSION 0x03000000\n"))
	require.NoError(t, c.Analyze())
	require.NoError(t, c.Upgrade(reg))

	assert.False(t, fired["at-3.0"], "threshold equal to content version must not fire")
	assert.True(t, fired["at-3.1"], "threshold above content version must fire")
}

func TestUpgradeGatingUsesCapturedVersion(t *testing.T) {
	// The first rule inserts a 3.0 marker; gating for later rules must
	// still use the version captured by Analyze, not the mutated content.
	reg := NewRegistry(
		Rule{
			Name:   "insert-marker",
			Before: version.MustParse("3.0"),
			Apply:  declareConfigVersion,
		},
		Rule{
			Name:   "still-fires",
			Before: version.MustParse("3.0"),
			Apply: func(chunks []lexer.Chunk) []lexer.Chunk {
				return append(chunks, "// upgraded\n")
			},
		},
	)

	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse("#define MBEDTLS_HAVE_ASM\n"))
	require.NoError(t, c.Analyze())
	require.NoError(t, c.Upgrade(reg))

	text := lexer.Join(c.Chunks())
	assert.Contains(t, text, "MBEDTLS_CONFIG_VERSION")
	assert.Contains(t, text, "// upgraded")
}

func TestReset(t *testing.T) {
	c := New(version.MustParse("2"))
	require.NoError(t, c.Parse("#define MBEDTLS_CONFIG_VERSION 0x03000000\n"))
	require.NoError(t, c.Analyze())
	require.False(t, c.ExplicitVersion().IsZero())

	c.Reset()
	assert.Empty(t, c.Chunks())
	assert.True(t, c.ExplicitVersion().IsZero())
	assert.True(t, c.ContentVersion().Equal(version.MustParse("2")))
	assert.False(t, c.Analyzed())
}

func TestLoadMissingFile(t *testing.T) {
	c := New(version.MustParse("2"))
	err := c.Load(filepath.Join(t.TempDir(), "nope.h"))
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeNotFound, cerrors.CodeOf(err))
}

func TestSaveBackupSemantics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mbedtls_config.h")

	c := New(version.MustParse("3"))
	require.NoError(t, c.Parse("#define MBEDTLS_NEW\n"))

	// Saving to a fresh path creates no backup.
	require.NoError(t, c.Save(path))
	_, err := os.Stat(path + BackupSuffix)
	assert.True(t, errors.Is(err, os.ErrNotExist), "no .bak for a fresh path")

	// Saving over an existing file moves the old content to .bak.
	require.NoError(t, os.WriteFile(path, []byte("old content\n"), 0644))
	require.NoError(t, c.Save(path))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#define MBEDTLS_NEW\n", string(current))

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "old content\n", string(backup))
}

func TestSaveOverwritesPriorBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.h")

	require.NoError(t, os.WriteFile(path, []byte("gen1\n"), 0644))
	require.NoError(t, os.WriteFile(path+BackupSuffix, []byte("gen0\n"), 0644))

	c := New(version.MustParse("3"))
	require.NoError(t, c.Parse("gen2\n"))
	require.NoError(t, c.Save(path))

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "gen1\n", string(backup), "only one backup generation is kept")
}
