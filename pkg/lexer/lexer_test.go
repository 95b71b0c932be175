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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty",
			input: "",
		},
		{
			name:  "single define",
			input: "#define MBEDTLS_SSL_PROTO_TLS1_2\n",
		},
		{
			name: "realistic header fragment",
			input: "/**\n * \\file mbedtls_config.h\n */\n" +
				"#ifndef MBEDTLS_CONFIG_H\n" +
				"#define MBEDTLS_CONFIG_H\n\n" +
				"/* System support */\n" +
				"#define MBEDTLS_HAVE_ASM\n" +
				"//#define MBEDTLS_NO_UDBL_DIVISION\n\n" +
				"#endif /* MBEDTLS_CONFIG_H */\n",
		},
		{
			name:  "string literal with escapes",
			input: "#define GREETING \"hello \\\"world\\\"\\n\"\n",
		},
		{
			name:  "string literal containing hash and slashes",
			input: "const char *s = \"# not a directive // nor comment\";\n",
		},
		{
			name:  "block comment spanning lines",
			input: "/* line one\n * line two\n */\nint x;\n",
		},
		{
			name:  "directive with line continuation",
			input: "#define MULTI(a, b) \\\n    do_something(a, b)\n#define NEXT\n",
		},
		{
			name:  "blank lines and indentation",
			input: "\n\n\t  \n  int y;\n",
		},
		{
			name:  "no trailing newline",
			input: "#define MBEDTLS_LAST",
		},
		{
			name:  "unterminated block comment",
			input: "int x;\n/* never closed...",
		},
		{
			name:  "unterminated string",
			input: "char *s = \"oops\n",
		},
		{
			name:  "lone slash",
			input: "a / b\n",
		},
		{
			name:  "windows style line endings",
			input: "#define A\r\n#define B\r\n",
		},
		{
			name:  "non-ascii text in comment",
			input: "/* caf\u00e9 \u00fcber */\n#define X\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Scan(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, Join(chunks), "concatenated chunks must reproduce input")
		})
	}
}

func TestScanChunkBoundaries(t *testing.T) {
	input := "// header\n#define FOO 1\nint x;\n"
	chunks, err := Scan(input)
	require.NoError(t, err)

	// The line comment consumes its newline; the directive is one chunk.
	require.GreaterOrEqual(t, len(chunks), 3)
	assert.Equal(t, Chunk("// header\n"), chunks[0])
	assert.Equal(t, Chunk("#define FOO 1\n"), chunks[1])
}

func TestScanDirectiveDetection(t *testing.T) {
	input := "#define A\n\"#define B\"\n/* #define C */\n#undef D\n"
	chunks, err := Scan(input)
	require.NoError(t, err)

	var directives []Chunk
	for _, c := range chunks {
		if c.IsDirective() {
			directives = append(directives, c)
		}
	}

	require.Len(t, directives, 2, "hash inside string or comment is not a directive")
	assert.Equal(t, Chunk("#define A\n"), directives[0])
	assert.Equal(t, Chunk("#undef D\n"), directives[1])
}

func TestScanLineBreakAbsorbsIndent(t *testing.T) {
	chunks, err := Scan("a\n\t  b")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, Chunk("a"), chunks[0])
	assert.Equal(t, Chunk("\n\t  "), chunks[1])
	assert.Equal(t, Chunk("b"), chunks[2])
}

func TestScanDirectiveWithContinuation(t *testing.T) {
	input := "#define MULTI \\\nline2\n#define AFTER\n"
	chunks, err := Scan(input)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, Chunk("#define MULTI \\\nline2\n"), chunks[0],
		"escaped newline must not terminate the directive")
	assert.Equal(t, Chunk("#define AFTER\n"), chunks[1])
}

func TestScanUnterminatedDirectiveAtEOF(t *testing.T) {
	chunks, err := Scan("#define TRAILING")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.True(t, chunks[0].IsDirective())
}

func TestJoinEmpty(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "", Join([]Chunk{}))
}
