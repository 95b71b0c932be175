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
	"regexp"
	"strings"

	"github.com/mbed-tools/confup/pkg/errors"
)

// Chunk is a maximal, exactly reproducible substring of configuration text.
// Chunks carry no stored category; classification is derived on demand.
type Chunk string

// IsDirective reports whether the chunk is a preprocessor directive line.
// Directive chunks always begin with '#'.
func (c Chunk) IsDirective() bool {
	return len(c) > 0 && c[0] == '#'
}

// String returns the raw chunk text.
func (c Chunk) String() string {
	return string(c)
}

// Join concatenates chunks back into source text. For any scanned input,
// Join(Scan(text)) == text.
func Join(chunks []Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(string(c))
	}
	return sb.String()
}

// chunkRules is the ordered pattern table evaluated at each cursor
// position; the first rule that matches wins. Order is significant:
// comments hide string quotes and directives, strings hide '#' and '//',
// and the final rule is a catch-all so that scanning can always progress.
//
// Unterminated comments, strings, and directives at end of input fall
// through to later rules or match up to end of text. The tool must never
// fail on input it cannot analyze, only on input it cannot reproduce.
var chunkRules = []*regexp.Regexp{
	// block comment or line comment (with optional trailing newline)
	regexp.MustCompile(`(?s)\A(?:/\*.*?\*/|//[^\n]*\n?)`),
	// double-quoted string literal with backslash escapes
	regexp.MustCompile(`(?s)\A"(?:\\.|[^\\"])*"`),
	// preprocessor directive, up to the first unescaped end of line
	regexp.MustCompile(`(?s)\A#.*?(?:\z|[^\\\n]\n)`),
	// line break plus any immediately following horizontal whitespace
	regexp.MustCompile(`\A\n[\t ]*`),
	// any other single character
	regexp.MustCompile(`\A[^\n"#/]`),
	// catch-all: horizontal whitespace plus one character
	regexp.MustCompile(`(?s)\A[\t ]*.`),
}

// Scan splits raw text into an ordered sequence of chunks. The
// concatenation of the returned chunks always equals the input exactly.
//
// A position where no rule matches indicates a gap in the rule table; that
// is a defect, not malformed input, and Scan reports it as an INTERNAL
// error rather than silently dropping bytes.
func Scan(text string) ([]Chunk, error) {
	chunks := make([]Chunk, 0, 64)
	pos := 0
	for pos < len(text) {
		match := ""
		for _, rule := range chunkRules {
			if m := rule.FindString(text[pos:]); m != "" {
				match = m
				break
			}
		}
		if match == "" {
			return nil, errors.NewWithContext(
				errors.ErrCodeInternal,
				"tokenizer rule table failed to consume input",
				map[string]any{
					"position":  pos,
					"remainder": truncate(text[pos:], 32),
				},
			)
		}
		chunks = append(chunks, Chunk(match))
		pos += len(match)
	}
	return chunks, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
