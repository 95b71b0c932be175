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

	"github.com/mbed-tools/confup/pkg/errors"
)

// Directive is a parsed, read-only view of a preprocessor directive chunk.
type Directive struct {
	// Name is the token after '#', e.g. "define" or "undef".
	Name string
	// Word is the optional bare word after the name, e.g. the macro name
	// of a #define. Empty when the directive has no second token.
	Word string
	// Trail is everything after the matched prefix, verbatim, including
	// the chunk's own line terminator.
	Trail string
}

var directiveStartRE = regexp.MustCompile(`(?s)\A\s*#\s*(\w+)(?:\s+(\w+))?`)

// ParseDirective extracts the name, optional word, and trailing text of a
// chunk known to start with '#'. It fails when no identifier follows the
// '#', which means the directive is malformed or empty.
func ParseDirective(chunk Chunk) (Directive, error) {
	m := directiveStartRE.FindStringSubmatch(string(chunk))
	if m == nil {
		return Directive{}, errors.NewWithContext(
			errors.ErrCodeInvalidDirective,
			"unable to parse preprocessor directive",
			map[string]any{"chunk": string(chunk)},
		)
	}
	return Directive{
		Name:  m[1],
		Word:  m[2],
		Trail: string(chunk)[len(m[0]):],
	}, nil
}
