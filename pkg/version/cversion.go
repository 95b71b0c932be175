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

package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCLiteral indicates the C expression is not a bare hexadecimal
// integer literal after comment stripping.
var ErrInvalidCLiteral = errors.New("not a hexadecimal C integer literal")

var (
	cCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*\n?`)
	cHexRE     = regexp.MustCompile(`(?i)^(0x[0-9a-f]+)[lu]*$`)
)

// FromC parses a C numeric version number such as the value of
// MBEDTLS_VERSION_NUMBER or MBEDTLS_CONFIG_VERSION. Only hexadecimal
// integer literals are supported, optionally surrounded by comments and
// whitespace and optionally carrying integer suffix letters (l, u).
//
// The value is decoded as four packed byte fields read most significant
// byte first (major, minor, patch, reserved), e.g. 0x03010000 -> "3.1.0.0".
func FromC(code string) (Number, error) {
	code = strings.TrimSpace(cCommentRE.ReplaceAllString(code, " "))
	m := cHexRE.FindStringSubmatch(code)
	if m == nil {
		return Number{}, fmt.Errorf("%w: %q", ErrInvalidCLiteral, code)
	}

	value, err := strconv.ParseUint(m[1][2:], 16, 32)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %q: %v", ErrInvalidCLiteral, code, err)
	}

	parts := make([]int, 4)
	for k := 0; k < 4; k++ {
		parts[k] = int((value >> (8 * (3 - k))) & 0xff)
	}
	return Number{parts: parts}, nil
}
