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
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Number represents an Mbed TLS style version number: an ordered tuple of
// non-negative integers of arbitrary length (e.g. "2", "3.1", "3.0.0.0").
// Numbers of different lengths compare by zero-extending the shorter one,
// so "3" equals "3.0.0" and "2.9" sorts before "3".
//
// A Number is immutable once constructed. The zero value has no components
// and renders as an empty string; use IsZero to detect it.
type Number struct {
	parts []int
}

// New creates a Number from the given components.
// Negative components are not validated here; use Parse for untrusted input.
func New(parts ...int) Number {
	p := make([]int, len(parts))
	copy(p, parts)
	return Number{parts: p}
}

// Parse parses a dotted version string into a Number.
// The only accepted format is decimal digits separated by single dots
// ("3", "3.1", "2.28.0"). Anything else, including a "v" prefix, signs,
// whitespace, or empty components, is an error.
func Parse(s string) (Number, error) {
	if s == "" {
		return Number{}, ErrEmptyVersion
	}

	fields := strings.Split(s, ".")
	parts := make([]int, len(fields))
	for i, field := range fields {
		if field == "" {
			return Number{}, fmt.Errorf("%w: empty component in %q", ErrNonNumeric, s)
		}
		for _, ch := range field {
			if ch < '0' || ch > '9' {
				return Number{}, fmt.Errorf("%w: %q", ErrNonNumeric, field)
			}
		}
		num, err := strconv.Atoi(field)
		if err != nil {
			return Number{}, fmt.Errorf("%w: %q", ErrNonNumeric, field)
		}
		if num < 0 {
			return Number{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}
		parts[i] = num
	}

	return Number{parts: parts}, nil
}

// MustParse parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For user input or
// runtime data, always use Parse and handle errors explicitly.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return n
}

// String returns the dot-joined representation at the Number's canonical
// length, i.e. the length it was constructed with. Zero-extension applies
// only to comparisons, never to rendering.
func (n Number) String() string {
	if len(n.parts) == 0 {
		return ""
	}
	fields := make([]string, len(n.parts))
	for i, p := range n.parts {
		fields[i] = strconv.Itoa(p)
	}
	return strings.Join(fields, ".")
}

// Parts returns a copy of the version components.
func (n Number) Parts() []int {
	p := make([]int, len(n.parts))
	copy(p, n.parts)
	return p
}

// IsZero reports whether the Number is the zero value (no components).
// Note that this is distinct from version "0", which has one component.
func (n Number) IsZero() bool {
	return n.parts == nil
}

// component returns the i-th component, zero-extending past the end.
func (n Number) component(i int) int {
	if i < len(n.parts) {
		return n.parts[i]
	}
	return 0
}

// Compare returns an integer comparing two Numbers:
// -1 if n < other, 0 if n == other, 1 if n > other.
// The shorter Number is zero-extended to the longer one's length,
// then components compare lexicographically.
func (n Number) Compare(other Number) int {
	size := len(n.parts)
	if len(other.parts) > size {
		size = len(other.parts)
	}
	for i := 0; i < size; i++ {
		a, b := n.component(i), other.component(i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Less reports whether n sorts strictly before other.
func (n Number) Less(other Number) bool {
	return n.Compare(other) < 0
}

// Equal reports whether n and other denote the same version after
// zero-extension, so New(3).Equal(New(3, 0, 0)) is true.
func (n Number) Equal(other Number) bool {
	return n.Compare(other) == 0
}

// EqualParts reports whether n equals the version given as bare components,
// with the same zero-extension as Equal.
func (n Number) EqualParts(parts ...int) bool {
	return n.Compare(Number{parts: parts}) == 0
}

// AtLeast reports whether this version is at least the specified vintage.
// For example, n.AtLeast(3) is true if n is 3, 3.x or 4.x, but not 2.x.
func (n Number) AtLeast(parts ...int) bool {
	return n.Compare(Number{parts: parts}) >= 0
}
