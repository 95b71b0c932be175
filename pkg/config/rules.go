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
	"regexp"
	"sort"

	"github.com/mbed-tools/confup/pkg/lexer"
	"github.com/mbed-tools/confup/pkg/version"
)

// Rule is a single historical transformation over the chunk sequence.
// A rule fires when the configuration's content version is strictly below
// Before, i.e. when upgrading to or past that version. Apply returns the
// new chunk sequence; a rule that finds nothing to do returns its input
// unchanged, which is a no-op rather than an error.
//
// Rules must be written to be safe regardless of which other rules ran
// before them: the shipped set touches disjoint option sets, so firing
// order is not load-bearing.
type Rule struct {
	Name   string
	Before version.Number
	Apply  func(chunks []lexer.Chunk) []lexer.Chunk
}

// Registry is a closed, ordered list of upgrade rules, sorted ascending by
// threshold at construction time so that firing order is deterministic and
// independent of rule naming.
type Registry struct {
	rules []Rule
}

// NewRegistry builds a Registry from the given rules. The slice is copied
// and stably sorted by threshold; rules with equal thresholds keep their
// declaration order.
func NewRegistry(rules ...Rule) *Registry {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before.Less(sorted[j].Before)
	})
	return &Registry{rules: sorted}
}

// Rules returns a copy of the registry's rules in firing order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Default returns the registry of shipped upgrade rules covering the
// Mbed TLS 2.x to 3.x configuration migrations.
func Default() *Registry {
	return NewRegistry(
		Rule{
			Name:   "remove-options-deleted-in-3.0",
			Before: version.MustParse("3.0"),
			Apply:  commentOutOptions(optionsRemovedIn30),
		},
		Rule{
			Name:   "declare-config-version",
			Before: version.MustParse("3.0"),
			Apply:  declareConfigVersion,
		},
		Rule{
			Name:   "rename-tls13-experimental",
			Before: version.MustParse("3.2"),
			Apply:  renameOption("MBEDTLS_SSL_PROTO_TLS1_3_EXPERIMENTAL", "MBEDTLS_SSL_PROTO_TLS1_3"),
		},
	)
}

// Configuration options that were removed outright in Mbed TLS 3.0.
// Active definitions of these are commented out so the resulting file
// builds against a 3.x tree while keeping the old setting visible.
var optionsRemovedIn30 = []string{
	"MBEDTLS_ARC4_C",
	"MBEDTLS_BLOWFISH_C",
	"MBEDTLS_CERTS_C",
	"MBEDTLS_CHECK_PARAMS",
	"MBEDTLS_CHECK_PARAMS_ASSERT",
	"MBEDTLS_MD2_C",
	"MBEDTLS_MD4_C",
	"MBEDTLS_SSL_CBC_RECORD_SPLITTING",
	"MBEDTLS_SSL_FALLBACK_SCSV",
	"MBEDTLS_SSL_HW_RECORD_ACCEL",
	"MBEDTLS_SSL_PROTO_SSL3",
	"MBEDTLS_SSL_PROTO_TLS1",
	"MBEDTLS_SSL_PROTO_TLS1_1",
	"MBEDTLS_SSL_TRUNCATED_HMAC",
	"MBEDTLS_XTEA_C",
	"MBEDTLS_ZLIB_SUPPORT",
}

// directiveWord returns the defined or undefined macro name of a directive
// chunk, or "" when the chunk is not a define/undef or cannot be parsed.
// Malformed directives are left untouched by rules; analysis is where they
// are reported.
func directiveWord(chunk lexer.Chunk) string {
	if !chunk.IsDirective() {
		return ""
	}
	d, err := lexer.ParseDirective(chunk)
	if err != nil {
		return ""
	}
	if d.Name != "define" && d.Name != "undef" {
		return ""
	}
	return d.Word
}

// commentOutOptions turns active definitions of the named options into line
// comments, preserving the original directive text after the comment marker.
func commentOutOptions(names []string) func([]lexer.Chunk) []lexer.Chunk {
	removed := make(map[string]bool, len(names))
	for _, name := range names {
		removed[name] = true
	}
	return func(chunks []lexer.Chunk) []lexer.Chunk {
		for i, chunk := range chunks {
			if removed[directiveWord(chunk)] {
				chunks[i] = "//" + chunk
			}
		}
		return chunks
	}
}

// renameOption rewrites definitions of an old option name to a new one.
// Both active directives (#define/#undef) and disabled ones inside line
// comments ("//#define OLD") are renamed; prose mentions elsewhere are
// deliberately left alone.
func renameOption(oldName, newName string) func([]lexer.Chunk) []lexer.Chunk {
	directiveRE := regexp.MustCompile(`\A(\s*#\s*(?:define|undef)\s+)` + regexp.QuoteMeta(oldName) + `\b`)
	commentRE := regexp.MustCompile(`\A(//\s*#\s*(?:define|undef)\s+)` + regexp.QuoteMeta(oldName) + `\b`)
	return func(chunks []lexer.Chunk) []lexer.Chunk {
		for i, chunk := range chunks {
			text := string(chunk)
			switch {
			case chunk.IsDirective():
				text = directiveRE.ReplaceAllString(text, "${1}"+newName)
			case len(text) >= 2 && text[:2] == "//":
				text = commentRE.ReplaceAllString(text, "${1}"+newName)
			default:
				continue
			}
			chunks[i] = lexer.Chunk(text)
		}
		return chunks
	}
}

// declareConfigVersion inserts or rewrites the MBEDTLS_CONFIG_VERSION
// marker so the upgraded file declares the 3.0 configuration format. An
// existing marker is rewritten in place; otherwise the declaration goes
// right after the include guard definition, or at the top of the file when
// no guard is found.
func declareConfigVersion(chunks []lexer.Chunk) []lexer.Chunk {
	declaration := lexer.Chunk("#define " + VersionMacro + " 0x03000000\n")

	guardIndex := -1
	for i, chunk := range chunks {
		word := directiveWord(chunk)
		if word == VersionMacro {
			chunks[i] = declaration
			return chunks
		}
		if guardIndex < 0 && word == "MBEDTLS_CONFIG_H" {
			guardIndex = i
		}
	}

	insertAt := 0
	if guardIndex >= 0 {
		insertAt = guardIndex + 1
	}
	out := make([]lexer.Chunk, 0, len(chunks)+2)
	out = append(out, chunks[:insertAt]...)
	if guardIndex >= 0 {
		out = append(out, "\n", declaration)
	} else {
		out = append(out, declaration)
	}
	out = append(out, chunks[insertAt:]...)
	return out
}
