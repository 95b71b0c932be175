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

// Package config models an Mbed TLS configuration file as a lossless chunk
// sequence plus version state, and upgrades it across schema versions.
//
// # Lifecycle
//
//	c := config.New(version.MustParse("2"))
//	c.Load(path)          // or c.Parse(text)
//	c.Analyze()           // derive the effective content version
//	c.Upgrade(config.Default())
//	c.Save(path)          // backs up an existing file to path + ".bak"
//
// # Rule gating
//
// Each Rule carries a threshold version. A rule fires when the content
// version determined by Analyze is strictly below the threshold, so running
// an upgrade on output that already declares the current version fires
// nothing and changes nothing. The registry is a closed, statically
// constructed list sorted by threshold; there is no runtime discovery.
//
// # Guarantees
//
// Content the rules do not touch reappears byte for byte: comments, string
// literals, whitespace, and unrelated lines survive the round trip exactly.
// A conversion either completes fully or fails before producing any output.
package config
