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

// Package lexer splits C configuration header text into a lossless sequence
// of chunks: comments, string literals, preprocessor directives, line
// breaks, and single other characters.
//
// # Round-trip guarantee
//
// The scanner is built for rewriting, not for parsing: every byte of the
// input lands in exactly one chunk, in order, so concatenating the chunk
// sequence reproduces the original text bit for bit. Transformations edit
// the sequence and keep the guarantee for everything they do not touch.
//
// # What this is not
//
// This is not a C lexer. It does not expand macros, does not track
// #if/#ifdef nesting, and accepts malformed input (an unterminated comment
// simply becomes the final chunk). Its only hard failure is a gap in its
// own rule table, which would break reproduction and is reported as a
// defect.
package lexer
