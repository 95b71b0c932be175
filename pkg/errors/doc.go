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

// Package errors provides structured error types for programmatic error
// handling across the configuration upgrade pipeline.
//
// Every failure surfaced by the pipeline carries a code so that callers can
// distinguish bad input (INVALID_VERSION, INVALID_DIRECTIVE), misuse
// (INVALID_STATE), missing files (NOT_FOUND), filesystem trouble (IO), and
// defects (INTERNAL) without string matching.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidDirective,
//	    "failed to parse preprocessor directive",
//	    cause,
//	    map[string]interface{}{
//	        "chunk": chunk,
//	    },
//	)
package errors
