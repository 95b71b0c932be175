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

// Package report builds and serializes analysis reports: which versions a
// configuration file declares and which upgrade rules would fire for it.
//
// Usage:
//
//	r := report.Build(cfg, inputPath, config.Default())
//	w, err := report.NewFileWriterOrStdout(report.FormatYAML, outPath)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	return w.Serialize(r)
package report
