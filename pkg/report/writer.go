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

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// Writer serializes Reports to an output destination in a chosen format.
// Close must be called to release file handles when using
// NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a Writer with the specified format and output.
// If output is nil, os.Stdout is used. An unknown format defaults to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewFileWriterOrStdout creates a Writer targeting the given file path, or
// stdout when the path is empty or the reserved "-" token. Remember to call
// Close on the returned Writer.
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewWriter(format, os.Stdout), nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	w := NewWriter(format, file)
	w.closer = file
	return w, nil
}

// Close releases any resources associated with the Writer. It is safe to
// call on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Serialize writes the report in the configured format.
func (w *Writer) Serialize(r *Report) error {
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(r)
	case FormatYAML:
		return w.serializeYAML(r)
	case FormatTable:
		return w.serializeTable(r)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(r *Report) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(r *Report) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) serializeTable(r *Report) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	fmt.Fprintf(tw, "id\t%s\n", r.ID)
	fmt.Fprintf(tw, "input\t%s\n", r.Input)
	fmt.Fprintf(tw, "presumedVersion\t%s\n", r.PresumedVersion)
	if r.ExplicitVersion != "" {
		fmt.Fprintf(tw, "explicitVersion\t%s\n", r.ExplicitVersion)
	}
	fmt.Fprintf(tw, "contentVersion\t%s\n", r.ContentVersion)
	fmt.Fprintf(tw, "chunks\t%d\n", r.Chunks)
	fmt.Fprintf(tw, "directives\t%d\n", r.Directives)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	fmt.Fprintln(w.output)
	rt := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(rt, "RULE\tBEFORE\tFIRES")
	fmt.Fprintln(rt, "----\t------\t-----")
	for _, rule := range r.Rules {
		fmt.Fprintf(rt, "%s\t%s\t%v\n", rule.Name, rule.Before, rule.Fires)
	}
	if err := rt.Flush(); err != nil {
		return fmt.Errorf("failed to flush rule table: %w", err)
	}
	return nil
}
