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
	"time"

	"github.com/google/uuid"

	"github.com/mbed-tools/confup/pkg/config"
)

// Report summarizes the analysis of a configuration file: the versions in
// play and the upgrade rules that would fire for it.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	Input       string    `json:"input" yaml:"input"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`

	PresumedVersion string `json:"presumedVersion" yaml:"presumedVersion"`
	ExplicitVersion string `json:"explicitVersion,omitempty" yaml:"explicitVersion,omitempty"`
	ContentVersion  string `json:"contentVersion" yaml:"contentVersion"`

	Chunks     int `json:"chunks" yaml:"chunks"`
	Directives int `json:"directives" yaml:"directives"`

	Rules []RulePlan `json:"rules" yaml:"rules"`
}

// RulePlan describes one registered rule and whether it fires for the
// analyzed content version.
type RulePlan struct {
	Name   string `json:"name" yaml:"name"`
	Before string `json:"before" yaml:"before"`
	Fires  bool   `json:"fires" yaml:"fires"`
}

// Build assembles a Report from an analyzed Configuration and a registry.
// The firing decisions mirror Upgrade's gating exactly, without mutating
// anything.
func Build(c *config.Configuration, input string, reg *config.Registry) *Report {
	chunks := c.Chunks()
	directives := 0
	for _, chunk := range chunks {
		if chunk.IsDirective() {
			directives++
		}
	}

	content := c.ContentVersion()
	rules := reg.Rules()
	plans := make([]RulePlan, 0, len(rules))
	for _, rule := range rules {
		plans = append(plans, RulePlan{
			Name:   rule.Name,
			Before: rule.Before.String(),
			Fires:  content.Less(rule.Before),
		})
	}

	r := &Report{
		ID:              uuid.NewString(),
		Input:           input,
		GeneratedAt:     time.Now().UTC(),
		PresumedVersion: c.PresumedVersion().String(),
		ContentVersion:  content.String(),
		Chunks:          len(chunks),
		Directives:      directives,
		Rules:           plans,
	}
	if !c.ExplicitVersion().IsZero() {
		r.ExplicitVersion = c.ExplicitVersion().String()
	}
	return r
}
