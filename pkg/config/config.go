// Copyright 2025 walteh LLC
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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/repatch/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule represents one structural replacement in the target file
type Rule struct {
	Match      string `json:"match" yaml:"match"`                             // Pattern locating the fragment to replace
	Replace    string `json:"replace" yaml:"replace"`                         // Literal replacement text
	FileFilter string `json:"file_filter,omitempty" yaml:"file_filter,omitempty"` // Optional glob guard on the target path
}

// 📚 Config represents the complete patch configuration
type Config struct {
	File   string `json:"file" yaml:"file"`                       // Target file to rewrite
	Strict bool   `json:"strict,omitempty" yaml:"strict,omitempty"` // Treat zero matches as an error
	Rules  []Rule `json:"rules" yaml:"rules"`                     // Replacements, applied in order

	// location is the path this config was loaded from
	location string
}

// 📍 Location returns the path this config was loaded from
func (c *Config) Location() string {
	return c.location
}

// 🔀 PatchRules converts the configured rules to the patch package's form
func (c *Config) PatchRules() []patch.Rule {
	rules := make([]patch.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		rules = append(rules, patch.Rule{
			Match:      r.Match,
			Replace:    r.Replace,
			FileFilter: r.FileFilter,
		})
	}
	return rules
}

// 🔍 Validate checks the config for errors
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("file", cfg.File).Int("rules", len(cfg.Rules)).Msg("validating configuration")

	if cfg.File == "" {
		return errors.New("file is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.New("at least one rule is required")
	}

	rewriter := patch.NewRegexRewriter()
	if err := rewriter.ValidateRules(cfg.PatchRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	return nil
}
