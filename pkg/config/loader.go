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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads a patch configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .repatch will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg *Config

	// For .repatch files, try both YAML and HCL
	if ext == ".repatch" || filepath.Base(path) == ".repatch" {
		cfg, err = loadYAML(data)
		if err != nil {
			cfg, err = loadHCL(data, path)
		}
		if err != nil {
			return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", path, err)
		}
	} else {
		switch ext {
		case ".json":
			cfg, err = loadJSON(data)
		case ".yaml", ".yml":
			cfg, err = loadYAML(data)
		case ".hcl":
			cfg, err = loadHCL(data, path)
		default:
			return nil, errors.Errorf("unsupported file extension %q", ext)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Match      string `hcl:"match"`
		Replace    string `hcl:"replace"`
		FileFilter string `hcl:"file_filter,optional"`
	}
	type hclConfig struct {
		File   string    `hcl:"file"`
		Strict bool      `hcl:"strict,optional"`
		Rules  []hclRule `hcl:"rule,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		File:   hclCfg.File,
		Strict: hclCfg.Strict,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
			Match:      r.Match,
			Replace:    r.Replace,
			FileFilter: r.FileFilter,
		})
	}

	return cfg, nil
}
