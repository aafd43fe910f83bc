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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
//
//	roots      = ["./src"]
//	extensions = [".md"]
//
//	rule {
//	  pattern     = "SMP Muslimin"
//	  replacement = "SMPN 2 Cililin"
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			// lets rules reference the school name without repeating it
			"default_replacement": cty.StringVal("SMPN 2 Cililin"),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Roots          []string `hcl:"roots,optional"`
		Extensions     []string `hcl:"extensions,optional"`
		Skip           []string `hcl:"skip,optional"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		Rules          []struct {
			Pattern     string `hcl:"pattern"`
			Replacement string `hcl:"replacement"`
			Literal     bool   `hcl:"literal,optional"`
		} `hcl:"rule,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Roots:          hclCfg.Roots,
		Extensions:     hclCfg.Extensions,
		Skip:           hclCfg.Skip,
		IgnorePatterns: hclCfg.IgnorePatterns,
	}

	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, RuleArgs{
			Pattern:     r.Pattern,
			Replacement: r.Replacement,
			Literal:     r.Literal,
		})
	}

	return cfg, nil
}
