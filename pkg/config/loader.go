package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Load loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - a bare .replacerc will try both YAML and HCL formats
//
// Fields the file leaves out fall back to Default().
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if filepath.Base(path) == ".replacerc" {
		cfg, err = parseAny(ctx, data)
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
	}
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().
		Strs("roots", cfg.Roots).
		Int("rules", len(cfg.Rules)).
		Msg("configuration loaded")

	return cfg, nil
}

// parseAny tries YAML first, then HCL.
func parseAny(ctx context.Context, data []byte) (*Config, error) {
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return cfg, nil
	}

	cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return cfg, nil
	}

	return nil, errors.Errorf("failed to parse .replacerc as YAML or HCL: %w", hclErr)
}
