// internal/runcfg/runcfg.go

// Package runcfg loads the optional YAML run configuration that carries the
// long tail of input file paths, so command lines stay short across the
// release cycle. Explicit flags override config values.
package runcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"taxoncheck/internal/taxon"
)

// Config is the YAML run configuration shared by the tools. All fields are
// optional; each tool validates the subset it needs after flags are merged.
type Config struct {
	Metadata     string `yaml:"metadata"`
	GenomicPaths string `yaml:"genomic_paths"`
	Clusters     string `yaml:"clusters"`
	Taxonomy     string `yaml:"taxonomy"`
	ANICache     string `yaml:"ani_cache"`
	OutputDir    string `yaml:"output_dir"`

	ANIThreshold float64 `yaml:"ani_threshold"`

	// ForbiddenEpithets overrides the built-in placeholder epithet list
	// when non-empty.
	ForbiddenEpithets []string `yaml:"forbidden_epithets"`
}

// Load reads and parses a run configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Forbidden returns the forbidden-epithet set: the configured override, or
// the built-in default.
func (c *Config) Forbidden() map[string]bool {
	if c == nil || len(c.ForbiddenEpithets) == 0 {
		return taxon.DefaultForbiddenEpithets()
	}
	set := make(map[string]bool, len(c.ForbiddenEpithets))
	for _, e := range c.ForbiddenEpithets {
		set[e] = true
	}
	return set
}

// MergeString returns flagVal when set, otherwise cfgVal.
func MergeString(flagVal, cfgVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return cfgVal
}

// MergeFloat returns flagVal when nonzero, otherwise cfgVal.
func MergeFloat(flagVal, cfgVal float64) float64 {
	if flagVal != 0 {
		return flagVal
	}
	return cfgVal
}
