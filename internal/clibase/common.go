// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"taxoncheck/internal/runcfg"
)

// Common holds CLI fields shared by the taxoncheck tools.
type Common struct {
	// Input
	ConfigFile  string
	Metadata    string
	GenomePaths string

	// Output
	OutputDir string

	// Misc
	Quiet   bool
	Version bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	// Inputs
	fs.StringVar(&c.ConfigFile, "config", "", "YAML run configuration file")
	fs.StringVar(&c.Metadata, "metadata", "", "current-release genome metadata TSV")
	fs.StringVar(&c.GenomePaths, "genome-paths", "", "TSV mapping accessions to genome directories")
	fs.StringVar(&c.ConfigFile, "C", "", "alias of --config")

	// Output
	fs.StringVar(&c.OutputDir, "output-dir", "", "directory for report files (or first positional)")
	fs.StringVar(&c.OutputDir, "o", "", "alias of --output-dir")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress informational logging [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "alias of --version")
}

// AfterParse folds positionals into Common: a single positional names the
// output directory, matching the original tools' calling convention.
func AfterParse(c *Common, posArgs []string) error {
	switch {
	case len(posArgs) > 1:
		return fmt.Errorf("at most one positional argument (output dir) expected, got %d", len(posArgs))
	case len(posArgs) == 1:
		if c.OutputDir != "" && c.OutputDir != posArgs[0] {
			return errors.New("--output-dir conflicts with positional output dir")
		}
		c.OutputDir = posArgs[0]
	}
	return nil
}

// ApplyConfig fills fields not set on the command line from the run
// configuration. Flags always win.
func (c *Common) ApplyConfig(cfg *runcfg.Config) {
	if cfg == nil {
		return
	}
	c.Metadata = runcfg.MergeString(c.Metadata, cfg.Metadata)
	c.GenomePaths = runcfg.MergeString(c.GenomePaths, cfg.GenomicPaths)
	c.OutputDir = runcfg.MergeString(c.OutputDir, cfg.OutputDir)
}

// Validate applies the CLI invariants shared by all tools.
func (c *Common) Validate() error {
	if c.Metadata == "" {
		return errors.New("provide --metadata (flag or config)")
	}
	if c.OutputDir == "" {
		return errors.New("provide an output directory (--output-dir, positional, or config)")
	}
	return nil
}
