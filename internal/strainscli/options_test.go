package strainscli

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newFS() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	o, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return o
}

func TestStrainsFlagsOK(t *testing.T) {
	o := mustParse(t,
		"--metadata", "meta.tsv",
		"--taxonomy", "tax.tsv",
		"out",
	)
	if o.Metadata != "meta.tsv" || o.Taxonomy != "tax.tsv" || o.OutputDir != "out" {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestRequireTaxonomyMissingErrors(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--metadata", "meta.tsv", "out"})
	if err == nil {
		t.Fatal("expected error when --taxonomy missing")
	}
}

func TestTaxonomyFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "run.yaml")
	body := "metadata: meta.tsv\ntaxonomy: tax.tsv\noutput_dir: out\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	o := mustParse(t, "--config", cfg)
	if o.Taxonomy != "tax.tsv" {
		t.Fatalf("want taxonomy from config, got %+v", o)
	}
}
