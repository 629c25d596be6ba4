package newgenomescli

import (
	"flag"
	"io"
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

func TestNewGenomesFlagsOK(t *testing.T) {
	o := mustParse(t,
		"--metadata", "meta.tsv",
		"--prev-metadata", "prev_ar.tsv",
		"--prev-metadata", "prev_bac.tsv",
		"--genome-paths", "paths.tsv",
		"--assembly-summary", "summary.txt",
		"out",
	)
	if len(o.PrevMetadata) != 2 || o.PrevMetadata[1] != "prev_bac.tsv" {
		t.Fatalf("bad prev metadata: %+v", o.PrevMetadata)
	}
	if o.OutputDir != "out" {
		t.Fatalf("bad output dir: %q", o.OutputDir)
	}
}

func TestRequirePrevMetadataMissingErrors(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--metadata", "meta.tsv", "--genome-paths", "paths.tsv", "out",
	})
	if err == nil {
		t.Fatal("expected error when --prev-metadata missing")
	}
}

func TestRequireGenomePathsMissingErrors(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--metadata", "meta.tsv", "--prev-metadata", "prev.tsv",
		"--assembly-summary", "summary.txt", "out",
	})
	if err == nil {
		t.Fatal("expected error when --genome-paths missing")
	}
}

func TestRequireAssemblySummaryMissingErrors(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--metadata", "meta.tsv", "--prev-metadata", "prev.tsv",
		"--genome-paths", "paths.tsv", "out",
	})
	if err == nil {
		t.Fatal("expected error when --assembly-summary missing")
	}
}
