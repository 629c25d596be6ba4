// internal/newgenomescli/options.go
package newgenomescli

import (
	"flag"
	"fmt"
	"io"

	"taxoncheck/internal/clibase"
	"taxoncheck/internal/cliutil"
	"taxoncheck/internal/runcfg"
)

type Options struct {
	clibase.Common

	// Newgenomes-specific
	PrevMetadata    []string
	AssemblySummary string
}

// prevFlag collects repeated --prev-metadata values.
type prevFlag struct{ vals *[]string }

func (p prevFlag) String() string { return "" }
func (p prevFlag) Set(v string) error {
	*p.vals = append(*p.vals, v)
	return nil
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --metadata meta.tsv --prev-metadata prev.tsv out/\n", name)

		_, _ = fmt.Fprintln(out, "\nRelease comparison:")
		_, _ = fmt.Fprintln(out, "      --prev-metadata file    Previous-release metadata TSV (repeatable) [*]")
		_, _ = fmt.Fprintln(out, "      --assembly-summary file NCBI assembly summary listing paired accessions [*]")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for the newgenomes tool.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "taxoncheck-newgenomes", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "List genomes new to, or updated in, the current release.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  taxoncheck-newgenomes \\")
		_, _ = fmt.Fprintln(w, "    --metadata metadata_r220.tsv \\")
		_, _ = fmt.Fprintln(w, "    --prev-metadata ar_metadata_r214.tsv \\")
		_, _ = fmt.Fprintln(w, "    --prev-metadata bac_metadata_r214.tsv \\")
		_, _ = fmt.Fprintln(w, "    --genome-paths genome_paths.tsv \\")
		_, _ = fmt.Fprintln(w, "    --assembly-summary assembly_summary.txt \\")
		_, _ = fmt.Fprintln(w, "    output/")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	clibase.Register(fs, &c)

	fs.Var(prevFlag{&o.PrevMetadata}, "prev-metadata", "previous-release metadata TSV (repeatable)")
	fs.StringVar(&o.AssemblySummary, "assembly-summary", "", "NCBI assembly summary listing paired accessions")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		PrintExamples(fs.Output())
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	if err := clibase.AfterParse(&c, posArgs); err != nil {
		return o, err
	}

	if c.ConfigFile != "" {
		cfg, err := runcfg.Load(c.ConfigFile)
		if err != nil {
			return o, err
		}
		c.ApplyConfig(cfg)
	}

	if err := c.Validate(); err != nil {
		return o, err
	}
	if len(o.PrevMetadata) == 0 {
		return o, fmt.Errorf("provide at least one --prev-metadata")
	}
	if c.GenomePaths == "" {
		return o, fmt.Errorf("provide --genome-paths (flag or config)")
	}
	if o.AssemblySummary == "" {
		return o, fmt.Errorf("provide --assembly-summary")
	}

	o.Common = c
	return o, nil
}
