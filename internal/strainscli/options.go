// internal/strainscli/options.go
package strainscli

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

	// Strains-specific
	Taxonomy string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --metadata meta.tsv --taxonomy tax.tsv out/\n", name)

		_, _ = fmt.Fprintln(out, "\nIncongruence check:")
		_, _ = fmt.Fprintln(out, "      --taxonomy file         Curated genome taxonomy TSV [*]")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for the strains tool.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "taxoncheck-strains", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Report type strain genomes whose curated species disagrees with NCBI.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  taxoncheck-strains \\")
		_, _ = fmt.Fprintln(w, "    --metadata metadata.tsv \\")
		_, _ = fmt.Fprintln(w, "    --taxonomy taxonomy.tsv \\")
		_, _ = fmt.Fprintln(w, "    output/")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	clibase.Register(fs, &c)

	fs.StringVar(&o.Taxonomy, "taxonomy", "", "curated genome taxonomy TSV")

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
		o.Taxonomy = runcfg.MergeString(o.Taxonomy, cfg.Taxonomy)
	}

	if err := c.Validate(); err != nil {
		return o, err
	}
	if o.Taxonomy == "" {
		return o, fmt.Errorf("provide --taxonomy (flag or config)")
	}

	o.Common = c
	return o, nil
}
