// internal/misclasscli/options.go
package misclasscli

import (
	"flag"
	"fmt"
	"io"

	"taxoncheck/internal/clibase"
	"taxoncheck/internal/cliutil"
	"taxoncheck/internal/runcfg"
)

// Detection method selectors.
const (
	MethodCluster = "cluster"
	MethodANI     = "ani"
	MethodBoth    = "both"
)

// DefaultThreshold is the erroneous-assignment ANI threshold used when
// neither flag nor config sets one.
const DefaultThreshold = 0.95

type Options struct {
	clibase.Common

	// Misclass-specific
	Clusters  string
	ANICache  string
	ANIExec   string
	Threshold float64
	Method    string
	Threads   int

	// Forbidden is the placeholder-epithet set, from config or built-in.
	Forbidden map[string]bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --metadata meta.tsv --clusters clusters.tsv out/\n", name)

		_, _ = fmt.Fprintln(out, "\nDetection:")
		_, _ = fmt.Fprintln(out, "      --clusters file         Species cluster TSV [*]")
		_, _ = fmt.Fprintf(out, "      --method string         Detection method: cluster | ani | both [%s]\n", def("method"))
		_, _ = fmt.Fprintf(out, "      --ani-threshold float   Erroneous-assignment ANI threshold in (0,1) [%v]\n", DefaultThreshold)
		_, _ = fmt.Fprintln(out, "      --ani-cache file        Persistent ANI pair cache (sqlite)")
		_, _ = fmt.Fprintf(out, "      --ani-exec string       Pairwise ANI binary [%s]\n", def("ani-exec"))
		_, _ = fmt.Fprintf(out, "  -t, --threads int           Concurrent ANI computations [%s]\n", def("threads"))
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for the misclass tool.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "taxoncheck-misclass", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Flag genomes whose NCBI species disagrees with type strain clustering.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  taxoncheck-misclass \\")
		_, _ = fmt.Fprintln(w, "    --metadata metadata.tsv \\")
		_, _ = fmt.Fprintln(w, "    --genome-paths genome_paths.tsv \\")
		_, _ = fmt.Fprintln(w, "    --clusters sp_clusters.tsv \\")
		_, _ = fmt.Fprintln(w, "    --ani-cache ani_cache.db \\")
		_, _ = fmt.Fprintln(w, "    --method both \\")
		_, _ = fmt.Fprintln(w, "    output/")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	clibase.Register(fs, &c)

	fs.StringVar(&o.Clusters, "clusters", "", "species cluster TSV")
	fs.StringVar(&o.ANICache, "ani-cache", "", "persistent ANI pair cache (sqlite)")
	fs.StringVar(&o.ANIExec, "ani-exec", "fastANI", "pairwise ANI binary")
	fs.Float64Var(&o.Threshold, "ani-threshold", 0, "erroneous-assignment ANI threshold in (0,1)")
	fs.StringVar(&o.Method, "method", MethodBoth, "detection method: cluster | ani | both")
	fs.IntVar(&o.Threads, "threads", 1, "concurrent ANI computations")
	fs.IntVar(&o.Threads, "t", 1, "alias of --threads")

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

	// Merge run configuration beneath explicit flags.
	var cfg *runcfg.Config
	if c.ConfigFile != "" {
		var err error
		cfg, err = runcfg.Load(c.ConfigFile)
		if err != nil {
			return o, err
		}
		c.ApplyConfig(cfg)
		o.Clusters = runcfg.MergeString(o.Clusters, cfg.Clusters)
		o.ANICache = runcfg.MergeString(o.ANICache, cfg.ANICache)
		o.Threshold = runcfg.MergeFloat(o.Threshold, cfg.ANIThreshold)
	}
	o.Forbidden = cfg.Forbidden()
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}

	if err := c.Validate(); err != nil {
		return o, err
	}
	if o.Clusters == "" {
		return o, fmt.Errorf("provide --clusters (flag or config)")
	}
	if o.Threshold <= 0 || o.Threshold >= 1 {
		return o, fmt.Errorf("--ani-threshold must be in (0,1), got %v", o.Threshold)
	}
	switch o.Method {
	case MethodCluster, MethodANI, MethodBoth:
	default:
		return o, fmt.Errorf("invalid --method %q", o.Method)
	}
	if o.Threads < 1 {
		return o, fmt.Errorf("--threads must be >= 1")
	}

	o.Common = c
	return o, nil
}
