// internal/strainsapp/app.go
package strainsapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"taxoncheck/internal/clibase"
	"taxoncheck/internal/genome"
	"taxoncheck/internal/incongruence"
	"taxoncheck/internal/logging"
	"taxoncheck/internal/strainscli"
	"taxoncheck/internal/taxon"
	"taxoncheck/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	_ = ctx // the incongruence check is pure table work, no cancellation points

	fs := strainscli.NewFlagSet("taxoncheck-strains")
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := strainscli.ParseArgs(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		return 0
	case err != nil:
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "taxoncheck-strains version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.Quiet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting run",
		"tool", "taxoncheck-strains",
		"version", version.Version,
		"run_id", uuid.NewString(),
	)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	genomes := genome.NewSet(log)
	if err := genomes.LoadMetadata(opts.Metadata); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	taxonomy, err := taxon.ReadTaxonomy(opts.Taxonomy)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Infow("inputs loaded", "genomes", genomes.Len(), "taxonomy_entries", len(taxonomy))

	checker := incongruence.New(opts.OutputDir, log)
	flagged, err := checker.Run(taxonomy, genomes)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Infow("incongruence check complete", "flagged", flagged)
	return 0
}
