// internal/newgenomesapp/app.go
package newgenomesapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"taxoncheck/internal/clibase"
	"taxoncheck/internal/logging"
	"taxoncheck/internal/newgenomes"
	"taxoncheck/internal/newgenomescli"
	"taxoncheck/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	_ = ctx // release comparison is a single streaming pass over the inputs

	fs := newgenomescli.NewFlagSet("taxoncheck-newgenomes")
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := newgenomescli.ParseArgs(fs, argv)
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
		fmt.Fprintf(stdout, "taxoncheck-newgenomes version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.Quiet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting run",
		"tool", "taxoncheck-newgenomes",
		"version", version.Version,
		"run_id", uuid.NewString(),
		"prev_metadata", opts.PrevMetadata,
	)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	updater := newgenomes.New(opts.OutputDir, log)
	if err := updater.Run(opts.PrevMetadata, opts.Metadata, opts.GenomePaths, opts.AssemblySummary); err != nil {
		fmt.Fprintln(stderr, err)
		var conflict *newgenomes.AccessionConflictError
		if errors.As(err, &conflict) {
			return 1
		}
		return 3
	}
	return 0
}
