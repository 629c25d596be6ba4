// internal/misclassapp/app.go
package misclassapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taxoncheck/internal/anchor"
	"taxoncheck/internal/ani"
	"taxoncheck/internal/anicache"
	"taxoncheck/internal/clibase"
	"taxoncheck/internal/cluster"
	"taxoncheck/internal/genome"
	"taxoncheck/internal/logging"
	"taxoncheck/internal/misclass"
	"taxoncheck/internal/misclasscli"
	"taxoncheck/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := misclasscli.NewFlagSet("taxoncheck-misclass")
	fs.SetOutput(io.Discard) // silence default flag pkg

	opts, err := misclasscli.ParseArgs(fs, argv)
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
		fmt.Fprintf(stdout, "taxoncheck-misclass version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.Quiet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Sync() }()
	log.Infow("starting run",
		"tool", "taxoncheck-misclass",
		"version", version.Version,
		"run_id", uuid.NewString(),
		"method", opts.Method,
		"ani_threshold", opts.Threshold,
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
	if opts.GenomePaths != "" {
		if err := genomes.LoadGenomicPaths(opts.GenomePaths); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	clusters, err := cluster.Read(opts.Clusters)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Infow("inputs loaded",
		"genomes", genomes.Len(),
		"clusters", len(clusters.Members),
		"clustered_genomes", clusters.NumGenomes(),
	)

	genomes.PropagateTypeEvidence(clusters)

	var status io.Writer
	if !opts.Quiet {
		status = stderr
	}
	det := misclass.New(misclass.Config{
		Genomes:   genomes,
		Clusters:  clusters,
		Forbidden: opts.Forbidden,
		Threshold: opts.Threshold,
		OutputDir: opts.OutputDir,
		Status:    status,
		Log:       log,
	})

	if opts.Method == misclasscli.MethodCluster || opts.Method == misclasscli.MethodBoth {
		anchors, err := anchor.ByClusterMember(genomes, clusters, opts.Forbidden, log)
		if err != nil {
			return reportAnchorError(stderr, err)
		}
		if _, err := det.ByClustering(anchors); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if opts.Method == misclasscli.MethodANI || opts.Method == misclasscli.MethodBoth {
		anchors, err := anchor.ByRepresentative(genomes, clusters, log)
		if err != nil {
			return reportAnchorError(stderr, err)
		}

		oracle, closeCache, err := buildOracle(opts, log)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		defer closeCache()

		if _, err := det.ByANI(ctx, anchors, oracle); err != nil {
			fmt.Fprintln(stderr, err)
			if ctx.Err() != nil {
				return 130
			}
			return 3
		}
	}

	return 0
}

// buildOracle assembles the ANI executor over the optional persistent cache
// and the external pairwise binary.
func buildOracle(opts misclasscli.Options, log *zap.SugaredLogger) (ani.Oracle, func(), error) {
	var cache ani.Cache
	closeCache := func() {}
	if opts.ANICache != "" {
		store, err := anicache.Open(opts.ANICache)
		if err != nil {
			return nil, nil, err
		}
		cache = store
		closeCache = func() { _ = store.Close() }
		log.Infow("ANI cache opened", "path", store.Path())
	}

	exec := ani.NewExecutor(ani.ExecutorConfig{
		Cache:   cache,
		Runner:  &ani.FastANIRunner{Exec: opts.ANIExec},
		Threads: opts.Threads,
		Log:     log,
	})
	return exec, closeCache, nil
}

// reportAnchorError maps an anchoring conflict to the data-inconsistency
// exit code; anything else is an I/O class failure.
func reportAnchorError(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	var conflict *anchor.ConflictError
	if errors.As(err, &conflict) {
		return 1
	}
	return 3
}
