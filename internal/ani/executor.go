// internal/ani/executor.go
package ani

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner performs the actual pairwise computation for one ordered pair of
// genomic FASTA files. How similarity is computed is its business alone.
type Runner interface {
	Compute(ctx context.Context, queryFile, refFile string) (Result, error)
}

// ExecutorConfig wires an Executor.
type ExecutorConfig struct {
	Cache   Cache  // optional persistent pair cache
	Runner  Runner // pairwise computation backend
	Threads int    // concurrent computations; <=1 means sequential
	Log     *zap.SugaredLogger
}

// Executor is the Oracle implementation: it resolves pairs from the cache
// where possible and fans the remainder out to the Runner with a bounded
// worker pool, writing fresh results through to the cache. Pairs that fail
// to compute are logged and omitted from the result map.
type Executor struct {
	cache   Cache
	runner  Runner
	threads int
	log     *zap.SugaredLogger
}

// NewExecutor builds an Executor from cfg.
func NewExecutor(cfg ExecutorConfig) *Executor {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	return &Executor{
		cache:   cfg.Cache,
		runner:  cfg.Runner,
		threads: threads,
		log:     cfg.Log,
	}
}

// Pairs implements Oracle.
func (e *Executor) Pairs(ctx context.Context, pairs []Pair, genomicFiles map[string]string, checkCache bool) (map[Pair]Result, error) {
	results := make(map[Pair]Result, len(pairs))

	var missing []Pair
	seen := make(map[Pair]bool, len(pairs))
	for _, p := range pairs {
		if seen[p] {
			continue
		}
		seen[p] = true

		if checkCache && e.cache != nil {
			res, ok, err := e.cache.Get(p.Query, p.Ref)
			if err != nil {
				e.log.Warnw("cache read failed, recomputing pair", "query", p.Query, "ref", p.Ref, "error", err)
			} else if ok {
				results[p] = res
				continue
			}
		}
		missing = append(missing, p)
	}

	if len(missing) == 0 {
		return results, nil
	}
	if e.runner == nil {
		return nil, fmt.Errorf("ani: %d uncached pairs but no runner configured", len(missing))
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.threads)
	for _, p := range missing {
		p := p
		queryFile, qok := genomicFiles[p.Query]
		refFile, rok := genomicFiles[p.Ref]
		if !qok || !rok {
			e.log.Warnw("no genomic file for pair, skipping", "query", p.Query, "ref", p.Ref)
			continue
		}

		g.Go(func() error {
			res, err := e.runner.Compute(gctx, queryFile, refFile)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.log.Warnw("pairwise computation failed, pair left unresolved",
					"query", p.Query, "ref", p.Ref, "error", err)
				return nil
			}

			mu.Lock()
			results[p] = res
			mu.Unlock()

			if e.cache != nil {
				if err := e.cache.Put(p.Query, p.Ref, res); err != nil {
					e.log.Warnw("cache write failed", "query", p.Query, "ref", p.Ref, "error", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
