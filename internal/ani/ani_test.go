// internal/ani/ani_test.go
package ani

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Whichever orientation was computed, Symmetric reports the same value.
func TestSymmetric(t *testing.T) {
	fwdOnly := map[Pair]Result{{"A", "B"}: {ANI: 0.975, AF: 0.8}}
	revOnly := map[Pair]Result{{"B", "A"}: {ANI: 0.975, AF: 0.8}}

	f, ok := Symmetric(fwdOnly, "A", "B")
	require.True(t, ok)
	r, ok := Symmetric(revOnly, "A", "B")
	require.True(t, ok)
	assert.Equal(t, f, r)

	// Swapping the query arguments must not change the answer either.
	swapped, ok := Symmetric(fwdOnly, "B", "A")
	require.True(t, ok)
	assert.Equal(t, f, swapped)
}

func TestSymmetricTakesLargerOfBothOrientations(t *testing.T) {
	results := map[Pair]Result{
		{"A", "B"}: {ANI: 0.96, AF: 0.9},
		{"B", "A"}: {ANI: 0.97, AF: 0.7},
	}
	r, ok := Symmetric(results, "A", "B")
	require.True(t, ok)
	assert.Equal(t, 0.97, r.ANI)
	assert.Equal(t, 0.9, r.AF)
}

func TestSymmetricUnresolved(t *testing.T) {
	_, ok := Symmetric(map[Pair]Result{}, "A", "B")
	assert.False(t, ok)
}

type memCache struct {
	mu sync.Mutex
	m  map[Pair]Result
}

func newMemCache() *memCache { return &memCache{m: map[Pair]Result{}} }

func (c *memCache) Get(q, r string) (Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.m[Pair{q, r}]
	return res, ok, nil
}

func (c *memCache) Put(q, r string, res Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[Pair{q, r}] = res
	return nil
}

type fakeRunner struct {
	mu    sync.Mutex
	calls int
	res   Result
	err   error
}

func (f *fakeRunner) Compute(ctx context.Context, q, r string) (Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.res, f.err
}

var testFiles = map[string]string{"A": "/g/A.fna", "B": "/g/B.fna", "C": "/g/C.fna"}

func TestExecutorCacheHitSkipsRunner(t *testing.T) {
	cache := newMemCache()
	require.NoError(t, cache.Put("A", "B", Result{ANI: 0.99, AF: 0.95}))

	runner := &fakeRunner{res: Result{ANI: 0.80}}
	ex := NewExecutor(ExecutorConfig{Cache: cache, Runner: runner, Log: zap.NewNop().Sugar()})

	got, err := ex.Pairs(context.Background(), []Pair{{"A", "B"}}, testFiles, true)
	require.NoError(t, err)
	assert.Equal(t, Result{ANI: 0.99, AF: 0.95}, got[Pair{"A", "B"}])
	assert.Equal(t, 0, runner.calls)
}

func TestExecutorComputesAndWritesThrough(t *testing.T) {
	cache := newMemCache()
	runner := &fakeRunner{res: Result{ANI: 0.96, AF: 0.9}}
	ex := NewExecutor(ExecutorConfig{Cache: cache, Runner: runner, Threads: 2, Log: zap.NewNop().Sugar()})

	pairs := []Pair{{"A", "B"}, {"B", "A"}}
	got, err := ex.Pairs(context.Background(), pairs, testFiles, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, runner.calls)

	// Second call resolves entirely from the cache.
	got2, err := ex.Pairs(context.Background(), pairs, testFiles, true)
	require.NoError(t, err)
	assert.Equal(t, got, got2)
	assert.Equal(t, 2, runner.calls)
}

func TestExecutorOmitsFailedPairs(t *testing.T) {
	runner := &fakeRunner{err: errors.New("assembly unreadable")}
	ex := NewExecutor(ExecutorConfig{Cache: newMemCache(), Runner: runner, Log: zap.NewNop().Sugar()})

	got, err := ex.Pairs(context.Background(), []Pair{{"A", "B"}}, testFiles, true)
	require.NoError(t, err)
	_, ok := got[Pair{"A", "B"}]
	assert.False(t, ok, "failed pair must be absent, not defaulted")
}

func TestExecutorOmitsPairsWithoutGenomicFile(t *testing.T) {
	runner := &fakeRunner{res: Result{ANI: 0.96}}
	ex := NewExecutor(ExecutorConfig{Runner: runner, Log: zap.NewNop().Sugar()})

	got, err := ex.Pairs(context.Background(), []Pair{{"A", "Z"}}, testFiles, false)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, runner.calls)
}

func TestExecutorDeduplicatesPairs(t *testing.T) {
	runner := &fakeRunner{res: Result{ANI: 0.96}}
	ex := NewExecutor(ExecutorConfig{Runner: runner, Log: zap.NewNop().Sugar()})

	_, err := ex.Pairs(context.Background(), []Pair{{"A", "B"}, {"A", "B"}}, testFiles, false)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
}

func TestParseFastANI(t *testing.T) {
	res, err := parseFastANI("/g/A.fna\t/g/B.fna\t97.66\t1242\t1332\n")
	require.NoError(t, err)
	assert.InDelta(t, 0.9766, res.ANI, 1e-9)
	assert.InDelta(t, 1242.0/1332.0, res.AF, 1e-9)

	res, err = parseFastANI("")
	require.NoError(t, err)
	assert.Zero(t, res.ANI)
	assert.Zero(t, res.AF)

	_, err = parseFastANI("only\ttwo\n")
	require.Error(t, err)
}
