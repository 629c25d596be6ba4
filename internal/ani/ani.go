// internal/ani/ani.go
package ani

import "context"

// Pair is an ordered genome-ID pair submitted for pairwise similarity
// computation. Orientation matters to the computation; callers wanting a
// symmetric view submit both orientations and read back through Symmetric.
type Pair struct {
	Query, Ref string
}

// Result holds the similarity evidence for one ordered pair: average
// nucleotide identity and the fraction of the genomes that aligned.
// Both are fractions in [0,1].
type Result struct {
	ANI float64
	AF  float64
}

// Cache is the persistent pair -> result store shared across runs. Entries
// are append-or-hit and never invalidated: genomic content for a fixed
// genome ID is assumed immutable.
type Cache interface {
	Get(query, ref string) (Result, bool, error)
	Put(query, ref string, res Result) error
}

// Oracle computes similarity for a batch of ordered pairs. Pairs whose
// computation failed are omitted from the result map, never reported with a
// default value.
type Oracle interface {
	Pairs(ctx context.Context, pairs []Pair, genomicFiles map[string]string, checkCache bool) (map[Pair]Result, error)
}

// Symmetric reports the similarity between two genomes regardless of which
// orientation (or both) was computed. When both orientations resolved, the
// larger ANI and AF are taken. ok is false when neither orientation is
// present.
func Symmetric(results map[Pair]Result, gid1, gid2 string) (Result, bool) {
	fwd, fok := results[Pair{gid1, gid2}]
	rev, rok := results[Pair{gid2, gid1}]
	switch {
	case fok && rok:
		r := fwd
		if rev.ANI > r.ANI {
			r.ANI = rev.ANI
		}
		if rev.AF > r.AF {
			r.AF = rev.AF
		}
		return r, true
	case fok:
		return fwd, true
	case rok:
		return rev, true
	}
	return Result{}, false
}
