// internal/cluster/cluster.go
package cluster

// Clusters holds the species clustering for one release: each representative
// genome stands for a set of member genomes considered the same
// species-level unit. Members exclude the representative itself. Built once
// per run and immutable thereafter.
type Clusters struct {
	// Members maps representative ID -> member genome IDs.
	Members map[string][]string
	// Radius maps representative ID -> the ANI radius used for clustering.
	Radius map[string]float64
}

// Index maps every clustered genome (members and representatives alike) to
// its cluster representative.
type Index map[string]string

// NumGenomes returns the total genome count across clusters, representatives
// included.
func (c *Clusters) NumGenomes() int {
	n := 0
	for _, cids := range c.Members {
		n += len(cids) + 1
	}
	return n
}

// BuildIndex inverts the clustering into a member -> representative lookup.
// A representative maps to itself. Genomes absent from every cluster are
// absent from the index; callers must treat a failed lookup as
// "unclustered", not as an error.
func (c *Clusters) BuildIndex() Index {
	idx := make(Index, c.NumGenomes())
	for rid, cids := range c.Members {
		idx[rid] = rid
		for _, cid := range cids {
			idx[cid] = rid
		}
	}
	return idx
}

// Representative looks up the cluster representative for a genome.
func (ix Index) Representative(id string) (string, bool) {
	rid, ok := ix[id]
	return rid, ok
}
