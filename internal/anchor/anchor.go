// internal/anchor/anchor.go

// Package anchor resolves, for each reference species name, the single
// cluster that is the authoritative home of that name by virtue of holding
// a type-strain genome.
package anchor

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"taxoncheck/internal/cluster"
	"taxoncheck/internal/genome"
	"taxoncheck/internal/taxon"
)

// ConflictError reports that type-strain genomes carrying the same
// reference species name were found in two different clusters. This
// indicates upstream data corruption; no report produced from such input is
// trustworthy, so callers must abort the run.
type ConflictError struct {
	Species string
	Rep1    string
	Rep2    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("species %s has type strain genomes in different clusters (%s, %s)",
		e.Species, e.Rep1, e.Rep2)
}

// ByRepresentative anchors each reference species name whose cluster
// representative carries effective type-strain evidence and a species
// assignment. Callers must run Set.PropagateTypeEvidence first so a type
// strain anywhere in the cluster anchors the cluster through its
// representative. Returns species -> representative ID.
func ByRepresentative(genomes *genome.Set, clusters *cluster.Clusters, log *zap.SugaredLogger) (map[string]string, error) {
	anchors := make(map[string]string)
	for _, rid := range sortedReps(clusters) {
		g, ok := genomes.Get(rid)
		if !ok || !g.EffectiveTypeStrain {
			continue
		}
		species := g.NCBISpecies
		if species == taxon.UnassignedSpecies {
			continue
		}
		if prev, ok := anchors[species]; ok && prev != rid {
			return nil, &ConflictError{Species: species, Rep1: prev, Rep2: rid}
		}
		anchors[species] = rid
	}

	log.Infof("identified %d species anchored by a type strain representative", len(anchors))
	return anchors, nil
}

// ByClusterMember anchors each reference species name for which any cluster
// member carries direct type-strain evidence with a non-empty, non-forbidden
// species assignment. Two members of different clusters claiming the same
// name is a fatal consistency violation surfaced as *ConflictError.
func ByClusterMember(genomes *genome.Set, clusters *cluster.Clusters, forbidden map[string]bool, log *zap.SugaredLogger) (map[string]string, error) {
	anchors := make(map[string]string)
	for _, rid := range sortedReps(clusters) {
		for _, cid := range append([]string{rid}, clusters.Members[rid]...) {
			g, ok := genomes.Get(cid)
			if !ok || !g.TypeStrain {
				continue
			}
			species := g.NCBISpecies
			if species == taxon.UnassignedSpecies || forbidden[taxon.SpecificEpithet(species)] {
				continue
			}
			if prev, ok := anchors[species]; ok && prev != rid {
				return nil, &ConflictError{Species: species, Rep1: prev, Rep2: rid}
			}
			anchors[species] = rid
		}
	}

	log.Infof("identified %d species anchored by a type strain genome", len(anchors))
	return anchors, nil
}

// sortedReps iterates clusters deterministically; map order would make
// conflict diagnostics flap between runs.
func sortedReps(clusters *cluster.Clusters) []string {
	reps := make([]string, 0, len(clusters.Members))
	for rid := range clusters.Members {
		reps = append(reps, rid)
	}
	sort.Strings(reps)
	return reps
}
