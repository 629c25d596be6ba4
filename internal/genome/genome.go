// internal/genome/genome.go
package genome

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"taxoncheck/internal/cluster"
	"taxoncheck/internal/taxon"
)

// Genome is the narrow view of a genome record this system reads: its
// canonical ID, the species labels from the two taxonomies, type-strain
// evidence, and the path to its genomic FASTA file.
type Genome struct {
	ID        string
	Accession string // full accession as listed in the metadata file

	NCBISpecies string // reference-authority species label
	GTDBSpecies string // curated-taxonomy species label

	// TypeStrain marks a genome assembled from the type strain of its
	// species. EffectiveTypeStrain extends that evidence to every genome of
	// a cluster containing such a genome; populated by
	// Set.PropagateTypeEvidence.
	TypeStrain          bool
	EffectiveTypeStrain bool

	GenomicFile string

	// ExcludedFromRefSeqNote is NCBI's free-text annotation explaining why
	// the assembly is excluded from RefSeq, when present.
	ExcludedFromRefSeqNote string
}

// Set is an in-memory genome store keyed by canonical genome ID.
type Set struct {
	genomes map[string]*Genome
	log     *zap.SugaredLogger
}

// NewSet returns an empty genome set.
func NewSet(log *zap.SugaredLogger) *Set {
	return &Set{
		genomes: make(map[string]*Genome),
		log:     log,
	}
}

// Add inserts or replaces a genome record.
func (s *Set) Add(g *Genome) {
	s.genomes[g.ID] = g
}

// Get looks up a genome by canonical ID.
func (s *Set) Get(id string) (*Genome, bool) {
	g, ok := s.genomes[id]
	return g, ok
}

// Len returns the number of genomes in the set.
func (s *Set) Len() int { return len(s.genomes) }

// IDs returns all genome IDs in sorted order for deterministic iteration.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.genomes))
	for id := range s.genomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GenomicFiles returns the genome ID -> genomic FASTA path mapping for all
// genomes with a known path.
func (s *Set) GenomicFiles() map[string]string {
	files := make(map[string]string, len(s.genomes))
	for id, g := range s.genomes {
		if g.GenomicFile != "" {
			files[id] = g.GenomicFile
		}
	}
	return files
}

// NCBISpecies returns the reference-authority species label for a genome,
// or the unassigned sentinel when the genome is unknown.
func (s *Set) NCBISpecies(id string) string {
	if g, ok := s.genomes[id]; ok && g.NCBISpecies != "" {
		return g.NCBISpecies
	}
	return taxon.UnassignedSpecies
}

// PropagateTypeEvidence marks every genome of a cluster as carrying
// effective type-strain evidence when any member of that cluster, the
// representative included, has direct evidence.
func (s *Set) PropagateTypeEvidence(clusters *cluster.Clusters) {
	for _, g := range s.genomes {
		g.EffectiveTypeStrain = g.TypeStrain
	}

	for rid, cids := range clusters.Members {
		hasType := false
		for _, id := range append([]string{rid}, cids...) {
			if g, ok := s.genomes[id]; ok && g.TypeStrain {
				hasType = true
				break
			}
		}
		if !hasType {
			continue
		}
		for _, id := range append([]string{rid}, cids...) {
			if g, ok := s.genomes[id]; ok {
				g.EffectiveTypeStrain = true
			}
		}
	}
}

// speciesFromTaxonomy extracts the species rank from a semicolon-separated
// taxonomy string, returning the unassigned sentinel when absent.
func speciesFromTaxonomy(taxonomy string) string {
	for _, rank := range strings.Split(taxonomy, ";") {
		rank = strings.TrimSpace(rank)
		if strings.HasPrefix(rank, "s__") {
			return rank
		}
	}
	return taxon.UnassignedSpecies
}
