// internal/misclass/detector.go

// Package misclass identifies genomes whose reference-authority (NCBI)
// species assignment disagrees with the clustering evidence anchored by
// type strain genomes. Two methods are provided: a purely topological
// cluster-membership test, and an ANI-threshold test backed by the pairwise
// similarity oracle.
package misclass

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"taxoncheck/internal/cluster"
	"taxoncheck/internal/genome"
	"taxoncheck/internal/taxon"
)

// ClusterReportName is the fixed report file name for the cluster-only
// method.
const ClusterReportName = "ncbi_misclassified_sp.gtdb_clustering.tsv"

// ANIReportName returns the fixed report file name for the ANI-threshold
// method at the given threshold.
func ANIReportName(threshold float64) string {
	return fmt.Sprintf("ncbi_misclassified_sp.ani_%s.tsv", strconv.FormatFloat(threshold, 'g', -1, 64))
}

// Flagged is one genome reported as misclassified: the genome, the species
// name it claims, the representative of its own cluster, and the anchor
// representative of that species. ANI and AF are populated by the
// ANI-threshold method only.
type Flagged struct {
	GenomeID  string
	Species   string
	Rep       string
	AnchorRep string
	ANI       float64
	AF        float64
}

// Config wires a Detector.
type Config struct {
	Genomes   *genome.Set
	Clusters  *cluster.Clusters
	Forbidden map[string]bool // specific epithets excluded from candidacy
	Threshold float64         // erroneous-assignment ANI threshold, a fraction in (0,1)
	OutputDir string
	Status    io.Writer // in-place progress stream; nil disables
	Log       *zap.SugaredLogger
}

// Detector finds genomes with erroneous reference species assignments.
type Detector struct {
	genomes   *genome.Set
	clusters  *cluster.Clusters
	index     cluster.Index
	forbidden map[string]bool
	threshold float64
	outputDir string
	status    io.Writer
	log       *zap.SugaredLogger
}

// New builds a Detector; the cluster index is built once here and read-only
// afterwards.
func New(cfg Config) *Detector {
	forbidden := cfg.Forbidden
	if forbidden == nil {
		forbidden = taxon.DefaultForbiddenEpithets()
	}
	return &Detector{
		genomes:   cfg.Genomes,
		clusters:  cfg.Clusters,
		index:     cfg.Clusters.BuildIndex(),
		forbidden: forbidden,
		threshold: cfg.Threshold,
		outputDir: cfg.OutputDir,
		status:    cfg.Status,
		log:       cfg.Log,
	}
}

// candidatesBySpecies groups genomes by their reference species name,
// excluding genomes without a species assignment and names with forbidden
// epithets. The returned species list is sorted for deterministic batches
// and reports.
func (d *Detector) candidatesBySpecies() (map[string][]string, []string) {
	bySpecies := make(map[string][]string)
	for _, id := range d.genomes.IDs() {
		species := d.genomes.NCBISpecies(id)
		if species == taxon.UnassignedSpecies || d.forbidden[taxon.SpecificEpithet(species)] {
			continue
		}
		bySpecies[species] = append(bySpecies[species], id)
	}

	names := make([]string, 0, len(bySpecies))
	for species := range bySpecies {
		names = append(names, species)
	}
	sort.Strings(names)
	return bySpecies, names
}

// mismatches returns the candidate mismatches for one anchored species:
// genomes claiming the species but clustered under a representative other
// than the anchor. Unclustered genomes are skipped and counted, never
// assigned a default representative.
func (d *Detector) mismatches(anchorRep string, candidates []string, unclustered *int) []string {
	var out []string
	for _, id := range candidates {
		rid, ok := d.index.Representative(id)
		if !ok {
			*unclustered++
			continue
		}
		if rid != anchorRep {
			out = append(out, id)
		}
	}
	return out
}

// distinctSpecies counts the distinct species names among flagged genomes.
func distinctSpecies(flagged []Flagged) int {
	species := make(map[string]bool, len(flagged))
	for _, f := range flagged {
		species[f.Species] = true
	}
	return len(species)
}

func (d *Detector) reportPath(name string) string {
	return filepath.Join(d.outputDir, name)
}
