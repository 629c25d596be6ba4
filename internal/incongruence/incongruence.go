// internal/incongruence/incongruence.go

// Package incongruence checks agreement between curated (GTDB) species
// assignments and reference-authority (NCBI) species assignments for
// genomes assembled from the type strain of a species.
package incongruence

import (
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"taxoncheck/internal/genome"
	"taxoncheck/internal/report"
	"taxoncheck/internal/taxon"
)

// ReportName is the fixed report file name.
const ReportName = "type_strains_incongruencies.tsv"

// Checker compares species epithets across the two taxonomies.
type Checker struct {
	outputDir string
	log       *zap.SugaredLogger
}

// New returns a Checker writing its report into outputDir.
func New(outputDir string, log *zap.SugaredLogger) *Checker {
	return &Checker{outputDir: outputDir, log: log}
}

// Run walks the curated taxonomy and reports every type strain genome whose
// curated epithet disagrees with the reference authority's epithet beyond
// the gender-tolerant equivalence rule. Genomes the reference authority has
// not yet assigned a species are expected lag, not disagreement, and are
// skipped. Returns the number of incongruencies found.
func (c *Checker) Run(taxonomy map[string][]string, genomes *genome.Set) (int, error) {
	rep, err := report.Create(filepath.Join(c.outputDir, ReportName),
		"Genome ID", "GTDB species", "NCBI species", "NCBI RefSeq note")
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(taxonomy))
	for id := range taxonomy {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	incongruent := 0
	missing := 0
	for _, id := range ids {
		g, ok := genomes.Get(id)
		if !ok {
			missing++
			continue
		}
		if !g.TypeStrain {
			continue
		}

		gtdbSpecies := taxonomy[id][taxon.SpeciesIndex]
		ncbiSpecies := g.NCBISpecies
		if ncbiSpecies == taxon.UnassignedSpecies {
			continue
		}

		if taxon.SameEpithet(taxon.SpecificEpithet(gtdbSpecies), taxon.SpecificEpithet(ncbiSpecies)) {
			continue
		}

		incongruent++
		if err := rep.Row(id, gtdbSpecies, ncbiSpecies, g.ExcludedFromRefSeqNote); err != nil {
			_ = rep.Close()
			return 0, err
		}
	}
	if err := rep.Close(); err != nil {
		return 0, err
	}

	if missing > 0 {
		c.log.Warnf("skipped %d taxonomy genomes without metadata", missing)
	}
	c.log.Infof("identified %d genomes with incongruent species assignments", incongruent)
	return incongruent, nil
}
