// internal/misclass/cluster_method.go
package misclass

import (
	"taxoncheck/internal/report"
)

// ByClustering flags every genome that claims an anchored species name but
// resides in a cluster other than the anchor cluster. No similarity
// evidence is fetched: clustering disagreement alone is the signal. The
// report file is rewritten under ClusterReportName.
func (d *Detector) ByClustering(anchors map[string]string) ([]Flagged, error) {
	rep, err := report.Create(d.reportPath(ClusterReportName),
		"Genome ID", "NCBI species", "Genome cluster", "Type species cluster")
	if err != nil {
		return nil, err
	}

	bySpecies, names := d.candidatesBySpecies()

	var flagged []Flagged
	unclustered := 0
	for _, species := range names {
		anchorRep, ok := anchors[species]
		if !ok {
			continue
		}

		for _, id := range d.mismatches(anchorRep, bySpecies[species], &unclustered) {
			rid, _ := d.index.Representative(id)
			f := Flagged{GenomeID: id, Species: species, Rep: rid, AnchorRep: anchorRep}
			flagged = append(flagged, f)
			if err := rep.Row(f.GenomeID, f.Species, f.Rep, f.AnchorRep); err != nil {
				_ = rep.Close()
				return nil, err
			}
		}
	}
	if err := rep.Close(); err != nil {
		return nil, err
	}

	if unclustered > 0 {
		d.log.Warnf("skipped %d genomes absent from the cluster index", unclustered)
	}
	d.log.Infof("identified %d genomes from %d species as having misclassified NCBI species assignments",
		len(flagged), distinctSpecies(flagged))
	return flagged, nil
}
