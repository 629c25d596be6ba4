// internal/misclass/ani_method.go
package misclass

import (
	"context"
	"fmt"

	"taxoncheck/internal/ani"
	"taxoncheck/internal/progress"
	"taxoncheck/internal/report"
)

// ByANI flags candidate mismatches whose ANI to the anchor representative
// falls below the erroneous-assignment threshold. Oracle calls are batched
// per species name, submitting both pair orientations; results are looked
// up per pair after the batch returns. Pairs the oracle could not resolve
// are counted and excluded from the threshold determination, never treated
// as below threshold. The report file is rewritten under
// ANIReportName(threshold).
func (d *Detector) ByANI(ctx context.Context, anchors map[string]string, oracle ani.Oracle) ([]Flagged, error) {
	rep, err := report.Create(d.reportPath(ANIReportName(d.threshold)),
		"Genome ID", "NCBI species", "Genome cluster", "Type species cluster",
		"ANI to type strain", "AF to type strain")
	if err != nil {
		return nil, err
	}

	bySpecies, names := d.candidatesBySpecies()
	genomicFiles := d.genomes.GenomicFiles()
	status := progress.New(d.status)

	var flagged []Flagged
	unclustered := 0
	unresolved := 0
	for idx, species := range names {
		anchorRep, ok := anchors[species]
		if !ok {
			continue
		}

		toCheck := d.mismatches(anchorRep, bySpecies[species], &unclustered)
		if len(toCheck) == 0 {
			continue
		}

		pairs := make([]ani.Pair, 0, 2*len(toCheck))
		for _, id := range toCheck {
			pairs = append(pairs, ani.Pair{Query: anchorRep, Ref: id})
			pairs = append(pairs, ani.Pair{Query: id, Ref: anchorRep})
		}

		status.Statusf("-> establishing erroneous assignments for %s [ANI pairs: %d; %d of %d species]",
			species, len(pairs), idx+1, len(names))

		results, err := oracle.Pairs(ctx, pairs, genomicFiles, true)
		if err != nil {
			status.Done()
			_ = rep.Close()
			return nil, fmt.Errorf("similarity batch for %s: %w", species, err)
		}

		for _, id := range toCheck {
			res, ok := ani.Symmetric(results, anchorRep, id)
			if !ok {
				unresolved++
				continue
			}
			if res.ANI >= d.threshold {
				continue
			}

			rid, _ := d.index.Representative(id)
			f := Flagged{GenomeID: id, Species: species, Rep: rid, AnchorRep: anchorRep, ANI: res.ANI, AF: res.AF}
			flagged = append(flagged, f)
			if err := rep.Row(f.GenomeID, f.Species, f.Rep, f.AnchorRep,
				fmt.Sprintf("%.4f", f.ANI), fmt.Sprintf("%.3f", f.AF)); err != nil {
				status.Done()
				_ = rep.Close()
				return nil, err
			}
		}
	}
	status.Done()
	if err := rep.Close(); err != nil {
		return nil, err
	}

	if unclustered > 0 {
		d.log.Warnf("skipped %d genomes absent from the cluster index", unclustered)
	}
	if unresolved > 0 {
		d.log.Warnf("excluded %d genomes with unresolved ANI to their type strain cluster", unresolved)
	}
	d.log.Infof("identified %d genomes from %d species as having misclassified NCBI species assignments",
		len(flagged), distinctSpecies(flagged))
	return flagged, nil
}
