// internal/genome/load.go
package genome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taxoncheck/internal/gid"
)

// Metadata columns read by this system. The metadata file carries hundreds
// of columns; everything else is ignored.
const (
	colAccession       = "accession"
	colNCBITaxonomy    = "ncbi_taxonomy"
	colGTDBTaxonomy    = "gtdb_taxonomy"
	colTypeDesignation = "gtdb_type_designation"
	colRefSeqNote      = "ncbi_excluded_from_refseq"
)

// typeStrainOfSpecies is the designation value marking direct type-strain
// evidence.
const typeStrainOfSpecies = "type strain of species"

// LoadMetadata populates the set from a tab-delimited genome metadata file.
// Genome IDs are canonicalized; the full accession is preserved alongside.
func (s *Set) LoadMetadata(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open metadata file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read metadata file: %w", err)
		}
		return fmt.Errorf("metadata file %s: missing header row", path)
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	cols := map[string]int{}
	for i, h := range header {
		cols[h] = i
	}
	for _, want := range []string{colAccession, colNCBITaxonomy, colGTDBTaxonomy, colTypeDesignation} {
		if _, ok := cols[want]; !ok {
			return fmt.Errorf("metadata file %s: missing column %q", path, want)
		}
	}

	field := func(fields []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[idx])
	}

	lineNum := 1
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		accn := field(fields, colAccession)
		if accn == "" {
			return fmt.Errorf("metadata file %s: line %d: empty accession", path, lineNum)
		}

		g := &Genome{
			ID:                     gid.Canonical(accn),
			Accession:              accn,
			NCBISpecies:            speciesFromTaxonomy(field(fields, colNCBITaxonomy)),
			GTDBSpecies:            speciesFromTaxonomy(field(fields, colGTDBTaxonomy)),
			TypeStrain:             field(fields, colTypeDesignation) == typeStrainOfSpecies,
			ExcludedFromRefSeqNote: field(fields, colRefSeqNote),
		}
		s.Add(g)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}

	s.log.Infof("read metadata for %d genomes from %s", s.Len(), filepath.Base(path))
	return nil
}

// LoadGenomicPaths reads a tab-delimited file mapping genome accessions to
// the directories holding their assemblies, and resolves the genomic FASTA
// path for each genome already in the set. Rows for genomes absent from the
// set are counted and skipped.
func (s *Set) LoadGenomicPaths(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open genomic path file: %w", err)
	}
	defer f.Close()

	resolved := 0
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return fmt.Errorf("genomic path file %s: line %d: expected at least 2 fields", path, lineNum)
		}

		accn := fields[0]
		genomeDir := fields[1]

		g, ok := s.Get(gid.Canonical(accn))
		if !ok {
			skipped++
			continue
		}

		assemblyID := filepath.Base(filepath.Clean(genomeDir))
		g.GenomicFile = filepath.Join(genomeDir, assemblyID+"_genomic.fna")
		resolved++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read genomic path file: %w", err)
	}

	s.log.Infof("resolved genomic files for %d genomes (%d rows without metadata)", resolved, skipped)
	return nil
}
