// internal/newgenomes/newgenomes.go

// Package newgenomes identifies genomes that are new to, or updated in, the
// current release relative to the previous one, by diffing canonical
// accessions across the two metadata tables.
package newgenomes

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"taxoncheck/internal/gid"
	"taxoncheck/internal/report"
)

// ReportName is the fixed report file name.
const ReportName = "genomes_new_updated.tsv"

// Updater computes the new/updated genome sets.
type Updater struct {
	outputDir string
	log       *zap.SugaredLogger
}

// New returns an Updater writing its report into outputDir.
func New(outputDir string, log *zap.SugaredLogger) *Updater {
	return &Updater{outputDir: outputDir, log: log}
}

// AccessionConflictError reports two accessions compared as one genome
// whose canonical IDs disagree. This indicates corrupted release metadata;
// callers must abort the run.
type AccessionConflictError struct {
	Accn1 string
	Accn2 string
}

func (e *AccessionConflictError) Error() string {
	return fmt.Sprintf("accessions %s and %s have different canonical genome IDs (%s, %s)",
		e.Accn1, e.Accn2, gid.Canonical(e.Accn1), gid.Canonical(e.Accn2))
}

// SameAccession reports whether two accessions of one canonical genome
// refer to the same assembly: identical strings, or a GenBank/RefSeq pair
// NCBI lists as identical. Accessions whose canonical IDs differ indicate
// corrupted input and return *AccessionConflictError.
func SameAccession(accn1, accn2 string, identical map[string]string) (bool, error) {
	if accn1 == accn2 {
		return true, nil
	}
	if gid.Canonical(accn1) != gid.Canonical(accn2) {
		return false, &AccessionConflictError{Accn1: accn1, Accn2: accn2}
	}

	a1 := gid.StripRepository(accn1)
	a2 := gid.StripRepository(accn2)
	return identical[a1] == a2, nil
}

// readAccessions maps canonical genome ID -> full accession across one or
// more metadata files (first column, header skipped).
func readAccessions(paths ...string) (map[string]string, error) {
	accns := make(map[string]string)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open metadata file: %w", err)
		}

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		first := true
		for sc.Scan() {
			if first {
				first = false
				continue
			}
			line := strings.TrimRight(sc.Text(), "\r\n")
			if line == "" {
				continue
			}
			accn := strings.SplitN(line, "\t", 2)[0]
			accns[gid.Canonical(accn)] = accn
		}
		err = sc.Err()
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read metadata file %s: %w", path, err)
		}
	}
	return accns, nil
}

// readIdenticalAccessions parses the NCBI assembly summary for
// GenBank/RefSeq assembly pairs marked identical, returning a symmetric
// accession mapping.
func readIdenticalAccessions(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assembly summary: %w", err)
	}
	defer f.Close()

	identical := make(map[string]string)
	gbIdx, rsIdx, pairedIdx := -1, -1, -1

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.HasPrefix(line, "#") {
			if strings.Contains(line, "assembly_accession") {
				header := strings.Split(line, "\t")
				for i, h := range header {
					switch h {
					case "# assembly_accession":
						gbIdx = i
					case "gbrs_paired_asm":
						rsIdx = i
					case "paired_asm_comp":
						pairedIdx = i
					}
				}
			}
			continue
		}
		if gbIdx < 0 || rsIdx < 0 || pairedIdx < 0 {
			return nil, fmt.Errorf("assembly summary %s: data rows before header", path)
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= pairedIdx || len(fields) <= rsIdx {
			continue
		}
		if fields[pairedIdx] == "identical" {
			gb := fields[gbIdx]
			rs := fields[rsIdx]
			identical[gb] = rs
			identical[rs] = gb
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read assembly summary: %w", err)
	}
	return identical, nil
}

// readGenomicFiles resolves the genomic FASTA path for each genome listed
// in the genome path file, warning on rows without metadata and on missing
// files.
func (u *Updater) readGenomicFiles(path string, curAccns map[string]string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome path file: %w", err)
	}
	defer f.Close()

	files := make(map[string]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("genome path file %s: expected 3 fields, found %d", path, len(fields))
		}
		accn, genomeDir, id := fields[0], fields[1], gid.Canonical(fields[2])

		if _, ok := curAccns[id]; !ok {
			u.log.Warnf("no metadata for genome in current release: %s", accn)
		}

		assemblyID := filepath.Base(filepath.Clean(genomeDir))
		genomicFile := filepath.Join(genomeDir, assemblyID+"_genomic.fna")
		files[id] = genomicFile
		if _, err := os.Stat(genomicFile); err != nil {
			u.log.Warnf("genomic file not found: %s", genomicFile)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read genome path file: %w", err)
	}

	u.log.Infof("identified genomic file for %d genomes", len(files))
	return files, nil
}

// Run diffs previous against current release metadata and writes the
// new/updated genome report. User genomes are outside the accession system
// and never diffed.
func (u *Updater) Run(prevMetadata []string, curMetadata, curGenomePaths, assemblySummary string) error {
	prevAccns, err := readAccessions(prevMetadata...)
	if err != nil {
		return err
	}
	u.log.Infof("identified %d genomes in previous release", len(prevAccns))

	curAccns, err := readAccessions(curMetadata)
	if err != nil {
		return err
	}
	u.log.Infof("identified %d genomes in current release", len(curAccns))

	identical, err := readIdenticalAccessions(assemblySummary)
	if err != nil {
		return err
	}

	var newIDs, updatedIDs []string
	for id, accn := range curAccns {
		if gid.IsUser(id) {
			continue
		}

		prevAccn, ok := prevAccns[id]
		if !ok {
			newIDs = append(newIDs, id)
			continue
		}
		same, err := SameAccession(accn, prevAccn, identical)
		if err != nil {
			return err
		}
		if !same {
			updatedIDs = append(updatedIDs, id)
		}
	}
	sort.Strings(newIDs)
	sort.Strings(updatedIDs)
	u.log.Infof("identified %d new and %d updated genomes", len(newIDs), len(updatedIDs))

	genomicFiles, err := u.readGenomicFiles(curGenomePaths, curAccns)
	if err != nil {
		return err
	}

	rep, err := report.Create(filepath.Join(u.outputDir, ReportName),
		"Genome ID", "Accession", "Status", "Genomic file")
	if err != nil {
		return err
	}
	for _, group := range []struct {
		status string
		ids    []string
	}{
		{"NEW", newIDs},
		{"UPDATED", updatedIDs},
	} {
		for _, id := range group.ids {
			if err := rep.Row(id, curAccns[id], group.status, genomicFiles[id]); err != nil {
				_ = rep.Close()
				return err
			}
		}
	}
	return rep.Close()
}
