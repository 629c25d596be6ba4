// internal/taxon/reader.go
package taxon

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"taxoncheck/internal/gid"
)

// ReadTaxonomy reads a tab-delimited taxonomy file mapping genome ID to a
// semicolon-separated 7-rank taxonomy string. Genome IDs are canonicalized
// so lookups are stable across accession prefix/version variants.
func ReadTaxonomy(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taxonomy file: %w", err)
	}
	defer f.Close()

	taxonomy := make(map[string][]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("taxonomy file %s: line %d: expected 2 tab-delimited fields", path, lineNum)
		}

		taxa := strings.Split(fields[1], ";")
		for i := range taxa {
			taxa[i] = strings.TrimSpace(taxa[i])
		}
		if len(taxa) != SpeciesIndex+1 {
			return nil, fmt.Errorf("taxonomy file %s: line %d: expected %d ranks, found %d",
				path, lineNum, SpeciesIndex+1, len(taxa))
		}

		taxonomy[gid.Canonical(fields[0])] = taxa
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return taxonomy, nil
}
