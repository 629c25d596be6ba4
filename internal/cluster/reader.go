// internal/cluster/reader.go
package cluster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"taxoncheck/internal/gid"
)

// Header columns required in a cluster file. Column order is not fixed;
// the header row decides.
const (
	colRepresentative = "Representative genome"
	colNumClustered   = "No. clustered genomes"
	colClustered      = "Clustered genomes"
	colANIRadius      = "ANI radius"
)

// Read parses a tab-delimited cluster file into Clusters. Each row names a
// representative genome, the comma-separated genomes clustered with it, and
// the ANI radius of the cluster. Genome IDs are canonicalized.
func Read(path string) (*Clusters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cluster file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read cluster file: %w", err)
		}
		return nil, fmt.Errorf("cluster file %s: missing header row", path)
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r\n"), "\t")
	cols := map[string]int{}
	for i, h := range header {
		cols[h] = i
	}
	for _, want := range []string{colRepresentative, colNumClustered, colClustered, colANIRadius} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("cluster file %s: missing column %q", path, want)
		}
	}

	clusters := &Clusters{
		Members: make(map[string][]string),
		Radius:  make(map[string]float64),
	}

	lineNum := 1
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < len(header) {
			return nil, fmt.Errorf("cluster file %s: line %d: expected %d fields, found %d",
				path, lineNum, len(header), len(fields))
		}

		rid := gid.Canonical(fields[cols[colRepresentative]])

		numClustered, err := strconv.Atoi(fields[cols[colNumClustered]])
		if err != nil {
			return nil, fmt.Errorf("cluster file %s: line %d: bad clustered-genome count: %w", path, lineNum, err)
		}

		var members []string
		if numClustered > 0 {
			for _, cid := range strings.Split(fields[cols[colClustered]], ",") {
				cid = strings.TrimSpace(cid)
				if cid != "" {
					members = append(members, gid.Canonical(cid))
				}
			}
		}
		if len(members) != numClustered {
			return nil, fmt.Errorf("cluster file %s: line %d: count column says %d genomes, row lists %d",
				path, lineNum, numClustered, len(members))
		}

		radius, err := strconv.ParseFloat(fields[cols[colANIRadius]], 64)
		if err != nil {
			return nil, fmt.Errorf("cluster file %s: line %d: bad ANI radius: %w", path, lineNum, err)
		}

		clusters.Members[rid] = members
		clusters.Radius[rid] = radius
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read cluster file: %w", err)
	}
	return clusters, nil
}
