// internal/misclassintegration/integration_test.go
package misclassintegration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taxoncheck/internal/misclass"
	"taxoncheck/internal/misclassapp"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const metadataHeader = "accession\tncbi_taxonomy\tgtdb_taxonomy\tgtdb_type_designation\tncbi_excluded_from_refseq\n"

func tax(species string) string {
	return "d__Bacteria;p__P;c__C;o__O;f__F;g__Foo;" + species
}

func TestClusterMethodSmoke(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	// G000000001 is the type strain of Foo bar and represents a cluster
	// holding G000000002. G000000003 claims Foo bar but sits in its own
	// cluster, so the clustering method must flag it.
	meta := metadataHeader +
		"GCF_000000001.1\t" + tax("s__Foo bar") + "\t" + tax("s__Foo bar") + "\ttype strain of species\t\n" +
		"GCF_000000002.1\t" + tax("s__Foo bar") + "\t" + tax("s__Foo bar") + "\t\t\n" +
		"GCF_000000003.1\t" + tax("s__Foo bar") + "\t" + tax("s__Foo quux") + "\t\t\n"
	metaFile := write(t, dir, "metadata.tsv", meta)

	clusters := "Representative genome\tNo. clustered genomes\tClustered genomes\tANI radius\n" +
		"GCF_000000001.1\t1\tGCF_000000002.1\t95.0\n" +
		"GCF_000000003.1\t0\t\t95.0\n"
	clusterFile := write(t, dir, "clusters.tsv", clusters)

	var out, errB bytes.Buffer
	code := misclassapp.Run([]string{
		"--metadata", metaFile,
		"--clusters", clusterFile,
		"--method", "cluster",
		"--quiet",
		outDir,
	}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d err=%s", code, errB.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, misclass.ClusterReportName))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header + 1 flagged genome, got %d lines:\n%s", len(lines), data)
	}
	if lines[1] != "G000000003\ts__Foo bar\tG000000003\tG000000001" {
		t.Fatalf("unexpected flagged row: %q", lines[1])
	}
}

func TestTypeStrainConflictAborts(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	// Two type strains of the same species in different clusters is a
	// fatal inconsistency.
	meta := metadataHeader +
		"GCF_000000001.1\t" + tax("s__Foo bar") + "\t" + tax("s__Foo bar") + "\ttype strain of species\t\n" +
		"GCF_000000003.1\t" + tax("s__Foo bar") + "\t" + tax("s__Foo quux") + "\ttype strain of species\t\n"
	metaFile := write(t, dir, "metadata.tsv", meta)

	clusters := "Representative genome\tNo. clustered genomes\tClustered genomes\tANI radius\n" +
		"GCF_000000001.1\t0\t\t95.0\n" +
		"GCF_000000003.1\t0\t\t95.0\n"
	clusterFile := write(t, dir, "clusters.tsv", clusters)

	var out, errB bytes.Buffer
	code := misclassapp.Run([]string{
		"--metadata", metaFile,
		"--clusters", clusterFile,
		"--method", "cluster",
		"--quiet",
		outDir,
	}, &out, &errB)
	if code != 1 {
		t.Fatalf("want exit 1 on type strain conflict, got %d err=%s", code, errB.String())
	}
	if !strings.Contains(errB.String(), "different clusters") {
		t.Fatalf("missing conflict diagnostic: %s", errB.String())
	}
}

func TestUsageErrorExitsTwo(t *testing.T) {
	var out, errB bytes.Buffer
	code := misclassapp.Run([]string{"--metadata", "meta.tsv"}, &out, &errB)
	if code != 2 {
		t.Fatalf("want exit 2 on usage error, got %d", code)
	}
}

func TestVersionExitsZero(t *testing.T) {
	var out, errB bytes.Buffer
	code := misclassapp.Run([]string{"--version"}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "taxoncheck-misclass version") {
		t.Fatalf("missing version banner: %q", out.String())
	}
}
