// internal/newgenomesintegration/integration_test.go
package newgenomesintegration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taxoncheck/internal/newgenomes"
	"taxoncheck/internal/newgenomesapp"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewAndUpdatedSmoke(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	// Previous release: two assemblies. Current release bumps the first
	// assembly version (UPDATED), swaps the second to its identical
	// GenBank record (unchanged), and adds a third (NEW).
	prev := "accession\tncbi_taxonomy\n" +
		"RS_GCF_000000001.1\tx\n" +
		"RS_GCF_000000002.1\tx\n"
	prevFile := write(t, dir, "prev_metadata.tsv", prev)

	cur := "accession\tncbi_taxonomy\n" +
		"RS_GCF_000000001.2\tx\n" +
		"GB_GCA_000000002.1\tx\n" +
		"RS_GCF_000000003.1\tx\n"
	curFile := write(t, dir, "metadata.tsv", cur)

	summary := "#   See ftp site for assembly summary documentation\n" +
		"# assembly_accession\tgbrs_paired_asm\tpaired_asm_comp\n" +
		"GCA_000000002.1\tGCF_000000002.1\tidentical\n"
	summaryFile := write(t, dir, "assembly_summary.txt", summary)

	paths := "RS_GCF_000000001.2\t" + filepath.Join(dir, "GCF_000000001.2") + "\tRS_GCF_000000001.2\n" +
		"GB_GCA_000000002.1\t" + filepath.Join(dir, "GCA_000000002.1") + "\tGB_GCA_000000002.1\n" +
		"RS_GCF_000000003.1\t" + filepath.Join(dir, "GCF_000000003.1") + "\tRS_GCF_000000003.1\n"
	pathsFile := write(t, dir, "genome_paths.tsv", paths)

	var out, errB bytes.Buffer
	code := newgenomesapp.Run([]string{
		"--metadata", curFile,
		"--prev-metadata", prevFile,
		"--genome-paths", pathsFile,
		"--assembly-summary", summaryFile,
		"--quiet",
		outDir,
	}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d err=%s", code, errB.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, newgenomes.ReportName))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + NEW + UPDATED, got %d lines:\n%s", len(lines), data)
	}

	newRow := strings.Split(lines[1], "\t")
	if newRow[0] != "G000000003" || newRow[2] != "NEW" {
		t.Fatalf("unexpected NEW row: %q", lines[1])
	}
	if !strings.HasSuffix(newRow[3], filepath.Join("GCF_000000003.1", "GCF_000000003.1_genomic.fna")) {
		t.Fatalf("unexpected genomic file: %q", newRow[3])
	}

	updRow := strings.Split(lines[2], "\t")
	if updRow[0] != "G000000001" || updRow[1] != "RS_GCF_000000001.2" || updRow[2] != "UPDATED" {
		t.Fatalf("unexpected UPDATED row: %q", lines[2])
	}
}

func TestMissingPrevMetadataExitsThree(t *testing.T) {
	dir := t.TempDir()
	curFile := write(t, dir, "metadata.tsv", "accession\n")
	summaryFile := write(t, dir, "assembly_summary.txt", "# assembly_accession\tgbrs_paired_asm\tpaired_asm_comp\n")
	pathsFile := write(t, dir, "genome_paths.tsv", "")

	var out, errB bytes.Buffer
	code := newgenomesapp.Run([]string{
		"--metadata", curFile,
		"--prev-metadata", filepath.Join(dir, "nope.tsv"),
		"--genome-paths", pathsFile,
		"--assembly-summary", summaryFile,
		"--quiet",
		outDir(dir),
	}, &out, &errB)
	if code != 3 {
		t.Fatalf("want exit 3 for missing input file, got %d", code)
	}
}

func outDir(dir string) string { return filepath.Join(dir, "out") }
