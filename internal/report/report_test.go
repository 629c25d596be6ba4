// internal/report/report_test.go
package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	w, err := Create(path, "Genome ID", "NCBI species")
	require.NoError(t, err)
	require.NoError(t, w.Row("G1", "s__Foo bar"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Genome ID\tNCBI species\nG1\ts__Foo bar\n", string(data))
}

func TestWriterRewritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	w, err := Create(path, "Genome ID")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Genome ID\n", string(data))
}

func TestWriterFieldCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	w, err := Create(path, "A", "B")
	require.NoError(t, err)
	defer w.Close()

	require.Error(t, w.Row("only one"))
}
