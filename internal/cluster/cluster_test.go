// internal/cluster/cluster_test.go
package cluster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClusterFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusters.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const clusterHeader = "Representative genome\tNo. clustered genomes\tClustered genomes\tANI radius\n"

func TestRead(t *testing.T) {
	path := writeClusterFile(t, clusterHeader+
		"RS_GCF_000001.1\t2\tGB_GCA_000002.1, GCA_000003.2\t95.0\n"+
		"GCF_000004.1\t0\t\t96.5\n")

	clusters, err := Read(path)
	require.NoError(t, err)

	require.Len(t, clusters.Members, 2)
	assert.Equal(t, []string{"G000002", "G000003"}, clusters.Members["G000001"])
	assert.Empty(t, clusters.Members["G000004"])
	assert.Equal(t, 95.0, clusters.Radius["G000001"])
	assert.Equal(t, 4, clusters.NumGenomes())
}

func TestNumGenomes(t *testing.T) {
	clusters := &Clusters{Members: map[string][]string{
		"R1": {"G1", "G2"},
		"R2": {},
	}}
	assert.Equal(t, 4, clusters.NumGenomes())
}

func TestReadMissingColumn(t *testing.T) {
	path := writeClusterFile(t, "Representative genome\tANI radius\nG1\t95.0\n")
	_, err := Read(path)
	require.Error(t, err)
}

func TestReadCountMismatch(t *testing.T) {
	path := writeClusterFile(t, clusterHeader+"G1\t2\tG2\t95.0\n")
	_, err := Read(path)
	require.Error(t, err)
}

// Every genome in the cluster file resolves to a representative, and a
// representative resolves to itself.
func TestBuildIndexTotality(t *testing.T) {
	clusters := &Clusters{Members: map[string][]string{
		"R1": {"G1", "G2"},
		"R2": {"G3"},
	}}
	idx := clusters.BuildIndex()

	for id, want := range map[string]string{
		"R1": "R1", "G1": "R1", "G2": "R1",
		"R2": "R2", "G3": "R2",
	} {
		rid, ok := idx.Representative(id)
		require.True(t, ok, "lookup %s", id)
		assert.Equal(t, want, rid)
	}

	_, ok := idx.Representative("G99")
	assert.False(t, ok, "unclustered genome must be absent, not defaulted")
}
