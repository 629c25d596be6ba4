// internal/gid/gid_test.go
package gid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"RS_GCF_000005845.2", "G000005845"},
		{"GB_GCA_000005845.2", "G000005845"},
		{"GCF_000005845.2", "G000005845"},
		{"GCF_000005845", "G000005845"},
		{"U_73651", "U_73651"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Canonical(c.in), "Canonical(%q)", c.in)
	}
}

func TestCanonicalStableAcrossRepositories(t *testing.T) {
	assert.Equal(t, Canonical("RS_GCF_000005845.2"), Canonical("GCF_000005845.1"))
}

func TestStripRepository(t *testing.T) {
	assert.Equal(t, "GCF_000005845.2", StripRepository("RS_GCF_000005845.2"))
	assert.Equal(t, "GCA_000005845.2", StripRepository("GB_GCA_000005845.2"))
	assert.Equal(t, "GCF_000005845.2", StripRepository("GCF_000005845.2"))
}

func TestIsUser(t *testing.T) {
	assert.True(t, IsUser("U_73651"))
	assert.False(t, IsUser("GCF_000005845.1"))
}
