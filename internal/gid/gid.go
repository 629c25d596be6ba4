// internal/gid/gid.go
package gid

import "strings"

// Canonical normalizes a genome accession so the same assembly compares
// equal across repository prefixes (RS_/GB_, GCF/GCA) and assembly
// versions. User genomes (U_*) have no accession structure and pass
// through as-is.
//
//	RS_GCF_000005845.2 -> G000005845
//	GB_GCA_000005845.2 -> G000005845
//	U_73651            -> U_73651
func Canonical(accn string) string {
	if strings.HasPrefix(accn, "U") {
		return accn
	}

	a := strings.TrimPrefix(accn, "RS_")
	a = strings.TrimPrefix(a, "GB_")
	a = strings.Replace(a, "GCF_", "G", 1)
	a = strings.Replace(a, "GCA_", "G", 1)
	if i := strings.IndexByte(a, '.'); i >= 0 {
		a = a[:i]
	}
	return a
}

// StripRepository removes only the repository prefix, keeping the assembly
// version. Used when comparing full accessions across releases.
func StripRepository(accn string) string {
	a := strings.TrimPrefix(accn, "RS_")
	return strings.TrimPrefix(a, "GB_")
}

// IsUser reports whether the ID denotes a user genome rather than an
// NCBI assembly.
func IsUser(id string) bool {
	return strings.HasPrefix(id, "U")
}
