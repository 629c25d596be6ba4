// internal/taxon/taxon.go
package taxon

import "strings"

// UnassignedSpecies is the sentinel used when a taxonomy carries no species
// assignment for a genome.
const UnassignedSpecies = "s__"

// SpeciesIndex is the rank index of the species label in a 7-rank
// Greengenes-style taxonomy (domain..species).
const SpeciesIndex = 6

// GenericName returns the genus portion of a species binomial,
// e.g. "s__Escherichia coli" -> "Escherichia".
func GenericName(species string) string {
	name := strings.TrimPrefix(species, "s__")
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// SpecificEpithet returns the second word of a species binomial,
// e.g. "s__Escherichia coli" -> "coli". Labels without a full binomial
// yield the empty string.
func SpecificEpithet(species string) string {
	name := strings.TrimPrefix(species, "s__")
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// LongestCommonPrefix returns the longest common prefix of two strings.
func LongestCommonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// SameEpithet tests whether two specific epithets denote the same species
// name. Beyond exact equality, a short suffix difference is accepted since
// the Latin ending of an epithet changes with the grammatical gender of the
// genus (e.g. "aureus" vs. "aurea"). The cutoff of three characters is an
// approximation, not a Latin parser.
func SameEpithet(epithet1, epithet2 string) bool {
	if epithet1 == epithet2 {
		return true
	}

	minLen := len(epithet1)
	if len(epithet2) < minLen {
		minLen = len(epithet2)
	}
	return len(LongestCommonPrefix(epithet1, epithet2)) >= minLen-3
}

// DefaultForbiddenEpithets returns the specific epithets that are reserved
// as placeholders for uncertain classifications and must never anchor a
// species name or count as a misclassification candidate.
func DefaultForbiddenEpithets() map[string]bool {
	return map[string]bool{"cyanobacterium": true}
}
