// Package hashutil provides the hash-combining helper used by the LDLf
// formula, propositional formula, and automaton-state types to compute
// their cached content hashes, in the spirit of the combine-on-construct
// hashing used throughout internal/ictiobus's grammar and automaton types.
package hashutil

// Combine folds h into seed using a variant of the FNV/boost-style mixing
// function. Order matters: combining the same set of hashes in a
// different order produces a different result, so callers that need an
// order-independent hash (e.g. for a canonically sorted child list) must
// sort before combining.
func Combine(seed, h uint64) uint64 {
	seed ^= h + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2)
	return seed
}

// Tag seeds a hash computation with a node-kind discriminator so that,
// e.g., an empty And and an empty Or never collide.
func Tag(kind int) uint64 {
	return Combine(0, uint64(kind)+1)
}

// String hashes a string into a uint64 using FNV-1a, for leaf values such
// as atom names.
func String(s string) uint64 {
	var h uint64 = 1469598103934665603 // FNV offset basis
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211 // FNV prime
	}
	return h
}
