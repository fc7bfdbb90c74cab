package automaton

import "github.com/dekarrin/ldlf2dfa/internal/prop"

// AllInterpretations enumerates the 2^|alphabet| propositional
// interpretations over alphabet, i.e. every subset of it, as the letter
// alphabet used by the subset-construction explorer (spec §4.6 step 3).
// The enumeration order is deterministic: bit i of the loop counter
// selects whether alphabet[i] is true, so identical alphabets always
// produce interpretations in the same order.
func AllInterpretations(alphabet []string) []prop.Interpretation {
	n := len(alphabet)
	total := 1 << uint(n)
	out := make([]prop.Interpretation, total)
	for mask := 0; mask < total; mask++ {
		var atoms []prop.Formula
		for bit := 0; bit < n; bit++ {
			if mask&(1<<uint(bit)) != 0 {
				atoms = append(atoms, prop.NewReal(alphabet[bit]))
			}
		}
		out[mask] = prop.NewInterpretation(atoms...)
	}
	return out
}

// Cube is a transition label: the set of alphabet indices that are true,
// in ascending order. Per spec §6, the core always produces the full
// positive-encoded assignment (every variable is decided); partial cubes
// are a compression optimization left to consumers such as a BDD-backed
// transition table.
type Cube []int

// Encode returns the Cube for interpretation i over alphabet: the sorted
// indices of the atoms in alphabet that are true under i. An empty Cube
// means every variable is false.
func Encode(alphabet []string, i prop.Interpretation) Cube {
	var cube Cube
	for idx, name := range alphabet {
		if i.Has(prop.NewReal(name).Key()) {
			cube = append(cube, idx)
		}
	}
	return cube
}
