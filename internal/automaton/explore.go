package automaton

import (
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/ldlferrors"
)

// ToDFA is the subset-construction explorer (spec §4.6): the sole entry
// point of the translation core. It normalizes formula to NNF, seeds the
// initial DFA state, fixes a deterministic alphabet order, and performs a
// breadth-first exploration of reachable DFA states until fixpoint,
// assigning each newly discovered state the next integer index and
// recording one transition per (state, interpretation) pair.
//
// preferredOrder, if non-empty, fixes the relative order of any atoms it
// names instead of the order ldlf.FindAtoms discovers them in: atoms from
// preferredOrder that appear in formula come first, in that order, and any
// remaining atoms formula uses but preferredOrder does not name are
// appended afterward in FindAtoms' discovery order. preferredOrder may
// name atoms that do not appear in formula at all; those are ignored.
// Omitting preferredOrder (or passing none) keeps FindAtoms' own order.
//
// The returned error is non-nil only if formula violates a
// well-formedness precondition (ldlferrors.KindMalformed) discovered
// during delta expansion, or if the core detects a broken internal
// invariant (ldlferrors.KindInternal, recovered from a panic at this
// boundary — see ldlferrors.Recover). Termination is guaranteed because
// the set of reachable canonical DFA states is finite: it is bounded by
// subsets of the subformula closure of the NNF'd input (spec §4.6 step
// 6).
func ToDFA(formula ldlf.Formula, preferredOrder ...string) (dfa *DFA, err error) {
	defer ldlferrors.Recover(&err)

	formulaNNF := ldlf.NNF(formula)
	initialState := NewDFAState(NewNFAState(formulaNNF))

	alphabet := orderAlphabet(ldlf.FindAtoms(formulaNNF), preferredOrder)
	interpretations := AllInterpretations(alphabet)

	d := &DFA{
		numVariables: len(alphabet),
		alphabet:     alphabet,
		initial:      1,
		final:        map[int]bool{},
		bySrc:        map[int][]Trans{},
	}

	discovered := map[string]int{}
	addState := func(s DFAState) (int, error) {
		if idx, ok := discovered[s.Key()]; ok {
			return idx, nil
		}
		idx := len(d.states) + 1
		discovered[s.Key()] = idx
		d.states = append(d.states, s)
		final, err := s.IsFinal()
		if err != nil {
			return 0, err
		}
		if final {
			d.final[idx] = true
		}
		return idx, nil
	}

	initialIndex, err := addState(initialState)
	if err != nil {
		return nil, err
	}
	if initialIndex != d.initial {
		panic(ldlferrors.Internal("to_dfa: initial state was not assigned index 1"))
	}

	queue := []int{initialIndex}
	for len(queue) > 0 {
		srcIndex := queue[0]
		queue = queue[1:]
		src := d.states[srcIndex-1]

		for _, i := range interpretations {
			next, err := src.NextState(i)
			if err != nil {
				return nil, err
			}

			before := len(d.states)
			dstIndex, err := addState(next)
			if err != nil {
				return nil, err
			}
			if dstIndex > before {
				queue = append(queue, dstIndex)
			}

			cube := Encode(alphabet, i)
			t := Trans{Src: srcIndex, Cube: cube, Dst: dstIndex}
			d.transitions = append(d.transitions, t)
			d.bySrc[srcIndex] = append(d.bySrc[srcIndex], t)
		}
	}

	return d, nil
}

// orderAlphabet reorders discovered (already sorted by ldlf.FindAtoms) so
// that any atoms named in preferredOrder come first, in that order,
// followed by the rest of discovered in its existing order. Names in
// preferredOrder that aren't in discovered are dropped.
func orderAlphabet(discovered []string, preferredOrder []string) []string {
	if len(preferredOrder) == 0 {
		return discovered
	}

	inDiscovered := make(map[string]bool, len(discovered))
	for _, name := range discovered {
		inDiscovered[name] = true
	}

	ordered := make([]string, 0, len(discovered))
	placed := make(map[string]bool, len(discovered))
	for _, name := range preferredOrder {
		if inDiscovered[name] && !placed[name] {
			ordered = append(ordered, name)
			placed[name] = true
		}
	}
	for _, name := range discovered {
		if !placed[name] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
