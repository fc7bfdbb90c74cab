package automaton

import "fmt"

// Snapshot is the flattened, field-exported view of a DFA, used by
// internal/serialize and internal/store to persist a compiled automaton and
// restore it later without re-running subset construction. It carries the
// same information DFA's accessors expose, nothing derived from NFAState/
// DFAState internals (those stay private to the explorer).
type Snapshot struct {
	NumVariables int
	Alphabet     []string
	NumStates    int
	Initial      int
	Final        []int // ascending state indices that are accepting
	Transitions  []Trans
}

// Snapshot flattens d into its serializable form.
func (d *DFA) Snapshot() Snapshot {
	var final []int
	for i := 1; i <= len(d.states); i++ {
		if d.final[i] {
			final = append(final, i)
		}
	}
	return Snapshot{
		NumVariables: d.numVariables,
		Alphabet:     d.Alphabet(),
		NumStates:    d.NumStates(),
		Initial:      d.initial,
		Final:        final,
		Transitions:  d.Transitions(),
	}
}

// FromSnapshot rebuilds a DFA from a previously captured Snapshot, for
// internal/store's cache-hit path. It is the only way to construct a DFA
// other than ToDFA, and does not re-verify that the transitions are actually
// a valid subset-construction result for any formula; callers are trusted to
// only feed back a Snapshot this package itself produced. Snapshot does not
// carry NFAState/DFAState internals, so a reconstructed DFA's State method
// returns empty placeholders; everything index-based (IsFinal, Step,
// Accepts, Transitions, TransitionsFrom) is fully restored.
func FromSnapshot(s Snapshot) (*DFA, error) {
	if s.NumStates < 0 {
		return nil, fmt.Errorf("automaton: snapshot has negative state count %d", s.NumStates)
	}
	if s.Initial < 1 || s.Initial > s.NumStates {
		return nil, fmt.Errorf("automaton: snapshot initial state %d out of range [1,%d]", s.Initial, s.NumStates)
	}

	d := &DFA{
		numVariables: s.NumVariables,
		alphabet:     append([]string(nil), s.Alphabet...),
		states:       make([]DFAState, s.NumStates),
		initial:      s.Initial,
		final:        make(map[int]bool, len(s.Final)),
		transitions:  append([]Trans(nil), s.Transitions...),
		bySrc:        make(map[int][]Trans),
	}
	for _, idx := range s.Final {
		if idx < 1 || idx > s.NumStates {
			return nil, fmt.Errorf("automaton: snapshot final state %d out of range [1,%d]", idx, s.NumStates)
		}
		d.final[idx] = true
	}
	for _, t := range d.transitions {
		d.bySrc[t.Src] = append(d.bySrc[t.Src], t)
	}
	return d, nil
}
