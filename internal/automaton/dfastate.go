package automaton

import (
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/hashutil"
	"github.com/dekarrin/ldlf2dfa/internal/prop"
	"github.com/dekarrin/ldlf2dfa/internal/set"
)

// DFAState is an immutable set of NFA states, interpreted disjunctively:
// a DFAState accepts if any of its contained NFA states does (spec §3,
// §4.5). The empty DFAState is distinguished: it is absorbing (it has no
// contained NFA state, so every successor computation yields the empty
// set again) and non-final.
type DFAState struct {
	States *set.Set[NFAState]
}

// NewDFAState builds the canonical DFAState containing ss.
func NewDFAState(ss ...NFAState) DFAState {
	return DFAState{States: set.New(ss...)}
}

// Key returns a canonical string key for map storage and equality.
func (d DFAState) Key() string {
	return d.States.Key()
}

// Less implements the total order used to make DFA construction
// deterministic when states are otherwise tied (see set.Elem).
func (d DFAState) Less(o DFAState) bool {
	a, b := d.States.Elements(), o.States.Elements()
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i].Equal(b[i]) {
			continue
		}
		return a[i].Less(b[i])
	}
	return false
}

// Equal reports whether d and o contain the same NFA states.
func (d DFAState) Equal(o DFAState) bool {
	return d.States.Equal(o.States)
}

// Hash is a content hash derived from the contained NFA-state set.
func (d DFAState) Hash() uint64 {
	h := hashutil.Tag(0xD1)
	for _, s := range d.States.Elements() {
		h = hashutil.Combine(h, s.Hash())
	}
	return h
}

// IsEmpty reports whether d is the distinguished absorbing, non-final
// empty DFA state.
func (d DFAState) IsEmpty() bool {
	return d.States.IsEmpty()
}

func (d DFAState) String() string {
	elems := d.States.Elements()
	parts := make([]string, len(elems))
	for i, s := range elems {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// IsFinal reports whether d is an accepting DFA state: the disjunctive
// semantics of the subset construction mean d is final iff any NFA state
// it contains is final (spec §4.5).
func (d DFAState) IsFinal() (bool, error) {
	for _, s := range d.States.Elements() {
		final, err := s.IsFinal()
		if err != nil {
			return false, err
		}
		if final {
			return true, nil
		}
	}
	return false, nil
}

// NextState computes the deterministic successor of d under the concrete
// letter i: the union, across every NFA state in d, of that state's
// non-deterministic successors, folded into a single new DFAState (spec
// §4.5).
func (d DFAState) NextState(i prop.Interpretation) (DFAState, error) {
	var successors []NFAState
	for _, s := range d.States.Elements() {
		next, err := s.NextStates(i)
		if err != nil {
			return DFAState{}, err
		}
		successors = append(successors, next...)
	}
	return NewDFAState(successors...), nil
}
