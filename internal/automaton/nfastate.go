// Package automaton implements the canonical NFA-state and DFA-state
// representations (spec §3, §4.4, §4.5) and the subset-construction
// explorer that folds them into a DFA (§4.6). It sits above
// internal/ldlf, internal/prop, and internal/delta: it is the only
// package that ties the delta expansion and minimal-model enumeration
// together into the per-step successor computation the translation
// needs.
package automaton

import (
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/delta"
	"github.com/dekarrin/ldlf2dfa/internal/hashutil"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/prop"
	"github.com/dekarrin/ldlf2dfa/internal/set"
)

// NFAState is an immutable set of LDLf formulas, interpreted
// conjunctively: all of them must still be satisfied along the remaining
// trace. The empty NFAState stands for ⊤.
type NFAState struct {
	Formulas *set.Set[ldlf.Formula]
}

// NewNFAState builds the canonical NFAState containing fs (duplicates
// removed, order normalized). A literal True conjunct is dropped: per
// spec §3, the empty formula set already represents ⊤, so retaining an
// explicit True element would let two formula sets that mean the same
// thing ({True} and {}) canonicalize to different NFA states, which
// would in turn make the subset construction discover spurious
// duplicate states (see e.g. scenario S1: to_dfa(True) must have exactly
// one reachable state).
func NewNFAState(fs ...ldlf.Formula) NFAState {
	filtered := make([]ldlf.Formula, 0, len(fs))
	for _, f := range fs {
		if f.Equal(ldlf.True) {
			continue
		}
		filtered = append(filtered, f)
	}
	return NFAState{Formulas: set.New(filtered...)}
}

// Key returns a canonical string key suitable for map storage and
// equality/membership checks.
func (s NFAState) Key() string {
	// braces keep the empty NFAState's key non-empty, so a DFAState holding
	// it never shares its key with the empty DFAState.
	return "{" + s.Formulas.Key() + "}"
}

// Less implements the total order on NFA states used to canonicalize
// DFA-state contents and to make DFA construction deterministic: states
// are compared first by arity, then element-wise by the formula order.
func (s NFAState) Less(o NFAState) bool {
	a, b := s.Formulas.Elements(), o.Formulas.Elements()
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

// Equal reports whether s and o contain the same formulas.
func (s NFAState) Equal(o NFAState) bool {
	return s.Formulas.Equal(o.Formulas)
}

// Hash is a content hash derived from the formula set, independent of
// insertion order.
func (s NFAState) Hash() uint64 {
	h := hashutil.Tag(0xA1)
	for _, f := range s.Formulas.Elements() {
		h = hashutil.Combine(h, f.Hash())
	}
	return h
}

func (s NFAState) String() string {
	elems := s.Formulas.Elements()
	parts := make([]string, len(elems))
	for i, f := range elems {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// IsFinal reports whether s is an accepting NFA state: the conjunction of
// δ(φ, ε) over every formula φ in s evaluates to true under the empty
// interpretation (spec §4.4). Any quoted atom left over from an
// unresolved Star obligation is, by construction, treated as false under
// the empty interpretation — exactly the right semantics, since an
// obligation deferred past end-of-trace can never be discharged.
func (s NFAState) IsFinal() (bool, error) {
	parts := make([]prop.Formula, 0, s.Formulas.Len())
	for _, f := range s.Formulas.Elements() {
		d, err := delta.AtEnd(f)
		if err != nil {
			return false, err
		}
		parts = append(parts, d)
	}
	conjunction := prop.And(parts...)
	return prop.Eval(conjunction, nil), nil
}

// NextStates computes the successor NFA states of s given a concrete
// letter i (spec §4.4): it forms the conjunction of δ(φ, i) across every
// formula φ in s, enumerates that conjunction's minimal models over
// quoted atoms, and returns one NFAState per model, each containing the
// unquoted obligations of that model.
func (s NFAState) NextStates(i prop.Interpretation) ([]NFAState, error) {
	parts := make([]prop.Formula, 0, s.Formulas.Len())
	for _, f := range s.Formulas.Elements() {
		d, err := delta.Of(f, i)
		if err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}
	conjunction := prop.And(parts...)

	models := prop.MinimalModels(conjunction)
	out := make([]NFAState, 0, len(models))
	for _, m := range models {
		out = append(out, NewNFAState(m.Formulas()...))
	}
	return out, nil
}

// Transition is one (letter, successors) pair as returned by
// NextTransitions.
type Transition struct {
	Letter     prop.Interpretation
	Successors []NFAState
}

// NextTransitions enumerates next_states(s, i) for every interpretation i
// over alphabet. It exists only for debug/inspection (spec §4.4): DFA
// construction iterates interpretations directly rather than going
// through this helper.
func (s NFAState) NextTransitions(alphabet []string) ([]Transition, error) {
	var out []Transition
	for _, i := range AllInterpretations(alphabet) {
		successors, err := s.NextStates(i)
		if err != nil {
			return nil, err
		}
		out = append(out, Transition{Letter: i, Successors: successors})
	}
	return out, nil
}
