// Package reference implements a small-step LDLf evaluator used as an
// independent oracle for property-based testing (spec §8): "generate random
// LDLf formulas... generate random traces; check the DFA's acceptance
// against a reference small-step LDLf evaluator." It deliberately does not
// share any code with internal/delta or internal/automaton — it walks the
// formula and a concrete finite trace directly, position by position,
// rather than going through the symbolic delta/minimal-model machinery the
// translation core uses. A disagreement between the two implementations on
// the same (formula, trace) pair is exactly the kind of bug this package
// exists to catch.
package reference

import "github.com/dekarrin/ldlf2dfa/internal/ldlf"

// Letter is the set of atom names true at one trace position.
type Letter map[string]struct{}

// NewLetter builds a Letter containing exactly the given atom names.
func NewLetter(atoms ...string) Letter {
	l := make(Letter, len(atoms))
	for _, a := range atoms {
		l[a] = struct{}{}
	}
	return l
}

func (l Letter) has(name string) bool {
	if l == nil {
		return false
	}
	_, ok := l[name]
	return ok
}

// Accepts reports whether trace satisfies f under standard LDLf finite-trace
// semantics, evaluated directly rather than through delta expansion. f need
// not be pre-normalized; Accepts puts it in NNF itself.
func Accepts(f ldlf.Formula, trace []Letter) bool {
	return holds(ldlf.NNF(f), trace, 0)
}

// holds reports whether f is satisfied by trace starting at position pos.
// pos == len(trace) denotes the end of the trace.
func holds(f ldlf.Formula, trace []Letter, pos int) bool {
	switch v := f.(type) {
	case ldlf.AtomFormula:
		return pos < len(trace) && trace[pos].has(v.Name)
	case ldlf.NotFormula:
		atom, ok := v.Operand.(ldlf.AtomFormula)
		if !ok {
			panic("reference: Not does not directly wrap an atom; formula is not in NNF")
		}
		return !(pos < len(trace) && trace[pos].has(atom.Name))
	case ldlf.AndFormula:
		for _, o := range v.Operands.Elements() {
			if !holds(o, trace, pos) {
				return false
			}
		}
		return true
	case ldlf.OrFormula:
		for _, o := range v.Operands.Elements() {
			if holds(o, trace, pos) {
				return true
			}
		}
		return false
	case ldlf.DiamondFormula:
		for _, e := range reach(v.Regex, trace, pos) {
			if holds(v.Operand, trace, e) {
				return true
			}
		}
		return false
	case ldlf.BoxFormula:
		for _, e := range reach(v.Regex, trace, pos) {
			if !holds(v.Operand, trace, e) {
				return false
			}
		}
		return true
	default:
		switch f.Kind() {
		case ldlf.KindTrue:
			return true
		case ldlf.KindFalse:
			return false
		default:
			panic("reference: unhandled formula kind")
		}
	}
}

// reach returns the sorted, de-duplicated set of end positions reachable
// from pos by a path matching rho over trace.
func reach(rho ldlf.Regex, trace []Letter, pos int) []int {
	switch v := rho.(type) {
	case ldlf.TestRegex:
		if holds(v.Inner, trace, pos) {
			return []int{pos}
		}
		return nil
	case ldlf.UnionRegex:
		seen := map[int]struct{}{}
		var out []int
		for _, ri := range v.Operands {
			for _, e := range reach(ri, trace, pos) {
				if _, ok := seen[e]; !ok {
					seen[e] = struct{}{}
					out = append(out, e)
				}
			}
		}
		return sortedInts(out)
	case ldlf.SeqRegex:
		frontier := []int{pos}
		for _, ri := range v.Operands {
			seen := map[int]struct{}{}
			var next []int
			for _, s := range frontier {
				for _, e := range reach(ri, trace, s) {
					if _, ok := seen[e]; !ok {
						seen[e] = struct{}{}
						next = append(next, e)
					}
				}
			}
			frontier = next
			if len(frontier) == 0 {
				return nil
			}
		}
		return sortedInts(frontier)
	case ldlf.StarRegex:
		visited := map[int]struct{}{pos: {}}
		frontier := []int{pos}
		for len(frontier) > 0 {
			var next []int
			for _, s := range frontier {
				for _, e := range reach(v.Operand, trace, s) {
					if _, ok := visited[e]; !ok {
						visited[e] = struct{}{}
						next = append(next, e)
					}
				}
			}
			frontier = next
		}
		out := make([]int, 0, len(visited))
		for e := range visited {
			out = append(out, e)
		}
		return sortedInts(out)
	default:
		panic("reference: unhandled regex kind")
	}
}

func sortedInts(xs []int) []int {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}
