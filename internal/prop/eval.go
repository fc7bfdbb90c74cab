package prop

import "github.com/dekarrin/ldlf2dfa/internal/ldlferrors"

// Interpretation is a set of propositional atoms treated as true; any
// atom (real or quoted) not present in the set is treated as false. The
// keys are Formula.Key() values so that real atoms and quoted atoms never
// collide.
type Interpretation map[string]struct{}

// NewInterpretation builds an Interpretation containing exactly the given
// atoms.
func NewInterpretation(atoms ...Formula) Interpretation {
	i := make(Interpretation, len(atoms))
	for _, a := range atoms {
		i[a.Key()] = struct{}{}
	}
	return i
}

// Has reports whether the given formula's key is true under i. A nil
// Interpretation treats everything as false, matching the "empty
// interpretation" used by NFAState.IsFinal.
func (i Interpretation) Has(key string) bool {
	if i == nil {
		return false
	}
	_, ok := i[key]
	return ok
}

// Eval evaluates f under interpretation i. Eval is only meaningful once
// all quoted atoms have been resolved by the caller's choice of
// interpretation (or are intentionally left false, as in is_final); prop
// itself does not distinguish the two atom kinds when evaluating, it just
// looks up each atom's key.
func Eval(f Formula, i Interpretation) bool {
	switch v := f.(type) {
	case trueFormula:
		return true
	case falseFormula:
		return false
	case AtomFormula:
		return i.Has(v.Key())
	case AndFormula:
		for _, o := range v.Operands.Elements() {
			if !Eval(o, i) {
				return false
			}
		}
		return true
	case OrFormula:
		for _, o := range v.Operands.Elements() {
			if Eval(o, i) {
				return true
			}
		}
		return false
	default:
		panic(ldlferrors.Internal("eval: unhandled prop formula kind %T", f))
	}
}
