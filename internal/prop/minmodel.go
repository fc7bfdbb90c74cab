package prop

import (
	"sort"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/ldlferrors"
)

// QuotedModel is one minimal model: the set of quoted atoms that must be
// true (keyed by their AtomFormula.Key()) mapped to the LDLf subformula
// each quotes, i.e. the obligations that survive into the successor NFA
// state.
type QuotedModel map[string]ldlf.Formula

// Formulas returns the quoted LDLf formulas of the model, in no
// particular order (the caller, NFAState.NextStates, puts them into a
// canonical set itself).
func (m QuotedModel) Formulas() []ldlf.Formula {
	out := make([]ldlf.Formula, 0, len(m))
	for _, f := range m {
		out = append(out, f)
	}
	return out
}

// MinimalModels returns the set-minimal satisfying assignments of f
// restricted to its quoted atoms, per spec §4.3: a minimal model M is a
// set of quoted atoms such that f is satisfied when exactly the atoms in
// M are true (all others false), and no strict subset of M has this
// property.
//
// f must contain only constants, quoted atoms, And, and Or: every
// propositional formula produced by delta with a concrete interpretation
// has already resolved real atoms away, so a real atom reaching this
// function indicates a caller bug (InternalInvariant), not malformed
// input.
//
// Because delta never introduces negation at the propositional layer
// (see the package doc), every formula here is a monotone positive
// boolean formula over its atoms, which is what makes the direct
// recursive DNF-style computation below correct and terminating: minimal
// models of And(ops) are the set-minimal unions across one model chosen
// from each operand, and minimal models of Or(ops) are the set-minimal
// elements pooled across all operands' models.
func MinimalModels(f Formula) []QuotedModel {
	return models(f)
}

func models(f Formula) []QuotedModel {
	switch v := f.(type) {
	case trueFormula:
		return []QuotedModel{{}}
	case falseFormula:
		return nil
	case AtomFormula:
		if v.AtomKind == AtomReal {
			panic(ldlferrors.Internal("minimal_models: real atom %q reached minimal-model enumeration; real atoms must be resolved by the caller's interpretation before calling MinimalModels", v.Name))
		}
		return []QuotedModel{{v.Key(): v.Quoted}}
	case AndFormula:
		operandModels := make([][]QuotedModel, 0, v.Operands.Len())
		for _, o := range v.Operands.Elements() {
			operandModels = append(operandModels, models(o))
		}
		return combineAnd(operandModels)
	case OrFormula:
		var pooled []QuotedModel
		for _, o := range v.Operands.Elements() {
			pooled = append(pooled, models(o)...)
		}
		return minimalize(pooled)
	default:
		panic(ldlferrors.Internal("minimal_models: unhandled prop formula kind %T", f))
	}
}

// combineAnd computes the set-minimal unions of one model chosen from
// each operand's model list. If any operand is unsatisfiable (empty
// model list), the conjunction is unsatisfiable too.
func combineAnd(operandModels [][]QuotedModel) []QuotedModel {
	acc := []QuotedModel{{}}
	for _, opModels := range operandModels {
		if len(opModels) == 0 {
			return nil
		}
		next := make([]QuotedModel, 0, len(acc)*len(opModels))
		for _, a := range acc {
			for _, b := range opModels {
				next = append(next, union(a, b))
			}
		}
		acc = next
	}
	return minimalize(acc)
}

func union(a, b QuotedModel) QuotedModel {
	out := make(QuotedModel, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func subsetOf(a, b QuotedModel) bool {
	if len(a) > len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// minimalize removes any model that is a strict (or non-strict, for
// de-duplication) superset of another model in the list, keeping only
// the set-minimal elements.
func minimalize(ms []QuotedModel) []QuotedModel {
	if len(ms) == 0 {
		return nil
	}
	sort.Slice(ms, func(i, j int) bool { return len(ms[i]) < len(ms[j]) })

	var out []QuotedModel
	for _, m := range ms {
		dominated := false
		for _, kept := range out {
			if subsetOf(kept, m) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, m)
		}
	}
	return out
}
