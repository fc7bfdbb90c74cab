package ldlf

import "github.com/dekarrin/ldlf2dfa/internal/ldlferrors"

// NNF rewrites f into an equivalent formula in negation-normal form: Not
// appears only directly above an atomic proposition. The transform is
// total (see package-level contract in spec §4.1); it never fails for a
// well-formed input, but panics with an ldlferrors Internal error if it
// encounters a Formula or Regex variant outside the closed set defined
// in this package, which would indicate a bug rather than malformed
// caller input.
func NNF(f Formula) Formula {
	switch v := f.(type) {
	case trueFormula, falseFormula, AtomFormula:
		return f
	case NotFormula:
		return negate(v.Operand)
	case AndFormula:
		return NewAnd(nnfAll(v.Operands.Elements())...)
	case OrFormula:
		return NewOr(nnfAll(v.Operands.Elements())...)
	case DiamondFormula:
		return NewDiamond(nnfRegex(v.Regex), NNF(v.Operand))
	case BoxFormula:
		return NewBox(nnfRegex(v.Regex), NNF(v.Operand))
	default:
		panic(ldlferrors.Internal("nnf: unhandled formula kind %T", f))
	}
}

func nnfAll(fs []Formula) []Formula {
	out := make([]Formula, len(fs))
	for i, f := range fs {
		out[i] = NNF(f)
	}
	return out
}

// negate returns NNF(¬f), implementing the De Morgan / modal-duality
// rewrite rules in one pass so that double negation, De Morgan, and
// <ρ>φ ↔ ¬[ρ]¬φ / [ρ]φ ↔ ¬<ρ>¬φ are all applied together rather than
// built up through repeated wrapping.
func negate(f Formula) Formula {
	switch v := f.(type) {
	case trueFormula:
		return False
	case falseFormula:
		return True
	case AtomFormula:
		return NewNot(v)
	case NotFormula:
		return NNF(v.Operand)
	case AndFormula:
		return NewOr(negateAll(v.Operands.Elements())...)
	case OrFormula:
		return NewAnd(negateAll(v.Operands.Elements())...)
	case DiamondFormula:
		return NewBox(nnfRegex(v.Regex), negate(v.Operand))
	case BoxFormula:
		return NewDiamond(nnfRegex(v.Regex), negate(v.Operand))
	default:
		panic(ldlferrors.Internal("nnf: unhandled formula kind %T in negate", f))
	}
}

func negateAll(fs []Formula) []Formula {
	out := make([]Formula, len(fs))
	for i, f := range fs {
		out[i] = negate(f)
	}
	return out
}

// nnfRegex recurses NNF into the propositional tests embedded in a
// regular expression. Negation is never introduced on the regular
// expression structure itself, only on the LDLf formulas it tests.
func nnfRegex(r Regex) Regex {
	switch v := r.(type) {
	case TestRegex:
		// Inner was already validated propositional at construction; NNF
		// of a propositional formula stays propositional (NNF never
		// introduces a Diamond/Box), so re-wrapping with NewTest cannot
		// fail here.
		t, err := NewTest(NNF(v.Inner))
		if err != nil {
			panic(ldlferrors.Internal("nnf: normalized test formula unexpectedly non-propositional: %v", err))
		}
		return t
	case UnionRegex:
		return NewUnion(nnfRegexAll(v.Operands)...)
	case SeqRegex:
		return NewSeq(nnfRegexAll(v.Operands)...)
	case StarRegex:
		return NewStar(nnfRegex(v.Operand))
	default:
		panic(ldlferrors.Internal("nnf: unhandled regex kind %T", r))
	}
}

func nnfRegexAll(rs []Regex) []Regex {
	out := make([]Regex, len(rs))
	for i, r := range rs {
		out[i] = nnfRegex(r)
	}
	return out
}
