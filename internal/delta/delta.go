// Package delta implements the symbolic one-step unfolding of an LDLf
// formula (spec §4.2): the bridge between the LDLf layer (internal/ldlf)
// and the propositional layer it unfolds into (internal/prop). It is
// kept as its own package, rather than folded into either side, because
// it is the one component that must import both without creating an
// import cycle — internal/prop already imports internal/ldlf to quote
// subformulas as opaque atoms.
package delta

import (
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/ldlferrors"
	"github.com/dekarrin/ldlf2dfa/internal/prop"
)

// Of computes δ(f, i): the symbolic successor of f given the concrete
// letter i (a set of atom names true at this step). f must already be in
// negation-normal form.
func Of(f ldlf.Formula, i prop.Interpretation) (prop.Formula, error) {
	return unfold(f, i, false)
}

// AtEnd computes δ(f, ε): the symbolic successor of f at end-of-trace.
// f must already be in negation-normal form.
func AtEnd(f ldlf.Formula) (prop.Formula, error) {
	return unfold(f, nil, true)
}

// unfold is the shared recursive implementation of Of and AtEnd; atEnd
// selects ε mode regardless of what i holds (i is ignored when atEnd is
// true).
func unfold(f ldlf.Formula, i prop.Interpretation, atEnd bool) (prop.Formula, error) {
	switch f.Kind() {
	case ldlf.KindTrue:
		return prop.True, nil
	case ldlf.KindFalse:
		return prop.False, nil
	case ldlf.KindAtom:
		atom := f.(ldlf.AtomFormula)
		if atEnd {
			return prop.False, nil // δ(p, ε) = False
		}
		if i.Has(atomKey(atom.Name)) {
			return prop.True, nil
		}
		return prop.False, nil
	case ldlf.KindNot:
		not := f.(ldlf.NotFormula)
		atom, ok := not.Operand.(ldlf.AtomFormula)
		if !ok {
			return nil, ldlferrors.Malformed("delta: Not does not directly wrap an atom (formula is not in NNF): %s", not)
		}
		if atEnd {
			return prop.True, nil // δ(¬p, ε) = True
		}
		if i.Has(atomKey(atom.Name)) {
			return prop.False, nil
		}
		return prop.True, nil
	case ldlf.KindAnd:
		and := f.(ldlf.AndFormula)
		parts, err := unfoldAll(and.Operands.Elements(), i, atEnd)
		if err != nil {
			return nil, err
		}
		return prop.And(parts...), nil
	case ldlf.KindOr:
		or := f.(ldlf.OrFormula)
		parts, err := unfoldAll(or.Operands.Elements(), i, atEnd)
		if err != nil {
			return nil, err
		}
		return prop.Or(parts...), nil
	case ldlf.KindDiamond:
		d := f.(ldlf.DiamondFormula)
		return unfoldDiamond(d.Regex, d.Operand, i, atEnd)
	case ldlf.KindBox:
		b := f.(ldlf.BoxFormula)
		return unfoldBox(b.Regex, b.Operand, i, atEnd)
	default:
		return nil, ldlferrors.Internal("delta: unhandled formula kind %v", f.Kind())
	}
}

func unfoldAll(fs []ldlf.Formula, i prop.Interpretation, atEnd bool) ([]prop.Formula, error) {
	out := make([]prop.Formula, 0, len(fs))
	for _, f := range fs {
		d, err := unfold(f, i, atEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// unfoldDiamond computes δ(<ρ>φ, x) for x = i or ε (atEnd).
func unfoldDiamond(rho ldlf.Regex, phi ldlf.Formula, i prop.Interpretation, atEnd bool) (prop.Formula, error) {
	switch r := rho.(type) {
	case ldlf.TestRegex:
		// δ(<ψ?>φ, x) = δ(ψ, x) ∧ δ(φ, x)
		dPsi, err := unfold(r.Inner, i, atEnd)
		if err != nil {
			return nil, err
		}
		dPhi, err := unfold(phi, i, atEnd)
		if err != nil {
			return nil, err
		}
		return prop.And(dPsi, dPhi), nil
	case ldlf.SeqRegex:
		// δ(<Seq[ρ1,ρ2,...,ρn]>φ, x) = δ(<ρ1><ρ2>...<ρn>φ, x), built by
		// folding the sequence into nested diamonds one head at a time.
		head, restPhi := splitSeqDiamond(r, phi)
		return unfoldDiamond(head, restPhi, i, atEnd)
	case ldlf.UnionRegex:
		// δ(<Union{ρi}>φ, x) = ⋁ δ(<ρi>φ, x)
		parts := make([]prop.Formula, 0, len(r.Operands))
		for _, ri := range r.Operands {
			d, err := unfoldDiamond(ri, phi, i, atEnd)
			if err != nil {
				return nil, err
			}
			parts = append(parts, d)
		}
		return prop.Or(parts...), nil
	case ldlf.StarRegex:
		// δ(<Star ρ>φ, x) = δ(φ, x) ∨ ⟦<ρ><Star ρ>φ⟧
		//
		// The recursive occurrence <ρ><Star ρ>φ is always a Diamond
		// formula (never propositional), so per the loop-guard rule it
		// is quoted rather than unfolded further: unfolding it directly
		// would recurse through the very same Star regex without ever
		// making structural progress.
		dPhi, err := unfold(phi, i, atEnd)
		if err != nil {
			return nil, err
		}
		loop := ldlf.NewDiamond(r.Operand, ldlf.NewDiamond(rho, phi))
		return prop.Or(dPhi, prop.NewQuoted(loop)), nil
	default:
		return nil, ldlferrors.Internal("delta: unhandled regex kind %T in diamond", rho)
	}
}

// unfoldBox computes δ([ρ]φ, x) for x = i or ε (atEnd).
func unfoldBox(rho ldlf.Regex, phi ldlf.Formula, i prop.Interpretation, atEnd bool) (prop.Formula, error) {
	switch r := rho.(type) {
	case ldlf.TestRegex:
		// δ([ψ?]φ, x) = δ(¬ψ, x) ∨ δ(φ, x)
		notPsi := ldlf.NNF(negateFormula(r.Inner))
		dNotPsi, err := unfold(notPsi, i, atEnd)
		if err != nil {
			return nil, err
		}
		dPhi, err := unfold(phi, i, atEnd)
		if err != nil {
			return nil, err
		}
		return prop.Or(dNotPsi, dPhi), nil
	case ldlf.SeqRegex:
		// δ([Seq[ρ1,ρ2,...,ρn]]φ, x) = δ([ρ1][ρ2]...[ρn]φ, x)
		head, restPhi := splitSeqBox(r, phi)
		return unfoldBox(head, restPhi, i, atEnd)
	case ldlf.UnionRegex:
		// δ([Union{ρi}]φ, x) = ⋀ δ([ρi]φ, x)
		parts := make([]prop.Formula, 0, len(r.Operands))
		for _, ri := range r.Operands {
			d, err := unfoldBox(ri, phi, i, atEnd)
			if err != nil {
				return nil, err
			}
			parts = append(parts, d)
		}
		return prop.And(parts...), nil
	case ldlf.StarRegex:
		// δ([Star ρ]φ, x) = δ(φ, x) ∧ ⟦[ρ][Star ρ]φ⟧, same loop-guard as
		// the diamond case.
		dPhi, err := unfold(phi, i, atEnd)
		if err != nil {
			return nil, err
		}
		loop := ldlf.NewBox(r.Operand, ldlf.NewBox(rho, phi))
		return prop.And(dPhi, prop.NewQuoted(loop)), nil
	default:
		return nil, ldlferrors.Internal("delta: unhandled regex kind %T in box", rho)
	}
}

// splitSeqDiamond rewrites <Seq[ρ1,...,ρn]>φ into ρ1 paired with the
// formula <Seq[ρ2,...,ρn]>φ (or just φ if n == 1), so that
// unfoldDiamond(head, restPhi, ...) computes δ(<ρ1>(<ρ2>...<ρn>φ), x).
func splitSeqDiamond(r ldlf.SeqRegex, phi ldlf.Formula) (ldlf.Regex, ldlf.Formula) {
	head := r.Operands[0]
	if len(r.Operands) == 1 {
		return head, phi
	}
	rest := ldlf.NewSeq(r.Operands[1:]...)
	return head, ldlf.NewDiamond(rest, phi)
}

// splitSeqBox is splitSeqDiamond's box-modality counterpart.
func splitSeqBox(r ldlf.SeqRegex, phi ldlf.Formula) (ldlf.Regex, ldlf.Formula) {
	head := r.Operands[0]
	if len(r.Operands) == 1 {
		return head, phi
	}
	rest := ldlf.NewSeq(r.Operands[1:]...)
	return head, ldlf.NewBox(rest, phi)
}

func atomKey(name string) string {
	return prop.NewReal(name).Key()
}

// negateFormula returns ¬f without normalizing; it is immediately passed
// through ldlf.NNF by the caller.
func negateFormula(f ldlf.Formula) ldlf.Formula {
	return ldlf.NewNot(f)
}
