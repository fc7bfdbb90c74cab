// Package ldlf implements the Linear Dynamic Logic over finite traces
// (LDLf) abstract syntax tree: formulas, regular expressions over
// propositional tests, negation-normal form rewriting, and atom
// extraction. It is the leaf-most package of the translation core; it
// imports internal/set (canonicalizing containers for And/Or operand
// lists), internal/hashutil, and internal/ldlferrors, and nothing above
// it. The delta expansion lives in internal/delta.
//
// Formulas and regular expressions are immutable tagged sums: a Kind tag
// plus a concrete Go type per variant, matching the structural definition
// in the specification rather than a class hierarchy with virtual
// dispatch. Equality, ordering, and hashing are structural and derived
// straight from that definition.
package ldlf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/hashutil"
	"github.com/dekarrin/ldlf2dfa/internal/set"
)

// Kind discriminates the variants of Formula. The numeric values double
// as the first component of the total order on formulas (see Less).
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindAtom
	KindNot
	KindAnd
	KindOr
	KindDiamond
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindAtom:
		return "Atom"
	case KindNot:
		return "Not"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindDiamond:
		return "Diamond"
	case KindBox:
		return "Box"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Formula is an LDLf formula. All implementations are immutable and
// constructed exclusively through the New* functions in this package,
// which enforce the canonicalization invariants from the data model: And
// and Or operand lists are sorted, de-duplicated, and identity-absorbing.
//
// Formula satisfies set.Elem[Formula], so Set[Formula] can be used
// directly to hold canonical operand lists and NFA-state formula sets.
type Formula interface {
	Kind() Kind
	Hash() uint64
	Equal(other Formula) bool
	Less(other Formula) bool
	Key() string
	String() string
}

// trueFormula and falseFormula are singleton leaf formulas.
type trueFormula struct{}
type falseFormula struct{}

// True is the LDLf constant ⊤.
var True Formula = trueFormula{}

// False is the LDLf constant ⊥.
var False Formula = falseFormula{}

func (trueFormula) Kind() Kind       { return KindTrue }
func (trueFormula) Hash() uint64     { return hashutil.Tag(int(KindTrue)) }
func (trueFormula) String() string   { return "true" }
func (trueFormula) Key() string      { return "T" }
func (trueFormula) Equal(o Formula) bool {
	_, ok := o.(trueFormula)
	return ok
}
func (f trueFormula) Less(o Formula) bool { return lessByKind(f, o) }

func (falseFormula) Kind() Kind     { return KindFalse }
func (falseFormula) Hash() uint64   { return hashutil.Tag(int(KindFalse)) }
func (falseFormula) String() string { return "false" }
func (falseFormula) Key() string    { return "F" }
func (falseFormula) Equal(o Formula) bool {
	_, ok := o.(falseFormula)
	return ok
}
func (f falseFormula) Less(o Formula) bool { return lessByKind(f, o) }

// AtomFormula is a propositional atom drawn from the alphabet Σ.
type AtomFormula struct {
	Name string
	hash uint64
}

// NewAtom returns the atom named name.
func NewAtom(name string) Formula {
	return AtomFormula{Name: name, hash: hashutil.Combine(hashutil.Tag(int(KindAtom)), hashutil.String(name))}
}

func (a AtomFormula) Kind() Kind   { return KindAtom }
func (a AtomFormula) Hash() uint64 { return a.hash }
func (a AtomFormula) String() string {
	return a.Name
}
func (a AtomFormula) Key() string { return "A:" + a.Name }
func (a AtomFormula) Equal(o Formula) bool {
	other, ok := o.(AtomFormula)
	return ok && other.Name == a.Name
}
func (a AtomFormula) Less(o Formula) bool {
	if other, ok := o.(AtomFormula); ok {
		return a.Name < other.Name
	}
	return lessByKind(a, o)
}

// NotFormula negates its operand. In NNF, Operand is always an
// AtomFormula; negation is never built directly over any other kind.
type NotFormula struct {
	Operand Formula
	hash    uint64
}

// NewNot wraps f in a negation without attempting to normalize it; call
// NNF afterwards (or build only over atoms) to maintain the NNF
// invariant.
func NewNot(f Formula) Formula {
	return NotFormula{Operand: f, hash: hashutil.Combine(hashutil.Tag(int(KindNot)), f.Hash())}
}

func (n NotFormula) Kind() Kind   { return KindNot }
func (n NotFormula) Hash() uint64 { return n.hash }
func (n NotFormula) String() string {
	return "!" + n.Operand.String()
}
func (n NotFormula) Key() string { return "N(" + n.Operand.Key() + ")" }
func (n NotFormula) Equal(o Formula) bool {
	other, ok := o.(NotFormula)
	return ok && n.Operand.Equal(other.Operand)
}
func (n NotFormula) Less(o Formula) bool {
	if other, ok := o.(NotFormula); ok {
		return n.Operand.Less(other.Operand)
	}
	return lessByKind(n, o)
}

// AndFormula is the canonical conjunction of a sorted, de-duplicated,
// non-empty (after canonicalization collapses to True otherwise) set of
// operands with arity >= 2.
type AndFormula struct {
	Operands *set.Set[Formula]
	hash     uint64
}

// OrFormula is the canonical disjunction, structurally identical to
// AndFormula.
type OrFormula struct {
	Operands *set.Set[Formula]
	hash     uint64
}

// NewAnd builds the canonical conjunction of ops: duplicates are removed,
// operands are sorted by the total formula order, And{} collapses to
// True, and And{single} collapses to single.
func NewAnd(ops ...Formula) Formula {
	return buildAndOr(KindAnd, True, ops)
}

// NewOr builds the canonical disjunction of ops, symmetric to NewAnd with
// Or{} collapsing to False.
func NewOr(ops ...Formula) Formula {
	return buildAndOr(KindOr, False, ops)
}

func buildAndOr(kind Kind, identity Formula, ops []Formula) Formula {
	s := set.New(ops...)
	if s.Len() == 0 {
		return identity
	}
	if s.Len() == 1 {
		return s.Elements()[0]
	}
	h := hashutil.Tag(int(kind))
	for _, o := range s.Elements() {
		h = hashutil.Combine(h, o.Hash())
	}
	if kind == KindAnd {
		return AndFormula{Operands: s, hash: h}
	}
	return OrFormula{Operands: s, hash: h}
}

func (a AndFormula) Kind() Kind   { return KindAnd }
func (a AndFormula) Hash() uint64 { return a.hash }
func (a AndFormula) String() string {
	return joinOperands(a.Operands, " & ")
}
func (a AndFormula) Key() string { return "&(" + a.Operands.Key() + ")" }
func (a AndFormula) Equal(o Formula) bool {
	other, ok := o.(AndFormula)
	return ok && a.Operands.Equal(other.Operands)
}
func (a AndFormula) Less(o Formula) bool {
	if other, ok := o.(AndFormula); ok {
		return lessOperandSets(a.Operands, other.Operands)
	}
	return lessByKind(a, o)
}

func (o OrFormula) Kind() Kind   { return KindOr }
func (o OrFormula) Hash() uint64 { return o.hash }
func (o OrFormula) String() string {
	return joinOperands(o.Operands, " | ")
}
func (o OrFormula) Key() string { return "|(" + o.Operands.Key() + ")" }
func (o OrFormula) Equal(other Formula) bool {
	otherOr, ok := other.(OrFormula)
	return ok && o.Operands.Equal(otherOr.Operands)
}
func (o OrFormula) Less(other Formula) bool {
	if otherOr, ok := other.(OrFormula); ok {
		return lessOperandSets(o.Operands, otherOr.Operands)
	}
	return lessByKind(o, other)
}

// DiamondFormula is <ρ>φ: "there exists a way to satisfy ρ, reaching a
// state where φ holds."
type DiamondFormula struct {
	Regex   Regex
	Operand Formula
	hash    uint64
}

// BoxFormula is [ρ]φ: "every way of satisfying ρ reaches a state where φ
// holds."
type BoxFormula struct {
	Regex   Regex
	Operand Formula
	hash    uint64
}

// NewDiamond builds <rho>operand.
func NewDiamond(rho Regex, operand Formula) Formula {
	h := hashutil.Combine(hashutil.Combine(hashutil.Tag(int(KindDiamond)), rho.Hash()), operand.Hash())
	return DiamondFormula{Regex: rho, Operand: operand, hash: h}
}

// NewBox builds [rho]operand.
func NewBox(rho Regex, operand Formula) Formula {
	h := hashutil.Combine(hashutil.Combine(hashutil.Tag(int(KindBox)), rho.Hash()), operand.Hash())
	return BoxFormula{Regex: rho, Operand: operand, hash: h}
}

func (d DiamondFormula) Kind() Kind   { return KindDiamond }
func (d DiamondFormula) Hash() uint64 { return d.hash }
func (d DiamondFormula) String() string {
	return "<" + d.Regex.String() + ">" + d.Operand.String()
}
func (d DiamondFormula) Key() string {
	return "D(" + d.Regex.Key() + ";" + d.Operand.Key() + ")"
}
func (d DiamondFormula) Equal(o Formula) bool {
	other, ok := o.(DiamondFormula)
	return ok && d.Regex.Equal(other.Regex) && d.Operand.Equal(other.Operand)
}
func (d DiamondFormula) Less(o Formula) bool {
	if other, ok := o.(DiamondFormula); ok {
		if !d.Regex.Equal(other.Regex) {
			return d.Regex.Less(other.Regex)
		}
		return d.Operand.Less(other.Operand)
	}
	return lessByKind(d, o)
}

func (b BoxFormula) Kind() Kind   { return KindBox }
func (b BoxFormula) Hash() uint64 { return b.hash }
func (b BoxFormula) String() string {
	return "[" + b.Regex.String() + "]" + b.Operand.String()
}
func (b BoxFormula) Key() string {
	return "B(" + b.Regex.Key() + ";" + b.Operand.Key() + ")"
}
func (b BoxFormula) Equal(o Formula) bool {
	other, ok := o.(BoxFormula)
	return ok && b.Regex.Equal(other.Regex) && b.Operand.Equal(other.Operand)
}
func (b BoxFormula) Less(o Formula) bool {
	if other, ok := o.(BoxFormula); ok {
		if !b.Regex.Equal(other.Regex) {
			return b.Regex.Less(other.Regex)
		}
		return b.Operand.Less(other.Operand)
	}
	return lessByKind(b, o)
}

// lessByKind implements the fallback step of the total order: when a and
// b are of different kinds, order by kind tag.
func lessByKind(a, b Formula) bool {
	return a.Kind() < b.Kind()
}

func lessOperandSets(a, b *set.Set[Formula]) bool {
	ae, be := a.Elements(), b.Elements()
	if len(ae) != len(be) {
		return len(ae) < len(be)
	}
	for i := range ae {
		if ae[i].Equal(be[i]) {
			continue
		}
		return ae[i].Less(be[i])
	}
	return false
}

func joinOperands(s *set.Set[Formula], sep string) string {
	elems := s.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// IsPropositional reports whether f contains no Diamond or Box nodes,
// i.e. whether it belongs to the propositional fragment required of a
// regular-expression test's inner formula.
func IsPropositional(f Formula) bool {
	switch v := f.(type) {
	case trueFormula, falseFormula, AtomFormula:
		return true
	case NotFormula:
		return IsPropositional(v.Operand)
	case AndFormula:
		ok := true
		for _, o := range v.Operands.Elements() {
			ok = ok && IsPropositional(o)
		}
		return ok
	case OrFormula:
		ok := true
		for _, o := range v.Operands.Elements() {
			ok = ok && IsPropositional(o)
		}
		return ok
	default:
		return false
	}
}

// SortFormulas sorts fs in place according to the total formula order.
func SortFormulas(fs []Formula) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Less(fs[j]) })
}
