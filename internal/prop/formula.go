// Package prop implements the propositional sub-language that the delta
// expansion unfolds an LDLf formula into: constants, two kinds of atoms
// (real atoms drawn from the alphabet Σ, and quoted LDLf subformulas
// standing for next-step obligations), and conjunction/disjunction. There
// is deliberately no negation variant: the delta equations never
// introduce one (negation of an atom is resolved immediately to a
// constant, and [ψ?]φ negates ψ on the LDLf side before delta'ing it), so
// every propositional formula produced by this core is a monotone
// positive boolean formula over its atoms. That monotonicity is exactly
// what makes minimal-model enumeration (minmodel.go) a simple recursive
// computation instead of a general SAT search.
package prop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/hashutil"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/set"
)

// Kind discriminates the variants of Formula.
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindAtom
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindAtom:
		return "Atom"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Formula is a propositional formula over real and quoted atoms.
// Satisfies set.Elem[Formula].
type Formula interface {
	Kind() Kind
	Hash() uint64
	Equal(other Formula) bool
	Less(other Formula) bool
	Key() string
	String() string
}

type trueFormula struct{}
type falseFormula struct{}

// True is the propositional constant true.
var True Formula = trueFormula{}

// False is the propositional constant false.
var False Formula = falseFormula{}

func (trueFormula) Kind() Kind   { return KindTrue }
func (trueFormula) Hash() uint64 { return hashutil.Tag(int(KindTrue)) }
func (trueFormula) String() string { return "true" }
func (trueFormula) Key() string  { return "T" }
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

// AtomKind distinguishes a real (Σ) atom from a quoted LDLf subformula.
type AtomKind uint8

const (
	AtomReal AtomKind = iota
	AtomQuoted
)

// AtomFormula is either a real atom of Σ or a quoted LDLf subformula
// ⟦ψ⟧ — an opaque propositional atom whose identity is the LDLf
// subformula it quotes.
type AtomFormula struct {
	AtomKind AtomKind
	Name     string      // set iff AtomKind == AtomReal
	Quoted   ldlf.Formula // set iff AtomKind == AtomQuoted
	hash     uint64
	key      string
}

// NewReal returns the real-atom formula for the given Σ member.
func NewReal(name string) Formula {
	return AtomFormula{
		AtomKind: AtomReal,
		Name:     name,
		hash:     hashutil.Combine(hashutil.Tag(int(KindAtom)), hashutil.String("r:"+name)),
		key:      "r:" + name,
	}
}

// NewQuoted returns the quoted-atom formula ⟦f⟧.
func NewQuoted(f ldlf.Formula) Formula {
	key := "q:" + f.Key()
	return AtomFormula{
		AtomKind: AtomQuoted,
		Quoted:   f,
		hash:     hashutil.Combine(hashutil.Tag(int(KindAtom)), hashutil.Combine(hashutil.String("q:"), f.Hash())),
		key:      key,
	}
}

func (a AtomFormula) Kind() Kind   { return KindAtom }
func (a AtomFormula) Hash() uint64 { return a.hash }
func (a AtomFormula) String() string {
	if a.AtomKind == AtomReal {
		return a.Name
	}
	return "⟦" + a.Quoted.String() + "⟧"
}
func (a AtomFormula) Key() string { return a.key }
func (a AtomFormula) Equal(o Formula) bool {
	other, ok := o.(AtomFormula)
	if !ok || a.AtomKind != other.AtomKind {
		return false
	}
	if a.AtomKind == AtomReal {
		return a.Name == other.Name
	}
	return a.Quoted.Equal(other.Quoted)
}
func (a AtomFormula) Less(o Formula) bool {
	if other, ok := o.(AtomFormula); ok {
		if a.AtomKind != other.AtomKind {
			return a.AtomKind < other.AtomKind
		}
		if a.AtomKind == AtomReal {
			return a.Name < other.Name
		}
		return a.Quoted.Less(other.Quoted)
	}
	return lessByKind(a, o)
}

// AndFormula is the canonical conjunction of a sorted, de-duplicated set
// of operands with arity >= 2.
type AndFormula struct {
	Operands *set.Set[Formula]
	hash     uint64
}

// OrFormula is the canonical disjunction, symmetric to AndFormula.
type OrFormula struct {
	Operands *set.Set[Formula]
	hash     uint64
}

// And builds the canonical conjunction of ops, short-circuiting on a
// False operand and dropping True operands: And() collapses to True,
// And(single) collapses to single, and a False anywhere collapses the
// whole conjunction to False.
func And(ops ...Formula) Formula {
	return buildAndOr(KindAnd, ops, False, True)
}

// Or builds the canonical disjunction of ops, short-circuiting on a True
// operand and dropping False operands.
func Or(ops ...Formula) Formula {
	return buildAndOr(KindOr, ops, True, False)
}

func buildAndOr(kind Kind, ops []Formula, annihilator, identity Formula) Formula {
	filtered := make([]Formula, 0, len(ops))
	for _, o := range ops {
		if o.Equal(annihilator) {
			return annihilator
		}
		if o.Equal(identity) {
			continue
		}
		filtered = append(filtered, o)
	}
	s := set.New(filtered...)
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

// SortFormulas sorts fs in place by the total propositional-formula
// order.
func SortFormulas(fs []Formula) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Less(fs[j]) })
}
