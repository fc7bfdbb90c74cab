package ldlf

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/hashutil"
	"github.com/dekarrin/ldlf2dfa/internal/ldlferrors"
)

// RegexKind discriminates the variants of Regex.
type RegexKind uint8

const (
	RegexKindTest RegexKind = iota
	RegexKindUnion
	RegexKindSeq
	RegexKindStar
)

func (k RegexKind) String() string {
	switch k {
	case RegexKindTest:
		return "Test"
	case RegexKindUnion:
		return "Union"
	case RegexKindSeq:
		return "Seq"
	case RegexKindStar:
		return "Star"
	default:
		return fmt.Sprintf("RegexKind(%d)", uint8(k))
	}
}

// Regex is a regular expression over propositional tests, as used inside
// an LDLf Diamond or Box modality. Negation is never introduced on a
// Regex directly; only on the LDLf formulas it contains or that contain
// it.
type Regex interface {
	Kind() RegexKind
	Hash() uint64
	Equal(other Regex) bool
	Less(other Regex) bool
	Key() string
	String() string
}

// TestRegex is ψ? : a propositional test. Inner must satisfy
// IsPropositional; NewTest reports a MalformedFormula error otherwise,
// matching the data-model invariant that the tests embedded in a regular
// expression never carry dynamic-logic modalities.
type TestRegex struct {
	Inner Formula
	hash  uint64
}

// NewTest builds a propositional test over inner. It returns a
// MalformedFormula error (via ldlferrors) if inner is not in the
// propositional fragment (i.e. contains a Diamond or Box).
func NewTest(inner Formula) (Regex, error) {
	if !IsPropositional(inner) {
		return nil, ldlferrors.Malformed("regex test wraps non-propositional formula %s", inner)
	}
	return TestRegex{Inner: inner, hash: hashutil.Combine(hashutil.Tag(int(RegexKindTest)), inner.Hash())}, nil
}

func (t TestRegex) Kind() RegexKind { return RegexKindTest }
func (t TestRegex) Hash() uint64    { return t.hash }
func (t TestRegex) String() string  { return t.Inner.String() + "?" }
func (t TestRegex) Key() string     { return "t(" + t.Inner.Key() + ")" }
func (t TestRegex) Equal(o Regex) bool {
	other, ok := o.(TestRegex)
	return ok && t.Inner.Equal(other.Inner)
}
func (t TestRegex) Less(o Regex) bool {
	if other, ok := o.(TestRegex); ok {
		return t.Inner.Less(other.Inner)
	}
	return lessRegexByKind(t, o)
}

// UnionRegex is ρ1 ∪ ρ2 ∪ ... ∪ ρn.
type UnionRegex struct {
	Operands []Regex
	hash     uint64
}

// NewUnion builds a union of ops, in the given order (regular-expression
// operand order is preserved, unlike formula And/Or which canonicalize by
// sorting; union over regular expressions is not required to be
// canonical by the data model).
func NewUnion(ops ...Regex) Regex {
	h := hashutil.Tag(int(RegexKindUnion))
	for _, o := range ops {
		h = hashutil.Combine(h, o.Hash())
	}
	return UnionRegex{Operands: append([]Regex(nil), ops...), hash: h}
}

func (u UnionRegex) Kind() RegexKind { return RegexKindUnion }
func (u UnionRegex) Hash() uint64    { return u.hash }
func (u UnionRegex) String() string {
	return "(" + joinRegex(u.Operands, " + ") + ")"
}
func (u UnionRegex) Key() string {
	return "u(" + joinRegexKeys(u.Operands) + ")"
}
func (u UnionRegex) Equal(o Regex) bool {
	other, ok := o.(UnionRegex)
	if !ok || len(u.Operands) != len(other.Operands) {
		return false
	}
	for i := range u.Operands {
		if !u.Operands[i].Equal(other.Operands[i]) {
			return false
		}
	}
	return true
}
func (u UnionRegex) Less(o Regex) bool {
	if other, ok := o.(UnionRegex); ok {
		return lessRegexSlices(u.Operands, other.Operands)
	}
	return lessRegexByKind(u, o)
}

// SeqRegex is ρ1 ; ρ2 ; ... ; ρn, concatenation in the given order.
type SeqRegex struct {
	Operands []Regex
	hash     uint64
}

// NewSeq builds a concatenation of ops in order.
func NewSeq(ops ...Regex) Regex {
	h := hashutil.Tag(int(RegexKindSeq))
	for _, o := range ops {
		h = hashutil.Combine(h, o.Hash())
	}
	return SeqRegex{Operands: append([]Regex(nil), ops...), hash: h}
}

func (s SeqRegex) Kind() RegexKind { return RegexKindSeq }
func (s SeqRegex) Hash() uint64    { return s.hash }
func (s SeqRegex) String() string {
	return "(" + joinRegex(s.Operands, "; ") + ")"
}
func (s SeqRegex) Key() string {
	return "s(" + joinRegexKeys(s.Operands) + ")"
}
func (s SeqRegex) Equal(o Regex) bool {
	other, ok := o.(SeqRegex)
	if !ok || len(s.Operands) != len(other.Operands) {
		return false
	}
	for i := range s.Operands {
		if !s.Operands[i].Equal(other.Operands[i]) {
			return false
		}
	}
	return true
}
func (s SeqRegex) Less(o Regex) bool {
	if other, ok := o.(SeqRegex); ok {
		return lessRegexSlices(s.Operands, other.Operands)
	}
	return lessRegexByKind(s, o)
}

// StarRegex is ρ*, the Kleene star.
type StarRegex struct {
	Operand Regex
	hash    uint64
}

// NewStar builds the Kleene star of op.
func NewStar(op Regex) Regex {
	return StarRegex{Operand: op, hash: hashutil.Combine(hashutil.Tag(int(RegexKindStar)), op.Hash())}
}

func (s StarRegex) Kind() RegexKind { return RegexKindStar }
func (s StarRegex) Hash() uint64    { return s.hash }
func (s StarRegex) String() string  { return s.Operand.String() + "*" }
func (s StarRegex) Key() string     { return "x(" + s.Operand.Key() + ")" }
func (s StarRegex) Equal(o Regex) bool {
	other, ok := o.(StarRegex)
	return ok && s.Operand.Equal(other.Operand)
}
func (s StarRegex) Less(o Regex) bool {
	if other, ok := o.(StarRegex); ok {
		return s.Operand.Less(other.Operand)
	}
	return lessRegexByKind(s, o)
}

func lessRegexByKind(a, b Regex) bool {
	return a.Kind() < b.Kind()
}

func lessRegexSlices(a, b []Regex) bool {
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

func joinRegex(rs []Regex, sep string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, sep)
}

func joinRegexKeys(rs []Regex) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.Key()
	}
	return strings.Join(parts, ",")
}
