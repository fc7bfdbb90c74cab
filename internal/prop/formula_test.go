package prop

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/stretchr/testify/assert"
)

func Test_And_ShortCircuitsOnFalse(t *testing.T) {
	a := NewReal("a")
	got := And(a, False, NewReal("b"))
	assert.True(t, got.Equal(False))
}

func Test_And_DropsTrueOperands(t *testing.T) {
	a := NewReal("a")
	got := And(True, a, True)
	assert.True(t, got.Equal(a))
}

func Test_And_Empty_IsTrue(t *testing.T) {
	assert.True(t, And().Equal(True))
}

func Test_Or_ShortCircuitsOnTrue(t *testing.T) {
	a := NewReal("a")
	got := Or(a, True, NewReal("b"))
	assert.True(t, got.Equal(True))
}

func Test_Or_DropsFalseOperands(t *testing.T) {
	a := NewReal("a")
	got := Or(False, a, False)
	assert.True(t, got.Equal(a))
}

func Test_Or_Empty_IsFalse(t *testing.T) {
	assert.True(t, Or().Equal(False))
}

func Test_QuotedAtom_IdentityIsTheQuotedFormula(t *testing.T) {
	f1 := ldlf.NewAnd(ldlf.NewAtom("a"), ldlf.NewAtom("b"))
	f2 := ldlf.NewAnd(ldlf.NewAtom("b"), ldlf.NewAtom("a"))

	q1 := NewQuoted(f1)
	q2 := NewQuoted(f2)

	assert.True(t, q1.Equal(q2), "quoted atoms over structurally equal formulas must be equal")
	assert.Equal(t, q1.Key(), q2.Key())
}

func Test_RealAndQuotedAtoms_NeverCollide(t *testing.T) {
	real := NewReal("x")
	quoted := NewQuoted(ldlf.NewAtom("x"))
	assert.False(t, real.Equal(quoted))
	assert.NotEqual(t, real.Key(), quoted.Key())
}
