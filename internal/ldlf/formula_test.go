package ldlf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewAnd_Canonicalization(t *testing.T) {
	a := NewAtom("a")
	b := NewAtom("b")

	testCases := []struct {
		name   string
		build  func() Formula
		expect Formula
	}{
		{
			name:   "empty collapses to True",
			build:  func() Formula { return NewAnd() },
			expect: True,
		},
		{
			name:   "single operand collapses to that operand",
			build:  func() Formula { return NewAnd(a) },
			expect: a,
		},
		{
			name:   "duplicate operands are de-duplicated",
			build:  func() Formula { return NewAnd(a, a, b) },
			expect: NewAnd(a, b),
		},
		{
			name:   "operand order does not affect identity",
			build:  func() Formula { return NewAnd(b, a) },
			expect: NewAnd(a, b),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := tc.build()
			assert.True(t, actual.Equal(tc.expect), "got %s, want %s", actual, tc.expect)
		})
	}
}

func Test_NewOr_Canonicalization(t *testing.T) {
	a := NewAtom("a")

	assert.True(t, NewOr().Equal(False))
	assert.True(t, NewOr(a).Equal(a))
	assert.True(t, NewOr(a, a).Equal(a))
}

func Test_Formula_Equal_StructuralNotPointer(t *testing.T) {
	f1 := NewAnd(NewAtom("x"), NewAtom("y"))
	f2 := NewAnd(NewAtom("y"), NewAtom("x"))
	assert.True(t, f1.Equal(f2))
	assert.Equal(t, f1.Key(), f2.Key())
	assert.Equal(t, f1.Hash(), f2.Hash())
}

func Test_Formula_Less_TotalOrder(t *testing.T) {
	forms := []Formula{
		NewOr(NewAtom("a"), NewAtom("b")),
		False,
		True,
		NewAtom("z"),
		NewAtom("a"),
		NewNot(NewAtom("a")),
		NewAnd(NewAtom("a"), NewAtom("b")),
	}

	SortFormulas(forms)

	for i := 0; i < len(forms)-1; i++ {
		lo, hi := forms[i], forms[i+1]
		assert.False(t, hi.Less(lo), "sorted order violated between %s and %s", lo, hi)
	}
}

func Test_IsPropositional(t *testing.T) {
	prop := NewAnd(NewAtom("a"), NewNot(NewAtom("b")))
	assert.True(t, IsPropositional(prop))

	rho, err := NewTest(True)
	assert.NoError(t, err)
	modal := NewDiamond(rho, NewAtom("a"))
	assert.False(t, IsPropositional(modal))
}

func Test_NewTest_RejectsNonPropositional(t *testing.T) {
	rho, err := NewTest(True)
	assert.NoError(t, err)
	nested := NewDiamond(rho, NewAtom("a"))

	_, err = NewTest(nested)
	assert.Error(t, err)
}
