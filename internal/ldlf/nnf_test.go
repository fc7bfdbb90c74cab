package ldlf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NNF_Idempotent(t *testing.T) {
	rho, err := NewTest(NewAtom("p"))
	assert.NoError(t, err)

	formulas := []Formula{
		True,
		False,
		NewAtom("a"),
		NewNot(NewAtom("a")),
		NewNot(NewNot(NewAtom("a"))),
		NewNot(NewAnd(NewAtom("a"), NewAtom("b"))),
		NewNot(NewOr(NewAtom("a"), NewAtom("b"))),
		NewDiamond(rho, NewAtom("a")),
		NewNot(NewDiamond(rho, NewAtom("a"))),
		NewNot(NewBox(rho, NewAtom("a"))),
	}

	for _, f := range formulas {
		once := NNF(f)
		twice := NNF(once)
		assert.True(t, once.Equal(twice), "NNF not idempotent for %s: once=%s twice=%s", f, once, twice)
	}
}

func Test_NNF_DoubleNegationCancels(t *testing.T) {
	a := NewAtom("a")
	got := NNF(NewNot(NewNot(a)))
	assert.True(t, got.Equal(a), "got %s", got)
}

func Test_NNF_DeMorgan_PushesNotThroughAnd(t *testing.T) {
	a, b := NewAtom("a"), NewAtom("b")
	got := NNF(NewNot(NewAnd(a, b)))
	want := NewOr(NewNot(a), NewNot(b))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func Test_NNF_DeMorgan_PushesNotThroughOr(t *testing.T) {
	a, b := NewAtom("a"), NewAtom("b")
	got := NNF(NewNot(NewOr(a, b)))
	want := NewAnd(NewNot(a), NewNot(b))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func Test_NNF_ModalDuality_Diamond(t *testing.T) {
	a := NewAtom("a")
	rho, err := NewTest(True)
	assert.NoError(t, err)

	got := NNF(NewNot(NewDiamond(rho, a)))
	want := NewBox(rho, NewNot(a))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func Test_NNF_ModalDuality_Box(t *testing.T) {
	a := NewAtom("a")
	rho, err := NewTest(True)
	assert.NoError(t, err)

	got := NNF(NewNot(NewBox(rho, a)))
	want := NewDiamond(rho, NewNot(a))
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func Test_NNF_NoNotWrapsNonAtom(t *testing.T) {
	a, b := NewAtom("a"), NewAtom("b")
	weird := NewNot(NewNot(NewAnd(NewNot(a), NewNot(NewNot(b)))))

	got := NNF(weird)
	var assertOnlyAtomsUnderNot func(f Formula)
	assertOnlyAtomsUnderNot = func(f Formula) {
		switch v := f.(type) {
		case NotFormula:
			_, ok := v.Operand.(AtomFormula)
			assert.True(t, ok, "Not wraps non-atom %T in NNF result %s", v.Operand, got)
		case AndFormula:
			for _, o := range v.Operands.Elements() {
				assertOnlyAtomsUnderNot(o)
			}
		case OrFormula:
			for _, o := range v.Operands.Elements() {
				assertOnlyAtomsUnderNot(o)
			}
		case DiamondFormula:
			assertOnlyAtomsUnderNot(v.Operand)
		case BoxFormula:
			assertOnlyAtomsUnderNot(v.Operand)
		}
	}
	assertOnlyAtomsUnderNot(got)
}
