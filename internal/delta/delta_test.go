package delta

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/prop"
	"github.com/stretchr/testify/assert"
)

func Test_Of_Constants(t *testing.T) {
	i := prop.NewInterpretation()

	got, err := Of(ldlf.True, i)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))

	got, err = Of(ldlf.False, i)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Of_Atom(t *testing.T) {
	a := ldlf.NewAtom("a")

	withA := prop.NewInterpretation(prop.NewReal("a"))
	got, err := Of(a, withA)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))

	without := prop.NewInterpretation()
	got, err = Of(a, without)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Of_NegatedAtom(t *testing.T) {
	notA := ldlf.NewNot(ldlf.NewAtom("a"))
	withA := prop.NewInterpretation(prop.NewReal("a"))

	got, err := Of(notA, withA)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Of_NotOverNonAtom_IsMalformed(t *testing.T) {
	bad := ldlf.NewNot(ldlf.NewAnd(ldlf.NewAtom("a"), ldlf.NewAtom("b")))
	_, err := Of(bad, prop.NewInterpretation())
	assert.Error(t, err)
}

func Test_AtEnd_Atom_IsFalse(t *testing.T) {
	got, err := AtEnd(ldlf.NewAtom("a"))
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_AtEnd_NegatedAtom_IsTrue(t *testing.T) {
	got, err := AtEnd(ldlf.NewNot(ldlf.NewAtom("a")))
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))
}

func Test_Diamond_Test_IsConjunctionOfTestAndOperand(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("p"))
	assert.NoError(t, err)
	f := ldlf.NewDiamond(rho, ldlf.NewAtom("a"))

	both := prop.NewInterpretation(prop.NewReal("p"), prop.NewReal("a"))
	got, err := Of(f, both)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))

	onlyP := prop.NewInterpretation(prop.NewReal("p"))
	got, err = Of(f, onlyP)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Box_Test_IsDisjunctionOfNegatedTestAndOperand(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("p"))
	assert.NoError(t, err)
	f := ldlf.NewBox(rho, ldlf.NewAtom("a"))

	// p is false: vacuously true regardless of a.
	noP := prop.NewInterpretation()
	got, err := Of(f, noP)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))

	// p true, a false: must fail.
	onlyP := prop.NewInterpretation(prop.NewReal("p"))
	got, err = Of(f, onlyP)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Diamond_Seq_ChainsThroughOperands(t *testing.T) {
	testP, err := ldlf.NewTest(ldlf.NewAtom("p"))
	assert.NoError(t, err)
	testQ, err := ldlf.NewTest(ldlf.NewAtom("q"))
	assert.NoError(t, err)

	seq := ldlf.NewSeq(testP, testQ)
	f := ldlf.NewDiamond(seq, ldlf.True)

	// <p?;q?>True requires p and q to both hold at this same instant,
	// since tests consume no trace positions.
	both := prop.NewInterpretation(prop.NewReal("p"), prop.NewReal("q"))
	got, err := Of(f, both)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.True))

	onlyP := prop.NewInterpretation(prop.NewReal("p"))
	got, err = Of(f, onlyP)
	assert.NoError(t, err)
	assert.True(t, got.Equal(prop.False))
}

func Test_Diamond_Star_ProducesQuotedLoopObligation(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("p"))
	assert.NoError(t, err)
	star := ldlf.NewStar(rho)
	f := ldlf.NewDiamond(star, ldlf.NewAtom("a"))

	// a false, p false: the only way forward is the quoted loop obligation.
	i := prop.NewInterpretation()
	got, err := Of(f, i)
	assert.NoError(t, err)

	models := prop.MinimalModels(got)
	assert.Len(t, models, 1)
	obligations := models[0].Formulas()
	assert.Len(t, obligations, 1)
	assert.True(t, obligations[0].Equal(ldlf.NewDiamond(rho, f)))
}

func Test_Box_Star_ProducesQuotedLoopObligation(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("p"))
	assert.NoError(t, err)
	star := ldlf.NewStar(rho)
	f := ldlf.NewBox(star, ldlf.NewAtom("a"))

	// a true: δ(φ,x) collapses to the identity and drops out of the
	// conjunction, leaving exactly the quoted loop obligation.
	i := prop.NewInterpretation(prop.NewReal("a"))
	got, err := Of(f, i)
	assert.NoError(t, err)

	models := prop.MinimalModels(got)
	assert.Len(t, models, 1)
	obligations := models[0].Formulas()
	assert.Len(t, obligations, 1)
	assert.True(t, obligations[0].Equal(ldlf.NewBox(rho, f)))
}
