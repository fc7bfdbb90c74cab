package ldlfparse_test

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/ldlfparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_Constants(t *testing.T) {
	f, err := ldlfparse.Parse("true")
	require.NoError(t, err)
	assert.Equal(t, ldlf.True, f)

	f, err = ldlfparse.Parse("FALSE")
	require.NoError(t, err)
	assert.Equal(t, ldlf.False, f)
}

func Test_Parse_Atom_IsCaseFolded(t *testing.T) {
	f, err := ldlfparse.Parse("Ready")
	require.NoError(t, err)
	assert.True(t, ldlf.NewAtom("ready").Equal(f))
}

func Test_Parse_Not(t *testing.T) {
	f, err := ldlfparse.Parse("!a")
	require.NoError(t, err)
	want := ldlf.NewNot(ldlf.NewAtom("a"))
	assert.True(t, want.Equal(f))
}

func Test_Parse_AndOr_Precedence(t *testing.T) {
	// '&' binds tighter than '|': a | b & c == a | (b & c)
	f, err := ldlfparse.Parse("a | b & c")
	require.NoError(t, err)
	want := ldlf.NewOr(ldlf.NewAtom("a"), ldlf.NewAnd(ldlf.NewAtom("b"), ldlf.NewAtom("c")))
	assert.True(t, want.Equal(f))
}

func Test_Parse_ParenthesesOverridePrecedence(t *testing.T) {
	f, err := ldlfparse.Parse("(a | b) & c")
	require.NoError(t, err)
	want := ldlf.NewAnd(ldlf.NewOr(ldlf.NewAtom("a"), ldlf.NewAtom("b")), ldlf.NewAtom("c"))
	assert.True(t, want.Equal(f))
}

func Test_Parse_DiamondOfTest(t *testing.T) {
	f, err := ldlfparse.Parse("<a?>true")
	require.NoError(t, err)

	rho, err := ldlf.NewTest(ldlf.NewAtom("a"))
	require.NoError(t, err)
	want := ldlf.NewDiamond(rho, ldlf.True)
	assert.True(t, want.Equal(f))
}

func Test_Parse_BoxOfSeq(t *testing.T) {
	f, err := ldlfparse.Parse("[a?;b?]c")
	require.NoError(t, err)

	ra, err := ldlf.NewTest(ldlf.NewAtom("a"))
	require.NoError(t, err)
	rb, err := ldlf.NewTest(ldlf.NewAtom("b"))
	require.NoError(t, err)
	want := ldlf.NewBox(ldlf.NewSeq(ra, rb), ldlf.NewAtom("c"))
	assert.True(t, want.Equal(f))
}

func Test_Parse_StarAndUnion(t *testing.T) {
	f, err := ldlfparse.Parse("<(a?+b?)*>true")
	require.NoError(t, err)

	ra, err := ldlf.NewTest(ldlf.NewAtom("a"))
	require.NoError(t, err)
	rb, err := ldlf.NewTest(ldlf.NewAtom("b"))
	require.NoError(t, err)
	want := ldlf.NewDiamond(ldlf.NewStar(ldlf.NewUnion(ra, rb)), ldlf.True)
	assert.True(t, want.Equal(f))
}

func Test_Parse_ParenthesizedRegexInsideModal(t *testing.T) {
	f, err := ldlfparse.Parse("<(a?;b?)*>true")
	require.NoError(t, err)

	ra, err := ldlf.NewTest(ldlf.NewAtom("a"))
	require.NoError(t, err)
	rb, err := ldlf.NewTest(ldlf.NewAtom("b"))
	require.NoError(t, err)
	want := ldlf.NewDiamond(ldlf.NewStar(ldlf.NewSeq(ra, rb)), ldlf.True)
	assert.True(t, want.Equal(f))
}

func Test_Parse_RejectsTrailingGarbage(t *testing.T) {
	_, err := ldlfparse.Parse("a )")
	assert.Error(t, err)
}

func Test_Parse_RejectsUnclosedModal(t *testing.T) {
	_, err := ldlfparse.Parse("<a? true")
	assert.Error(t, err)
}

func Test_Parse_RejectsUnknownCharacter(t *testing.T) {
	_, err := ldlfparse.Parse("a @ b")
	assert.Error(t, err)
}

func Test_Parse_RejectsModalInsideTest(t *testing.T) {
	// a test's inner formula must be propositional; <a>true is modal and
	// cannot be used as a test's guard.
	_, err := ldlfparse.Parse("<(<a?>true)?>true")
	assert.Error(t, err)
}
