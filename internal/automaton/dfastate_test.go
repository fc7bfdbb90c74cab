package automaton

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/prop"
	"github.com/stretchr/testify/assert"
)

func Test_DFAState_IsEmpty(t *testing.T) {
	assert.True(t, NewDFAState().IsEmpty())
	assert.False(t, NewDFAState(NewNFAState(ldlf.NewAtom("a"))).IsEmpty())
}

func Test_DFAState_IsFinal_AnyContainedNFAStateFinal(t *testing.T) {
	final := NewNFAState()                        // represents True, always final
	notFinal := NewNFAState(ldlf.NewAtom("a"))

	d := NewDFAState(notFinal, final)
	ok, err := d.IsFinal()
	assert.NoError(t, err)
	assert.True(t, ok)

	dNone := NewDFAState(notFinal)
	ok, err = dNone.IsFinal()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func Test_DFAState_NextState_UnionsAcrossContainedNFAStates(t *testing.T) {
	a, b := ldlf.NewAtom("a"), ldlf.NewAtom("b")
	s1 := NewNFAState(a)
	s2 := NewNFAState(b)
	d := NewDFAState(s1, s2)

	letterAB := prop.NewInterpretation(prop.NewReal("a"), prop.NewReal("b"))

	next, err := d.NextState(letterAB)
	assert.NoError(t, err)
	assert.True(t, next.IsEmpty() == false)
	final, err := next.IsFinal()
	assert.NoError(t, err)
	assert.True(t, final, "both a and b hold, so both obligations discharge into final successor states")
}
