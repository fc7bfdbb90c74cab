package automaton

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/stretchr/testify/assert"
)

func Test_NewNFAState_TrueConjunctCanonicalizesToEmpty(t *testing.T) {
	withTrue := NewNFAState(ldlf.True)
	empty := NewNFAState()
	assert.True(t, withTrue.Equal(empty), "an explicit True conjunct must canonicalize identically to the empty set")
	assert.Equal(t, withTrue.Key(), empty.Key())
}

func Test_NewNFAState_DeduplicatesAndOrdersByContent(t *testing.T) {
	a, b := ldlf.NewAtom("a"), ldlf.NewAtom("b")
	s1 := NewNFAState(a, b, a)
	s2 := NewNFAState(b, a)
	assert.True(t, s1.Equal(s2))
	assert.Equal(t, 2, s1.Formulas.Len())
}

func Test_NFAState_IsFinal_EmptyStateIsFinal(t *testing.T) {
	final, err := NewNFAState().IsFinal()
	assert.NoError(t, err)
	assert.True(t, final, "the empty NFAState stands for True and is always final")
}

func Test_NFAState_IsFinal_BareAtomIsNotFinal(t *testing.T) {
	final, err := NewNFAState(ldlf.NewAtom("a")).IsFinal()
	assert.NoError(t, err)
	assert.False(t, final, "an undischarged atomic obligation is not final at end of trace")
}

func Test_NFAState_NextStates_AtomResolvesWhenLetterMatches(t *testing.T) {
	s := NewNFAState(ldlf.NewAtom("a"))

	withA, err := s.NextStates(AllInterpretations([]string{"a"})[1]) // mask=1 -> {a}
	assert.NoError(t, err)
	assert.Len(t, withA, 1)
	assert.True(t, withA[0].Equal(NewNFAState()), "a holding discharges the obligation into the empty (final) state")

	without, err := s.NextStates(AllInterpretations([]string{"a"})[0]) // mask=0 -> {}
	assert.NoError(t, err)
	assert.Empty(t, without, "a not holding has no satisfying minimal model: the obligation is unsatisfiable")
}
