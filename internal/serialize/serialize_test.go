package serialize_test

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/serialize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeDecodeDFA_RoundTrips(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("a"))
	require.NoError(t, err)
	formula := ldlf.NewDiamond(rho, ldlf.True)

	dfa, err := automaton.ToDFA(formula)
	require.NoError(t, err)

	data := serialize.EncodeDFA(dfa)
	require.NotEmpty(t, data)

	restored, err := serialize.DecodeDFA(data)
	require.NoError(t, err)

	assert.Equal(t, dfa.Alphabet(), restored.Alphabet())
	assert.Equal(t, dfa.NumStates(), restored.NumStates())
	assert.Equal(t, dfa.InitialStateIndex(), restored.InitialStateIndex())
	assert.Equal(t, dfa.Transitions(), restored.Transitions())

	for i := 1; i <= dfa.NumStates(); i++ {
		assert.Equal(t, dfa.IsFinal(i), restored.IsFinal(i))
	}

	trace := []automaton.Cube{{0}}
	assert.Equal(t, dfa.Accepts(trace), restored.Accepts(trace))
}

func Test_DumpTransitionTable_ContainsStatesAndAlphabet(t *testing.T) {
	dfa, err := automaton.ToDFA(ldlf.NewAtom("a"))
	require.NoError(t, err)

	report := serialize.DumpTransitionTable(dfa)
	assert.Contains(t, report, "alphabet: a")
	assert.Contains(t, report, "state 1")
}
