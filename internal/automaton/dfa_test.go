package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTrace_EmptyStringIsEmptyTrace(t *testing.T) {
	trace, err := ParseTrace("", []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, trace)
}

func Test_ParseTrace_SplitsLettersAndAtoms(t *testing.T) {
	trace, err := ParseTrace("a,b; ; c", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, trace, 3)
	assert.Equal(t, Cube{0, 1}, trace[0])
	assert.Empty(t, trace[1])
	assert.Equal(t, Cube{2}, trace[2])
}

func Test_ParseTrace_UnknownAtomIsError(t *testing.T) {
	_, err := ParseTrace("a,z", []string{"a", "b"})
	assert.Error(t, err)
}
