package ldlf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FindAtoms(t *testing.T) {
	rho, err := NewTest(NewAtom("p"))
	assert.NoError(t, err)

	f := NewAnd(
		NewAtom("b"),
		NewDiamond(rho, NewOr(NewAtom("a"), NewNot(NewAtom("c")))),
	)

	assert.Equal(t, []string{"a", "b", "c", "p"}, FindAtoms(f))
}

func Test_FindAtoms_NoDuplicates(t *testing.T) {
	f := NewAnd(NewAtom("a"), NewOr(NewAtom("a"), NewNot(NewAtom("a"))))
	assert.Equal(t, []string{"a"}, FindAtoms(f))
}

func Test_FindAtoms_ConstantsHaveNoAtoms(t *testing.T) {
	assert.Empty(t, FindAtoms(True))
	assert.Empty(t, FindAtoms(False))
}
