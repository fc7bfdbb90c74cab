package prop

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/stretchr/testify/assert"
)

func Test_MinimalModels_True(t *testing.T) {
	models := MinimalModels(True)
	assert.Len(t, models, 1)
	assert.Empty(t, models[0])
}

func Test_MinimalModels_False(t *testing.T) {
	assert.Empty(t, MinimalModels(False))
}

func Test_MinimalModels_SingleQuotedAtom(t *testing.T) {
	q := ldlf.NewAtom("psi")
	models := MinimalModels(NewQuoted(q))
	assert.Len(t, models, 1)
	assert.Len(t, models[0], 1)
	assert.Contains(t, models[0], NewQuoted(q).Key())
}

func Test_MinimalModels_Or_PoolsAndMinimizes(t *testing.T) {
	q1 := NewQuoted(ldlf.NewAtom("p1"))
	q2 := NewQuoted(ldlf.NewAtom("p2"))

	models := MinimalModels(Or(q1, q2))
	assert.Len(t, models, 2)
	for _, m := range models {
		assert.Len(t, m, 1)
	}
}

func Test_MinimalModels_And_TakesUnionAcrossOperands(t *testing.T) {
	q1 := NewQuoted(ldlf.NewAtom("p1"))
	q2 := NewQuoted(ldlf.NewAtom("p2"))

	models := MinimalModels(And(q1, q2))
	assert.Len(t, models, 1)
	assert.Len(t, models[0], 2)
}

func Test_MinimalModels_And_UnsatisfiableOperandMakesWholeUnsatisfiable(t *testing.T) {
	q1 := NewQuoted(ldlf.NewAtom("p1"))
	assert.Empty(t, MinimalModels(And(q1, False)))
}

func Test_MinimalModels_RedundantSupersetIsDropped(t *testing.T) {
	q1 := NewQuoted(ldlf.NewAtom("p1"))
	q2 := NewQuoted(ldlf.NewAtom("p2"))

	// (q1) | (q1 & q2) : the second disjunct's model is a strict superset
	// of the first's and must not survive minimization.
	models := MinimalModels(Or(q1, And(q1, q2)))
	assert.Len(t, models, 1)
	assert.Len(t, models[0], 1)
	assert.Contains(t, models[0], q1.Key())
}

func Test_MinimalModels_RealAtomPanics(t *testing.T) {
	assert.Panics(t, func() {
		MinimalModels(NewReal("a"))
	})
}
