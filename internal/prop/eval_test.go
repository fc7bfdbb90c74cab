package prop

import (
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/stretchr/testify/assert"
)

func Test_Eval_Constants(t *testing.T) {
	assert.True(t, Eval(True, nil))
	assert.False(t, Eval(False, nil))
}

func Test_Eval_Atom(t *testing.T) {
	a := NewReal("a")
	i := NewInterpretation(a)

	assert.True(t, Eval(a, i))
	assert.False(t, Eval(NewReal("b"), i))
	assert.False(t, Eval(a, nil), "nil interpretation treats every atom as false")
}

func Test_Eval_AndOr(t *testing.T) {
	a, b := NewReal("a"), NewReal("b")
	i := NewInterpretation(a)

	assert.False(t, Eval(And(a, b), i))
	assert.True(t, Eval(Or(a, b), i))
}

func Test_Eval_QuotedAtomTreatedAsOpaque(t *testing.T) {
	q := NewQuoted(ldlf.NewAtom("next-obligation"))
	i := NewInterpretation(q)
	assert.True(t, Eval(q, i))
	assert.False(t, Eval(q, nil))
}
