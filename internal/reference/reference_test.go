package reference_test

import (
	"math/rand"
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Accepts_ConstantsAndAtoms(t *testing.T) {
	trace := []reference.Letter{reference.NewLetter("a")}

	assert.True(t, reference.Accepts(ldlf.True, trace))
	assert.False(t, reference.Accepts(ldlf.False, trace))
	assert.True(t, reference.Accepts(ldlf.NewAtom("a"), trace))
	assert.False(t, reference.Accepts(ldlf.NewAtom("b"), trace))
	assert.False(t, reference.Accepts(ldlf.NewAtom("a"), nil), "an atom is never satisfied by the empty trace")
}

func Test_Accepts_DiamondTest(t *testing.T) {
	rho, err := ldlf.NewTest(ldlf.NewAtom("p"))
	require.NoError(t, err)
	f := ldlf.NewDiamond(rho, ldlf.True)

	assert.True(t, reference.Accepts(f, []reference.Letter{reference.NewLetter("p")}))
	assert.False(t, reference.Accepts(f, []reference.Letter{reference.NewLetter()}))
}

// traceToCubes converts a trace of reference.Letter into automaton.Cube
// values over the given alphabet, so the same concrete trace can be run
// through both the symbolic DFA and the direct small-step oracle.
func traceToCubes(alphabet []string, trace []reference.Letter) []automaton.Cube {
	cubes := make([]automaton.Cube, len(trace))
	for i, letter := range trace {
		var cube automaton.Cube
		for idx, name := range alphabet {
			if letter != nil {
				if _, ok := letter[name]; ok {
					cube = append(cube, idx)
				}
			}
		}
		cubes[i] = cube
	}
	return cubes
}

// randomFormula generates a bounded-depth LDLf formula over the fixed
// two-letter alphabet {a, b}, biased toward producing small, mostly
// well-formed structures typical of hand-written specifications.
func randomFormula(r *rand.Rand, depth int) ldlf.Formula {
	if depth <= 0 {
		return randomAtomOrConst(r)
	}
	switch r.Intn(6) {
	case 0:
		return randomAtomOrConst(r)
	case 1:
		return ldlf.NewNot(randomAtomOrConst(r))
	case 2:
		return ldlf.NewAnd(randomFormula(r, depth-1), randomFormula(r, depth-1))
	case 3:
		return ldlf.NewOr(randomFormula(r, depth-1), randomFormula(r, depth-1))
	case 4:
		rho := randomRegex(r, depth-1)
		return ldlf.NewDiamond(rho, randomFormula(r, depth-1))
	default:
		rho := randomRegex(r, depth-1)
		return ldlf.NewBox(rho, randomFormula(r, depth-1))
	}
}

func randomAtomOrConst(r *rand.Rand) ldlf.Formula {
	switch r.Intn(4) {
	case 0:
		return ldlf.True
	case 1:
		return ldlf.False
	case 2:
		return ldlf.NewAtom("a")
	default:
		return ldlf.NewAtom("b")
	}
}

func randomRegex(r *rand.Rand, depth int) ldlf.Regex {
	if depth <= 0 {
		return mustTest(randomAtomOrConst(r))
	}
	switch r.Intn(4) {
	case 0:
		return mustTest(randomFormula(r, 0))
	case 1:
		return ldlf.NewUnion(randomRegex(r, depth-1), randomRegex(r, depth-1))
	case 2:
		return ldlf.NewSeq(randomRegex(r, depth-1), randomRegex(r, depth-1))
	default:
		return ldlf.NewStar(randomRegex(r, depth-1))
	}
}

func mustTest(inner ldlf.Formula) ldlf.Regex {
	r, err := ldlf.NewTest(inner)
	if err != nil {
		// inner is always drawn from randomAtomOrConst/randomFormula(depth
		// 0), which never produces a Diamond/Box, so this cannot happen.
		panic(err)
	}
	return r
}

func randomTrace(r *rand.Rand, alphabet []string, length int) []reference.Letter {
	trace := make([]reference.Letter, length)
	for i := range trace {
		var atoms []string
		for _, name := range alphabet {
			if r.Intn(2) == 0 {
				atoms = append(atoms, name)
			}
		}
		trace[i] = reference.NewLetter(atoms...)
	}
	return trace
}

// Test_ToDFA_AgreesWithReferenceOracle is the property-based round-trip
// check spec §8 calls for: random formulas over {a, b}, random traces, and
// agreement between the compiled DFA's acceptance and the independent
// small-step oracle.
func Test_ToDFA_AgreesWithReferenceOracle(t *testing.T) {
	r := rand.New(rand.NewSource(20260731))
	alphabet := []string{"a", "b"}

	for trial := 0; trial < 200; trial++ {
		formula := randomFormula(r, 3)

		dfa, err := automaton.ToDFA(formula)
		require.NoError(t, err)

		for traceTrial := 0; traceTrial < 5; traceTrial++ {
			trace := randomTrace(r, alphabet, r.Intn(4))

			want := reference.Accepts(formula, trace)
			got := dfa.Accepts(traceToCubes(dfa.Alphabet(), trace))

			assert.Equal(t, want, got,
				"formula %s disagreed on trace %v: oracle=%v dfa=%v", formula, trace, want, got)
		}
	}
}
