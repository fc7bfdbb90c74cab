package serialize

import (
	"fmt"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/rosed"
)

// reportWidth is the column width the transition-table report is wrapped
// to, matching the console width the teacher's in-game text uses.
const reportWidth = 80

// DumpTransitionTable renders d's state and transition data as a wrapped,
// human-readable report, for the ldlfc CLI's --dump flag.
func DumpTransitionTable(d *automaton.DFA) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "alphabet: %s\n", strings.Join(d.Alphabet(), ", "))
	fmt.Fprintf(&sb, "states: %d, initial: %d\n\n", d.NumStates(), d.InitialStateIndex())

	for i := 1; i <= d.NumStates(); i++ {
		final := ""
		if d.IsFinal(i) {
			final = " [final]"
		}
		fmt.Fprintf(&sb, "state %d%s\n", i, final)

		for _, t := range d.TransitionsFrom(i) {
			fmt.Fprintf(&sb, "    on %s -> state %d\n", cubeLabel(t.Cube, d.Alphabet()), t.Dst)
		}
	}

	return rosed.Edit(sb.String()).Wrap(reportWidth).String()
}

// cubeLabel renders a Cube as the set of atom names it asserts true, falling
// back to "{}" (every variable false) when the cube is empty.
func cubeLabel(cube automaton.Cube, alphabet []string) string {
	if len(cube) == 0 {
		return "{}"
	}
	names := make([]string, len(cube))
	for i, idx := range cube {
		names[i] = alphabet[idx]
	}
	return "{" + strings.Join(names, ",") + "}"
}
