package ldlf

import "sort"

// FindAtoms returns the alphabet Σ referenced by f: every real
// propositional atom occurring anywhere in f, including inside the
// propositional tests of its embedded regular expressions, sorted
// lexically to fix a deterministic index assignment (spec §4.6 step 2
// requires "an arbitrary total order on Σ"; lexical order is a stable,
// reproducible choice of that arbitrary order).
func FindAtoms(f Formula) []string {
	seen := map[string]struct{}{}
	walkFormula(f, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func walkFormula(f Formula, seen map[string]struct{}) {
	switch v := f.(type) {
	case trueFormula, falseFormula:
		// no atoms
	case AtomFormula:
		seen[v.Name] = struct{}{}
	case NotFormula:
		walkFormula(v.Operand, seen)
	case AndFormula:
		for _, o := range v.Operands.Elements() {
			walkFormula(o, seen)
		}
	case OrFormula:
		for _, o := range v.Operands.Elements() {
			walkFormula(o, seen)
		}
	case DiamondFormula:
		walkRegex(v.Regex, seen)
		walkFormula(v.Operand, seen)
	case BoxFormula:
		walkRegex(v.Regex, seen)
		walkFormula(v.Operand, seen)
	}
}

func walkRegex(r Regex, seen map[string]struct{}) {
	switch v := r.(type) {
	case TestRegex:
		walkFormula(v.Inner, seen)
	case UnionRegex:
		for _, o := range v.Operands {
			walkRegex(o, seen)
		}
	case SeqRegex:
		for _, o := range v.Operands {
			walkRegex(o, seen)
		}
	case StarRegex:
		walkRegex(v.Operand, seen)
	}
}
