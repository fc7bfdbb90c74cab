// Package serialize turns a compiled automaton.DFA into bytes for
// internal/store's sqlite cache and the ldlfc CLI's --out flag, and back
// again, using github.com/dekarrin/rezi the same way server/dao/sqlite uses
// it to persist game.State: reflection-based binary encoding of a plain
// exported struct, with no hand-rolled wire format of our own.
package serialize

import (
	"fmt"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/rezi"
)

// EncodeDFA binary-encodes d's Snapshot for storage or transport.
func EncodeDFA(d *automaton.DFA) []byte {
	return rezi.EncBinary(d.Snapshot())
}

// DecodeDFA reverses EncodeDFA, reconstructing a DFA equivalent to the one
// that produced data (same states, alphabet, and transitions; no NFA-level
// debug detail, per automaton.FromSnapshot).
func DecodeDFA(data []byte) (*automaton.DFA, error) {
	var snap automaton.Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return nil, fmt.Errorf("serialize: decode DFA: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("serialize: decode DFA: consumed %d/%d bytes", n, len(data))
	}
	d, err := automaton.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("serialize: rebuild DFA from snapshot: %w", err)
	}
	return d, nil
}
