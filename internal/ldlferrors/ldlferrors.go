// Package ldlferrors defines the two error kinds the LDLf-to-DFA core can
// raise, per the core's error handling design: MalformedFormula for
// well-formedness violations discovered while normalizing or unfolding a
// formula, and InternalInvariant for canonicalization/ordering/hash bugs
// that should never happen. Both are fatal for the call that raised them.
//
// The shape mirrors internal/tqerrors: exported constructor functions
// returning a private type that implements error and Unwrap, so callers
// use errors.Is/errors.As rather than type-switching directly.
package ldlferrors

import (
	"errors"
	"fmt"
)

// Kind distinguishes the two error categories the core can raise.
type Kind int

const (
	// KindMalformed marks an AST that violates an NNF-ability or
	// propositional-fragment precondition, discovered while normalizing
	// or unfolding a formula.
	KindMalformed Kind = iota

	// KindInternal marks a canonicalization, ordering, or hash mismatch:
	// a bug in the core, not a problem with caller input.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "MalformedFormula"
	case KindInternal:
		return "InternalInvariant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned (or panicked, for KindInternal) by the
// core.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

func (e *Error) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.wrap)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap gives the error that this Error wraps, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Kind returns the error category.
func (e *Error) Kind() Kind {
	return e.kind
}

// Malformed returns a new MalformedFormula error with the given message.
func Malformed(format string, a ...interface{}) error {
	return &Error{kind: KindMalformed, msg: fmt.Sprintf(format, a...)}
}

// WrapMalformed is like Malformed but also records a wrapped cause.
func WrapMalformed(cause error, format string, a ...interface{}) error {
	return &Error{kind: KindMalformed, msg: fmt.Sprintf(format, a...), wrap: cause}
}

// Internal returns a new InternalInvariant error with the given message.
// Callers that detect a broken invariant should panic with this value
// rather than return it, since it indicates a bug rather than a
// recoverable condition; top-level entry points recover it at the call
// boundary and convert it back into a returned error.
func Internal(format string, a ...interface{}) error {
	return &Error{kind: KindInternal, msg: fmt.Sprintf(format, a...)}
}

// IsMalformed reports whether err is, or wraps, a MalformedFormula error.
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == KindMalformed
}

// IsInternal reports whether err is, or wraps, an InternalInvariant error.
func IsInternal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == KindInternal
}

// Recover converts a panic value raised with an InternalInvariant Error
// into a returned error via *errp. It re-panics any other value so that
// genuine bugs outside the core's own invariant checks are not silently
// swallowed. Call as `defer ldlferrors.Recover(&err)` in entry points such
// as automaton.ToDFA.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok && e.kind == KindInternal {
		*errp = e
		return
	}
	panic(r)
}
