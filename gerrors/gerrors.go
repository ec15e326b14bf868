// Package gerrors holds the typed construction errors raised while building
// a grammar or an LALR(1) parsing table. All construction errors are fatal
// (spec.md §7): callers surface them and do not retry or attempt recovery.
//
// Error wraps one or more cause errors the way server/serr does in the
// teacher this module is grounded on: a message plus a chain of sentinel
// causes usable with errors.Is.
package gerrors

import "errors"

var (
	// ErrIllFormedGrammar is the cause for any structural problem with a
	// grammar: an unknown symbol on some rhs, a missing start production,
	// or epsilon mixed with other symbols in one alternative.
	ErrIllFormedGrammar = errors.New("grammar is ill-formed")

	// ErrShiftReduceConflict is the cause for a shift/reduce conflict
	// discovered while synthesizing the ACTION table.
	ErrShiftReduceConflict = errors.New("shift/reduce conflict")

	// ErrReduceReduceConflict is the cause for a reduce/reduce conflict
	// discovered after LALR(1) state merging.
	ErrReduceReduceConflict = errors.New("reduce/reduce conflict")

	// ErrNotLALR1 is the cause used when table construction must abort
	// because the grammar is not LALR(1) (any conflict). A merge that
	// aliases two distinct targets panics instead (see lalr.Merge).
	ErrNotLALR1 = errors.New("grammar is not LALR(1)")
)

// Error is a message with zero or more cause errors. errors.Is(err, cause)
// returns true for any of Error's causes.
type Error struct {
	msg   string
	cause []error
}

// New creates an Error with the given message and causes. Causes may be
// omitted; providing them lets errors.Is match against well-known sentinels.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = append([]error(nil), causes...)
	}
	return e
}

// Error returns the message, with the first cause's message appended if one
// is set and msg is non-empty.
func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap exposes every cause to the errors package (Go 1.20+ multi-error
// Unwrap; see errors.Is fallback Is method below for 1.19).
func (e Error) Unwrap() []error {
	if len(e.cause) == 0 {
		return nil
	}
	return e.cause
}

// Is reports whether target equals, or is matched by errors.Is against, any
// of e's causes.
func (e Error) Is(target error) bool {
	for _, c := range e.cause {
		if c == target {
			return true
		}
		if errors.Is(c, target) {
			return true
		}
	}
	return false
}
