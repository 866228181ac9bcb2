package dot

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every parse failure
var ErrMalformed = errors.New("malformed DOT graph")

// ParseError describes why a DOT document was rejected. No partial graph is
// ever returned alongside it.
type ParseError struct {
	Statement int    // 1-based statement index inside the braces, 0 for document-level errors
	Text      string // offending statement, trimmed
	Reason    string
	Cause     error // optional underlying error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	if e.Statement == 0 {
		return fmt.Sprintf("parse DOT: %s", msg)
	}
	return fmt.Sprintf("parse DOT: statement %d %q: %s", e.Statement, e.Text, msg)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is makes every ParseError match ErrMalformed.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}
