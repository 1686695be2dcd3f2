package control

import "fmt"

// MalformedError is returned when a control document violates
// the paragraph structure. The whole document is rejected.
type MalformedError struct {
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed control data at line %d: %s", e.Line, e.Reason)
}

// RelationError is returned when a relationship field cannot
// be decomposed.
type RelationError struct {
	Value string
	Err   error
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("parsing relationship %q: %s", e.Value, e.Err)
}

func (e *RelationError) Unwrap() error {
	return e.Err
}
