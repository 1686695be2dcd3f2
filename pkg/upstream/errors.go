package upstream

import "fmt"

// NoCandidateError is returned when nothing in a directory
// matches the pattern of a watch rule.
type NoCandidateError struct {
	Path    string
	Pattern string
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("no upstream candidate matching %q in %s", e.Pattern, e.Path)
}
