package debian

import (
	"fmt"
	"strings"
)

// DuplicateSourceError is recorded when more than one package
// directory declares the same source name. The last one wins.
type DuplicateSourceError struct {
	Name  string
	Paths []string
}

func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("source %s is declared more than once: %s", e.Name, strings.Join(e.Paths, ", "))
}
