package control

import "github.com/djcass44/pkgwatch/pkg/version"

// Paragraph is a single stanza of a control file. Field names keep
// their original case but are looked up case-insensitively.
type Paragraph struct {
	keys   []string
	values map[string]string
}

// Operator is a version relation used in a relationship field.
type Operator string

const (
	OpEarlier      Operator = "<<"
	OpEarlierEqual Operator = "<="
	OpEqual        Operator = "="
	OpLaterEqual   Operator = ">="
	OpLater        Operator = ">>"
)

type Constraint struct {
	Operator Operator
	Version  version.Version
}

// Term is a single package reference inside a relationship
// field, e.g. "libfoo-dev (>= 1.2)".
type Term struct {
	Name       string
	Constraint *Constraint
}

// Relation is one comma-separated item of a relationship field.
// Any of its alternatives satisfies it.
type Relation struct {
	Alternatives []Term
}
