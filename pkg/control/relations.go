package control

import (
	"fmt"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/version"
	"pault.ag/go/debian/dependency"
)

// RelationshipFields lists the fields that hold package
// relationships rather than free text.
var RelationshipFields = []string{
	"Build-Depends",
	"Build-Depends-Indep",
	"Build-Depends-Arch",
	"Build-Conflicts",
	"Depends",
	"Pre-Depends",
	"Recommends",
	"Suggests",
	"Conflicts",
	"Breaks",
	"Provides",
}

// BuildFields are the relationship fields of a source stanza
// that must be satisfied to build it.
var BuildFields = []string{
	"Build-Depends",
	"Build-Depends-Indep",
	"Build-Depends-Arch",
}

// ParseRelations decomposes a relationship field, e.g.
// "libfoo (>= 1.2), libbar | libbaz (<< 2.0)", into its
// comma-separated groups and their alternatives. Architecture
// qualifiers and build profiles are accepted but dropped.
//
// https://www.debian.org/doc/debian-policy/ch-relationships.html
func ParseRelations(s string) ([]Relation, error) {
	var out []Relation
	for _, group := range strings.Split(s, ",") {
		// folded fields keep their newlines
		group = strings.Join(strings.Fields(group), " ")
		if group == "" {
			continue
		}
		dep, err := dependency.Parse(group)
		if err != nil {
			return nil, &RelationError{Value: group, Err: err}
		}
		for _, rel := range dep.Relations {
			relation, err := newRelation(rel)
			if err != nil {
				return nil, &RelationError{Value: group, Err: err}
			}
			if len(relation.Alternatives) > 0 {
				out = append(out, relation)
			}
		}
	}
	return out, nil
}

func newRelation(rel dependency.Relation) (Relation, error) {
	var out Relation
	for _, p := range rel.Possibilities {
		// substitution variables (e.g. ${misc:Depends}) are
		// not package names
		if p.Substvar {
			continue
		}
		term := Term{Name: p.Name}
		if p.Version != nil {
			op := Operator(p.Version.Operator)
			switch op {
			case OpEarlier, OpEarlierEqual, OpEqual, OpLaterEqual, OpLater:
			default:
				return Relation{}, fmt.Errorf("unsupported operator %q", p.Version.Operator)
			}
			v, err := version.Parse(p.Version.Number)
			if err != nil {
				return Relation{}, fmt.Errorf("parsing version of %s: %w", p.Name, err)
			}
			term.Constraint = &Constraint{
				Operator: op,
				Version:  v,
			}
		}
		out.Alternatives = append(out.Alternatives, term)
	}
	return out, nil
}

// Names returns the package names of every alternative.
func (r Relation) Names() []string {
	out := make([]string, len(r.Alternatives))
	for i := range r.Alternatives {
		out[i] = r.Alternatives[i].Name
	}
	return out
}

func (r Relation) String() string {
	parts := make([]string, len(r.Alternatives))
	for i := range r.Alternatives {
		parts[i] = r.Alternatives[i].String()
	}
	return strings.Join(parts, " | ")
}

func (t Term) String() string {
	if t.Constraint == nil {
		return t.Name
	}
	return fmt.Sprintf("%s (%s %s)", t.Name, t.Constraint.Operator, t.Constraint.Version)
}

// SatisfiedBy returns true if v meets the version constraint
// of the term. A term without a constraint accepts any version.
func (t Term) SatisfiedBy(v version.Version) bool {
	if t.Constraint == nil {
		return true
	}
	c := version.Compare(v, t.Constraint.Version)
	switch t.Constraint.Operator {
	case OpEarlier:
		return c < 0
	case OpEarlierEqual:
		return c <= 0
	case OpEqual:
		return c == 0
	case OpLaterEqual:
		return c >= 0
	case OpLater:
		return c > 0
	default:
		return false
	}
}
