package control

import (
	"io"
	"strings"
)

// Get returns the value of a field, or an empty string
// if it is not set.
func (p *Paragraph) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

func (p *Paragraph) Lookup(key string) (string, bool) {
	if p.values == nil {
		return "", false
	}
	v, ok := p.values[strings.ToLower(key)]
	return v, ok
}

// Set adds or replaces a field. New fields are appended to
// the end of the paragraph.
func (p *Paragraph) Set(key, value string) {
	if p.values == nil {
		p.values = map[string]string{}
	}
	k := strings.ToLower(key)
	if _, ok := p.values[k]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[k] = value
}

// Keys returns the field names in the order they
// were defined.
func (p *Paragraph) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *Paragraph) Len() int {
	return len(p.keys)
}

// WriteTo serialises the paragraph without a trailing blank line.
func (p *Paragraph) WriteTo(w io.Writer) (int64, error) {
	sb := strings.Builder{}
	for _, k := range p.keys {
		lines := strings.Split(p.values[strings.ToLower(k)], "\n")
		sb.WriteString(k)
		sb.WriteString(":")
		if lines[0] != "" {
			sb.WriteString(" ")
			sb.WriteString(lines[0])
		}
		sb.WriteString("\n")
		for _, l := range lines[1:] {
			if l == "" {
				l = "."
			}
			sb.WriteString(" ")
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (p *Paragraph) String() string {
	sb := strings.Builder{}
	_, _ = p.WriteTo(&sb)
	return sb.String()
}

// Relations decomposes a relationship field of the paragraph. A
// missing field yields no relations.
func (p *Paragraph) Relations(key string) ([]Relation, error) {
	return ParseRelations(p.Get(key))
}
