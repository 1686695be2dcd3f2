package control

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineLength = 1024 * 1024

// Parse reads every paragraph from a control document. Continuation
// lines are folded into the previous field, separated by a newline.
// A continuation line consisting of a single "." becomes an empty
// line.
//
// Parse is used for debian/control files, which keep field order
// and reject duplicate fields.
func Parse(r io.Reader) ([]Paragraph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var (
		out     []Paragraph
		current *Paragraph
		field   string
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == "":
			if current != nil {
				out = append(out, *current)
				current = nil
				field = ""
			}
		case line[0] == ' ' || line[0] == '\t':
			if current == nil || field == "" {
				return nil, &MalformedError{Line: lineNo, Reason: "continuation line outside of a field"}
			}
			content := line[1:]
			if strings.TrimSpace(content) == "." {
				content = ""
			}
			current.values[strings.ToLower(field)] += "\n" + content
		case line[0] == '#':
			continue
		default:
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				return nil, &MalformedError{Line: lineNo, Reason: "missing ':' after field name"}
			}
			if name == "" || strings.ContainsAny(name, " \t") {
				return nil, &MalformedError{Line: lineNo, Reason: fmt.Sprintf("invalid field name %q", name)}
			}
			if current == nil {
				current = &Paragraph{}
			}
			if _, exists := current.Lookup(name); exists {
				return nil, &MalformedError{Line: lineNo, Reason: fmt.Sprintf("duplicate field %q", name)}
			}
			current.Set(name, strings.TrimSpace(value))
			field = name
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading control data: %w", err)
	}
	if current != nil {
		out = append(out, *current)
	}
	return out, nil
}

// Write serialises paragraphs separated by blank lines.
func Write(w io.Writer, paragraphs []Paragraph) error {
	for i := range paragraphs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := paragraphs[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
