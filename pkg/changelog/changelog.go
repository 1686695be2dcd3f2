package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/version"
	debchangelog "pault.ag/go/debian/changelog"
)

var regexpHeader = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9+.-]*\s+\([^()\s]+\)(?:\s+[A-Za-z0-9+./-]+)*\s*;.*$`)

var errNoEntry = errors.New("no changelog entry found")

// ParseError is returned when the first changelog entry cannot be
// read. Callers usually treat the version as unknown rather than
// failing.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("changelog line %d: %s: %s", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("changelog line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFirst parses the first entry in a Debian changelog, up to
// and including its trailer line. Later entries are not read.
//
// https://www.debian.org/doc/debian-policy/ch-source.html#debian-changelog-debian-changelog
func ReadFirst(r io.Reader) (*Entry, error) {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
		}
		if trimmed := strings.TrimRight(line, "\r\n \t"); trimmed != "" {
			// entry bodies and trailers are indented, so the first
			// non-blank line must be a header
			if trimmed[0] == ' ' || trimmed[0] == '\t' {
				return nil, &ParseError{Line: lineNo, Reason: "expected an entry header, found an indented line"}
			}
			if !regexpHeader.MatchString(trimmed) {
				return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("malformed entry header %q", trimmed)}
			}
			return parseEntry(io.MultiReader(strings.NewReader(trimmed+"\n"), br, strings.NewReader("\n")), lineNo)
		}
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Line: lineNo, Reason: "empty changelog", Err: errNoEntry}
		}
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: "reading changelog", Err: err}
		}
	}
}

// ReadVersion returns the version of the most recent
// changelog entry.
func ReadVersion(r io.Reader) (version.Version, error) {
	entry, err := ReadFirst(r)
	if err != nil {
		return version.Version{}, err
	}
	return entry.Version, nil
}

// parseEntry reads a single entry whose header is on line lineNo.
func parseEntry(r io.Reader, lineNo int) (*Entry, error) {
	entry, err := debchangelog.ParseOne(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Line: lineNo, Reason: "entry has no trailer line", Err: err}
		}
		return nil, &ParseError{Line: lineNo, Reason: "invalid entry", Err: err}
	}
	v, err := version.Parse(entry.Version.String())
	if err != nil {
		return nil, &ParseError{Line: lineNo, Reason: "invalid version", Err: err}
	}
	out := &Entry{
		Source:        entry.Source,
		Version:       v,
		Distributions: strings.Fields(entry.Target),
	}
	for k, val := range entry.Arguments {
		if strings.EqualFold(k, "urgency") {
			out.Urgency = val
		}
	}
	return out, nil
}
