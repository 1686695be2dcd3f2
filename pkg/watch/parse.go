package watch

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	prefixVersion = "version="
	prefixOptions = "opts="
)

// Parse reads a debian/watch file and returns one rule per
// logical line.
//
// https://manpages.debian.org/uscan#WATCH_FILE_VERSION_3
func Parse(r io.Reader) ([]Rule, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoRule
	}

	// files without a version line are version 1
	watchVersion := 1
	if strings.HasPrefix(lines[0], prefixVersion) {
		watchVersion, err = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(lines[0], prefixVersion)))
		if err != nil {
			return nil, fmt.Errorf("parsing watch file version: %w", err)
		}
		lines = lines[1:]
	}
	if watchVersion != SupportedVersion {
		return nil, &UnsupportedVersionError{Version: watchVersion}
	}
	if len(lines) == 0 {
		return nil, ErrNoRule
	}

	rules := make([]Rule, 0, len(lines))
	for _, line := range lines {
		rule, err := parseRule(line)
		if err != nil {
			return nil, err
		}
		rule.Version = watchVersion
		rules = append(rules, *rule)
	}
	return rules, nil
}

// readLines returns the logical lines of a watch file. Physical
// lines are trimmed, blank lines and comments are dropped and a
// trailing backslash joins a line with the next one.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	continued := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if continued {
			lines[len(lines)-1] += line
		} else {
			lines = append(lines, line)
		}
		continued = strings.HasSuffix(line, `\`)
		if continued {
			last := lines[len(lines)-1]
			lines[len(lines)-1] = last[:len(last)-1]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading watch file: %w", err)
	}
	return lines, nil
}

func parseRule(line string) (*Rule, error) {
	rule := &Rule{
		Options: map[string]string{},
	}
	if strings.HasPrefix(line, prefixOptions) {
		opts, rest, err := cutOptions(strings.TrimPrefix(line, prefixOptions))
		if err != nil {
			return nil, err
		}
		rule.Options = parseOptions(opts)
		line = rest
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("watch line has no url: %q", line)
	}
	if err := rule.setTemplate(fields[0]); err != nil {
		return nil, err
	}
	if len(fields) > 1 {
		rule.Regex = fields[1]
	}
	if len(fields) > 2 {
		rule.Action = fields[2]
	}
	return rule, nil
}

// cutOptions separates the option list from the rest of the line.
// The list may be quoted, in which case it can contain spaces.
func cutOptions(s string) (string, string, error) {
	if strings.HasPrefix(s, `"`) {
		opts, rest, ok := strings.Cut(s[1:], `"`)
		if !ok {
			return "", "", fmt.Errorf("unterminated quoted options: %q", s)
		}
		return opts, rest, nil
	}
	opts, rest, _ := strings.Cut(s, " ")
	return opts, rest, nil
}

func parseOptions(s string) map[string]string {
	out := map[string]string{}
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		k, v, ok := strings.Cut(o, "=")
		if !ok {
			v = k
		}
		out[k] = v
	}
	return out
}

// setTemplate splits the url into its scheme and host, the directory
// prefix and the filename pattern. The path is not url-decoded since
// it contains regular expressions.
func (r *Rule) setTemplate(s string) error {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || scheme == "" {
		return fmt.Errorf("watch url has no scheme: %q", s)
	}
	host, path, _ := strings.Cut(rest, "/")
	path = "/" + path

	last := strings.LastIndex(path, "/")
	r.Template = s
	r.URL = &url.URL{Scheme: scheme, Host: host}
	r.PathPrefix = path[:last]
	r.FilenamePattern = path[last+1:]
	return nil
}

func (r *Rule) String() string {
	return r.Template
}

// Pattern returns the pattern that release filenames must match. A
// template ending in "/" takes its pattern from the next token.
func (r *Rule) Pattern() string {
	if r.FilenamePattern == "" {
		return r.Regex
	}
	return r.FilenamePattern
}

// FilenameRegexp compiles the filename pattern so that it must
// match a whole filename.
func (r *Rule) FilenameRegexp() (*regexp.Regexp, error) {
	return CompilePattern(r.Pattern())
}

// CompilePattern compiles a watch pattern anchored at
// both ends.
func CompilePattern(s string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + s + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", s, err)
	}
	return re, nil
}

// HasGroup returns true if the path segment contains a
// capturing group.
func HasGroup(segment string) bool {
	return strings.Contains(segment, "(")
}
