package watch

import (
	"fmt"
	"regexp"
	"strings"
)

const OptionUpstreamVersionMangle = "uversionmangle"

var regexpBackref = regexp.MustCompile(`[\\$](\d)`)

// MangleVersion applies the uversionmangle option of the rule to an
// upstream version. Only substitution rules ("s/pattern/repl/flags")
// are supported. Multiple rules are separated by ";".
func (r *Rule) MangleVersion(v string) (string, error) {
	rules, ok := r.Options[OptionUpstreamVersionMangle]
	if !ok || rules == "" {
		return v, nil
	}
	for _, rule := range strings.Split(rules, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		var err error
		v, err = substitute(rule, v)
		if err != nil {
			return "", err
		}
	}
	return v, nil
}

func substitute(rule, s string) (string, error) {
	if len(rule) < 2 || rule[0] != 's' {
		return "", fmt.Errorf("unsupported mangle rule: %q", rule)
	}
	parts := splitRule(rule[2:], rule[1])
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed mangle rule: %q", rule)
	}
	re, err := regexp.Compile(parts[0])
	if err != nil {
		return "", fmt.Errorf("compiling mangle rule %q: %w", rule, err)
	}
	repl := regexpBackref.ReplaceAllString(parts[1], "$${$1}")

	if strings.Contains(parts[2], "g") {
		return re.ReplaceAllString(s, repl), nil
	}
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, nil
	}
	var out []byte
	out = append(out, s[:loc[0]]...)
	out = re.ExpandString(out, repl, s, loc)
	out = append(out, s[loc[1]:]...)
	return string(out), nil
}

// splitRule splits a substitution body on delim. A delimiter
// escaped with a backslash is kept as a literal character in
// both the pattern and the replacement.
func splitRule(s string, delim byte) []string {
	var (
		parts []string
		sb    strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == delim:
			if len(parts) == 0 {
				sb.WriteString(regexp.QuoteMeta(string(delim)))
			} else {
				sb.WriteByte(delim)
			}
			i++
		case s[i] == '\\' && i+1 < len(s):
			sb.WriteString(s[i : i+2])
			i++
		case s[i] == delim:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(s[i])
		}
	}
	return append(parts, sb.String())
}
