package control

import (
	"errors"
	"testing"

	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelations(t *testing.T) {
	out, err := ParseRelations("libfoo (>= 1.2), libbar | libbaz (<< 2.0)")
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Len(t, out[0].Alternatives, 1)
	assert.EqualValues(t, "libfoo", out[0].Alternatives[0].Name)
	require.NotNil(t, out[0].Alternatives[0].Constraint)
	assert.EqualValues(t, OpLaterEqual, out[0].Alternatives[0].Constraint.Operator)
	assert.EqualValues(t, version.MustParse("1.2"), out[0].Alternatives[0].Constraint.Version)

	require.Len(t, out[1].Alternatives, 2)
	assert.EqualValues(t, "libbar", out[1].Alternatives[0].Name)
	assert.Nil(t, out[1].Alternatives[0].Constraint)
	assert.EqualValues(t, "libbaz", out[1].Alternatives[1].Name)
	require.NotNil(t, out[1].Alternatives[1].Constraint)
	assert.EqualValues(t, OpEarlier, out[1].Alternatives[1].Constraint.Operator)
	assert.EqualValues(t, "2.0", out[1].Alternatives[1].Constraint.Version.String())
}

func TestParseRelations_Cases(t *testing.T) {
	var cases = []struct {
		in    string
		names [][]string
	}{
		{"", nil},
		{"foo [i386]", [][]string{{"foo"}}},
		{"foo [!amd64], bar,", [][]string{{"foo"}, {"bar"}}},
		{"debhelper (>= 9),\n cmake,\n libqt4-dev | libqt4-dev-bin", [][]string{{"debhelper"}, {"cmake"}, {"libqt4-dev", "libqt4-dev-bin"}}},
		{"${misc:Depends}, foo", [][]string{{"foo"}}},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, err := ParseRelations(tt.in)
			require.NoError(t, err)
			var names [][]string
			for _, r := range out {
				names = append(names, r.Names())
			}
			assert.EqualValues(t, tt.names, names)
		})
	}
}

func TestParseRelations_BadVersion(t *testing.T) {
	_, err := ParseRelations("foo (>= )")
	var rerr *RelationError
	assert.True(t, errors.As(err, &rerr))
}

func TestParagraph_Relations(t *testing.T) {
	p := Paragraph{}
	p.Set("Build-Depends", "debhelper (>= 9), cmake")

	out, err := p.Relations("build-depends")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = p.Relations("Build-Depends-Indep")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestTerm_SatisfiedBy(t *testing.T) {
	var cases = []struct {
		term string
		v    string
		ok   bool
	}{
		{"foo", "1.0", true},
		{"foo (<< 2.0)", "1.9", true},
		{"foo (<< 2.0)", "2.0", false},
		{"foo (<= 2.0)", "2.0", true},
		{"foo (= 2.0)", "2.0-0", true},
		{"foo (>= 0.0.23.1)", "0.0.23.1-1.1", true},
		{"foo (>> 2.0)", "2.0", false},
		{"foo (>> 2.0)", "2.0+b1", true},
	}
	for _, tt := range cases {
		t.Run(tt.term+" "+tt.v, func(t *testing.T) {
			rel, err := ParseRelations(tt.term)
			require.NoError(t, err)
			require.Len(t, rel, 1)
			assert.EqualValues(t, tt.ok, rel[0].Alternatives[0].SatisfiedBy(version.MustParse(tt.v)))
		})
	}
}

func TestRelation_String(t *testing.T) {
	out, err := ParseRelations("libbar | libbaz (<< 2.0)")
	require.NoError(t, err)
	assert.EqualValues(t, "libbar | libbaz (<< 2.0)", out[0].String())
}
