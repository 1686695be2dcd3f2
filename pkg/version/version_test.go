package version

import (
	"testing"

	debversion "github.com/knqyf263/go-deb-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var cases = []struct {
		in  string
		out Version
		ok  bool
	}{
		{"1.0", Version{Upstream: "1.0"}, true},
		{"1.2.3-4", Version{Upstream: "1.2.3", Revision: "4"}, true},
		{"1:0.5", Version{Epoch: 1, Upstream: "0.5"}, true},
		{"2:1.0-foo-1", Version{Epoch: 2, Upstream: "1.0-foo", Revision: "1"}, true},
		{"1:2:3-1", Version{Epoch: 1, Upstream: "2:3", Revision: "1"}, true},
		{"0.0.23.1-5+b1", Version{Upstream: "0.0.23.1", Revision: "5+b1"}, true},
		{"", Version{}, false},
		{"-1", Version{}, false},
		{"a:1.0", Version{}, false},
		{"1.0 beta", Version{}, false},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, err := Parse(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestVersion_String(t *testing.T) {
	for _, s := range []string{"1.0", "1:0.5", "2.4.1-3ubuntu1", "1:1.0~rc1-0.1"} {
		t.Run(s, func(t *testing.T) {
			assert.EqualValues(t, s, MustParse(s).String())
		})
	}
}

func TestCompare(t *testing.T) {
	var cases = []struct {
		a, b string
		out  int
	}{
		{"1.0~rc1", "1.0", -1},
		{"1.0", "1.0+git1", -1},
		{"1.0+git1", "1.1", -1},
		{"1:0.5", "2.0", 1},
		{"1.0-1", "1.0-2", -1},
		{"1.0", "1.0-0", 0},
		{"0:1.0", "1.0", 0},
		{"1.01", "1.1", 0},
		{"1.0~~", "1.0~", -1},
		{"1.0~", "1.0", -1},
		{"1.0a", "1.0+", -1},
		{"1.0a", "1.0.", -1},
		{"1.0", "1.0a", -1},
		{"4.10.2", "4.8.2", 1},
		{"1.2.3-4", "1.2.3-10", -1},
		{"123456789012345678901234567890", "123456789012345678901234567891", -1},
		{"1.0000000000000000000000000001", "1.1", 0},
		{"2.0-1", "2.0-1", 0},
		{"v1.2", "v1.10", -1},
		{"rc.1", "rc.2", -1},
		{"git20240101", "1.0", 1},
		{"1:v2.0-1", "1:v2.0-1", 0},
	}
	for _, tt := range cases {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a := MustParse(tt.a)
			b := MustParse(tt.b)
			assert.EqualValues(t, tt.out, Compare(a, b))
			assert.EqualValues(t, -tt.out, Compare(b, a))
			assert.EqualValues(t, tt.out == 0, a.Equal(b))
			assert.EqualValues(t, tt.out < 0, a.LessThan(b))
			assert.EqualValues(t, tt.out > 0, a.GreaterThan(b))
		})
	}
}

// the comparator must agree with an independent implementation
// for strictly ordered pairs
func TestCompare_MatchesDebVersion(t *testing.T) {
	var ordered = []string{
		"0.9",
		"1.0~alpha",
		"1.0~rc1",
		"1.0",
		"1.0-1",
		"1.0-1ubuntu1",
		"1.0-2",
		"1.0a",
		"1.0+git1",
		"1.0.1",
		"1.1",
		"1.10",
		"2.0",
		"1:0.5",
	}
	for i := 0; i < len(ordered)-1; i++ {
		for j := i + 1; j < len(ordered); j++ {
			a, b := ordered[i], ordered[j]
			t.Run(a+" < "+b, func(t *testing.T) {
				assert.EqualValues(t, -1, Compare(MustParse(a), MustParse(b)))

				oa, err := debversion.NewVersion(a)
				require.NoError(t, err)
				ob, err := debversion.NewVersion(b)
				require.NoError(t, err)
				assert.True(t, oa.LessThan(ob))
			})
		}
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	values := []string{"1.0", "1.0-0", "1.0~rc1", "1:0.1", "0.9", "1.0+b1", "1.0.0", "1.00", "1.0a", "1.0-1"}
	vs := make([]Version, len(values))
	for i := range values {
		vs[i] = MustParse(values[i])
	}
	for _, a := range vs {
		for _, b := range vs {
			ab := Compare(a, b)
			assert.EqualValues(t, -ab, Compare(b, a), "antisymmetry %s %s", a, b)
			for _, c := range vs {
				if ab <= 0 && Compare(b, c) <= 0 {
					assert.LessOrEqual(t, Compare(a, c), 0, "transitivity %s %s %s", a, b, c)
				}
			}
		}
	}
}

func TestSortDescending(t *testing.T) {
	vs := []Version{MustParse("1.0"), MustParse("2.0~rc1"), MustParse("1:0.1"), MustParse("2.0")}
	SortDescending(vs)
	assert.EqualValues(t, []string{"1:0.1", "2.0", "2.0~rc1", "1.0"}, []string{vs[0].String(), vs[1].String(), vs[2].String(), vs[3].String()})
}

func TestMax(t *testing.T) {
	_, ok := Max()
	assert.False(t, ok)

	first := Version{Upstream: "1.0"}
	second := Version{Upstream: "1.0", Revision: "0"}
	out, ok := Max(first, MustParse("0.5"), second)
	assert.True(t, ok)
	assert.EqualValues(t, first, out)
}
