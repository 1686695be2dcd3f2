package debian

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	a, err := ReadIndex(ctx, "a", strings.NewReader("Package: foo\nVersion: 1.0\n"))
	require.NoError(t, err)
	b, err := ReadIndex(ctx, "b", strings.NewReader("Package: bar\nVersion: 2.0\n\nPackage: foo\nVersion: 1.1\n"))
	require.NoError(t, err)

	out := Merge(a, nil, b)
	require.Len(t, out, 3)
	assert.EqualValues(t, "foo", out[0].Binary)
	assert.EqualValues(t, "bar", out[1].Binary)
	assert.EqualValues(t, "1.1", out[2].Version.String())
}
