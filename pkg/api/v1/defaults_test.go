package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanSpec_Expand(t *testing.T) {
	t.Setenv("MIRROR", "https://mirror.aarnet.edu.au/pub/debian")
	t.Setenv("SRC", "/home/builder/src")

	spec := ScanSpec{
		Root: "${SRC}/kde",
		Repositories: []Repository{
			{URL: "${MIRROR}", Release: "bookworm"},
			{URL: "https://deb.debian.org/debian", Release: "sid", Components: []string{"main", "contrib"}, Arch: "arm64"},
		},
		Indices: []string{"$SRC/Packages.gz"},
	}
	spec.Expand()

	assert.EqualValues(t, "/home/builder/src/kde", spec.Root)
	assert.EqualValues(t, []string{"/home/builder/src/Packages.gz"}, spec.Indices)
	assert.EqualValues(t, Repository{
		URL:        "https://mirror.aarnet.edu.au/pub/debian",
		Release:    "bookworm",
		Components: []string{DefaultComponent},
		Arch:       DefaultArch,
	}, spec.Repositories[0])
	assert.EqualValues(t, []string{"main", "contrib"}, spec.Repositories[1].Components)
	assert.EqualValues(t, "arm64", spec.Repositories[1].Arch)
}
