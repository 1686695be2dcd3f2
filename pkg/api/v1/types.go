package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

type ScanSpec struct {
	// Root is the directory containing the unpacked
	// source packages and released .dsc files.
	Root         string       `json:"root"`
	Repositories []Repository `json:"repositories,omitempty"`
	// Indices are binary package indices (Packages files) to read.
	// Remote indices are downloaded into the cache.
	Indices  []string     `json:"indices,omitempty"`
	Upstream UpstreamSpec `json:"upstream,omitempty"`
}

// Repository is a Debian repository whose binary package
// indices are compared against the sources.
type Repository struct {
	URL        string   `json:"url"`
	Release    string   `json:"release"`
	Components []string `json:"components,omitempty"`
	Arch       string   `json:"arch,omitempty"`
}

type UpstreamSpec struct {
	// Downloads is a local directory to search for upstream
	// releases instead of the locations named by watch files.
	Downloads   string          `json:"downloads,omitempty"`
	Timeout     metav1.Duration `json:"timeout,omitempty"`
	Retries     int             `json:"retries,omitempty"`
	Concurrency int             `json:"concurrency,omitempty"`
}

type Scan struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ScanSpec `json:"spec"`
}
