package airutil

import "github.com/drone/envsubst"

// ExpandEnv substitutes environment variables in s using
// shell syntax (e.g. "${HOME}" or "${MIRROR:-http://localhost}").
// Values that cannot be expanded become empty.
func ExpandEnv(s string) string {
	val, _ := envsubst.EvalEnv(s)
	return val
}
