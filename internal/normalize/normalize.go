// Package normalize produces the canonical comparison key shared by the
// ingest path and the query path, so the index and query-time
// normalization can never drift apart.
package normalize

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace = regexp.MustCompile(`\s+`)
)

// Name lowercases raw, strips every character outside [a-z0-9] and
// whitespace, collapses whitespace runs to a single space, and trims.
// Total and idempotent: defined for every string, and
// Name(Name(s)) == Name(s).
func Name(raw string) string {
	n := strings.ToLower(raw)
	n = nonAlnum.ReplaceAllString(n, "")
	n = multiSpace.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}
