// Package index answers exact-substring and fuzzy token queries against
// the normalized names of the immutable record set.
package index

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/normalize"
)

// Options tunes fuzzy matching.
type Options struct {
	// Threshold is the minimum similarity ratio for two tokens to count
	// as a fuzzy match. Looser (lower) values return more results.
	Threshold float64
	// MinTokenLen is the shortest query token used for filtering; shorter
	// tokens do not constrain the match at all.
	MinTokenLen int
	// MaxCandidates caps how many records the fuzzy stage may return,
	// applied before any other filter. Bulk runs multiply fuzzy cost by
	// up to a thousand input names, so the cap is a hard contract.
	MaxCandidates int
}

// DefaultOptions returns the tuning the dataset ships with.
func DefaultOptions() Options {
	return Options{Threshold: 0.7, MinTokenLen: 2, MaxCandidates: 1000}
}

// Index holds the record set and serves lookups. It is built once at load
// time, read-only afterwards, and safe for unlimited concurrent readers.
type Index struct {
	records []*model.Record
	tokens  [][]string // normalized-name tokens, parallel to records
	opts    Options
}

// New builds an index over records. Every record must already carry its
// NormalizedName (the ingest collaborator guarantees this).
func New(records []*model.Record, opts Options) *Index {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultOptions().Threshold
	}
	if opts.MinTokenLen <= 0 {
		opts.MinTokenLen = DefaultOptions().MinTokenLen
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultOptions().MaxCandidates
	}

	tokens := make([][]string, len(records))
	for i, r := range records {
		tokens[i] = strings.Fields(r.NormalizedName)
	}
	return &Index{records: records, tokens: tokens, opts: opts}
}

// Records returns the full record set backing the index.
func (ix *Index) Records() []*model.Record { return ix.records }

// Exact returns every record whose normalized name contains the
// normalized query as a substring, in record-set order.
func (ix *Index) Exact(query string) []*model.Record {
	q := normalize.Name(query)
	if q == "" {
		return nil
	}

	var out []*model.Record
	for _, r := range ix.records {
		if strings.Contains(r.NormalizedName, q) {
			out = append(out, r)
		}
	}
	return out
}

// Fuzzy splits the normalized query on whitespace and returns records
// where every usable token approximately matches somewhere in the
// record's normalized name — conjunctive over tokens, not a whole-string
// score. At most MaxCandidates records are returned, in record-set order,
// so results are deterministic. A query with no usable tokens matches
// nothing.
func (ix *Index) Fuzzy(query string) []*model.Record {
	q := normalize.Name(query)
	if q == "" {
		return nil
	}

	var qTokens []string
	for _, t := range strings.Fields(q) {
		if len(t) >= ix.opts.MinTokenLen {
			qTokens = append(qTokens, t)
		}
	}
	if len(qTokens) == 0 {
		return nil
	}

	var out []*model.Record
	for i, r := range ix.records {
		if ix.matchesAll(qTokens, r.NormalizedName, ix.tokens[i]) {
			out = append(out, r)
			if len(out) >= ix.opts.MaxCandidates {
				break
			}
		}
	}
	return out
}

func (ix *Index) matchesAll(qTokens []string, name string, nameTokens []string) bool {
	for _, qt := range qTokens {
		if !ix.tokenMatches(qt, name, nameTokens) {
			return false
		}
	}
	return true
}

// tokenMatches reports whether a single query token is present in the
// name: either as a literal substring, or within edit distance of some
// name token.
func (ix *Index) tokenMatches(qt, name string, nameTokens []string) bool {
	if strings.Contains(name, qt) {
		return true
	}
	for _, nt := range nameTokens {
		if similarity(qt, nt) >= ix.opts.Threshold {
			return true
		}
	}
	return false
}

// similarity converts Levenshtein distance into a 0..1 ratio.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
