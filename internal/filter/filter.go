// Package filter applies optional city/state/amount/date predicates to a
// candidate set.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// Filter is an optional, independently specified predicate set. An empty
// or nil field means "no constraint". Predicates are pure and stateless
// and compose by logical AND, so application order is unobservable.
type Filter struct {
	City      string   // case-insensitive substring
	State     string   // case-insensitive exact
	MinAmount *float64 // inclusive
	MaxAmount *float64 // inclusive
	StartDate string   // packed MMDDYYYY; empty means unbounded
	EndDate   string   // packed MMDDYYYY; empty means unbounded
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.City == "" && f.State == "" &&
		f.MinAmount == nil && f.MaxAmount == nil &&
		f.StartDate == "" && f.EndDate == ""
}

// Apply returns the records that pass every set predicate.
func (f Filter) Apply(records []*model.Record) []*model.Record {
	if f.IsZero() {
		return records
	}

	out := make([]*model.Record, 0, len(records))
	for _, r := range records {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) match(r *model.Record) bool {
	if f.City != "" && !strings.Contains(strings.ToLower(r.City), strings.ToLower(f.City)) {
		return false
	}
	if f.State != "" && !strings.EqualFold(r.State, f.State) {
		return false
	}
	if f.MinAmount != nil && r.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && r.Amount > *f.MaxAmount {
		return false
	}
	// Date bounds compare the raw 8-character MMDDYYYY strings byte-wise.
	// That ordering is not chronological across month and year boundaries
	// ("02012019" sorts after "01152020"). Existing consumers depend on
	// the string ordering, so it is preserved as-is.
	if f.StartDate != "" && r.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && r.Date > f.EndDate {
		return false
	}
	return true
}

// ParseAmount converts a caller-supplied amount bound. Empty input means
// no bound; anything else must parse as a number or the caller gets
// ErrValidation — amount bounds are never silently dropped.
func ParseAmount(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	cleaned := strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, eris.Wrapf(model.ErrValidation, "filter: amount bound %q is not numeric", s)
	}
	return &v, nil
}

// dateLayouts are the calendar forms accepted for date bounds.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "01022006"}

// ParseDate converts a calendar date bound into the packed MMDDYYYY form
// the records carry. Unparseable input yields "" — the bound is skipped,
// not rejected. The asymmetry with amount bounds, which error out, is
// deliberate and preserved.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01022006")
		}
	}
	return ""
}
