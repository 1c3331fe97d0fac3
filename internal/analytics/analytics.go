// Package analytics computes one-shot batch statistics over the full
// record set. It reads the same immutable slice as the search path and
// shares no mutable state with it.
package analytics

import (
	"sort"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// Risk bucket boundaries: average contribution per unique contributor.
const (
	highRiskAbove   = 5000.0
	mediumRiskAbove = 1000.0
)

const topContributionCount = 10

// MonthBucket is one year-month of contribution volume.
type MonthBucket struct {
	Month  string  `json:"month"` // YYYY-MM
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// StateBucket is one state's share of the record set.
type StateBucket struct {
	State  string  `json:"state"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// RiskBuckets counts unique contributors by average contribution size.
type RiskBuckets struct {
	High   int `json:"high"`   // average > 5000
	Medium int `json:"medium"` // average > 1000
	Low    int `json:"low"`
}

// Summary is the full batch reduction.
type Summary struct {
	TotalRecords       int             `json:"total_records"`
	TotalAmount        float64         `json:"total_amount"`
	AverageAmount      float64         `json:"average_amount"`
	UniqueContributors int             `json:"unique_contributors"`
	MonthlyTrend       []MonthBucket   `json:"monthly_trend"`
	TrendChangePct     float64         `json:"trend_change_pct"`
	ByState            []StateBucket   `json:"by_state"`
	Risk               RiskBuckets     `json:"risk"`
	TopContributions   []*model.Record `json:"top_contributions"`
}

// Compute reduces the full record set. Contributor identity is the exact
// name string, consistent with the aggregation path.
func Compute(records []*model.Record) Summary {
	s := Summary{TotalRecords: len(records)}

	type contributorTotals struct {
		count  int
		amount float64
	}
	contributors := make(map[string]*contributorTotals)
	months := make(map[string]*MonthBucket)
	states := make(map[string]*StateBucket)

	for _, r := range records {
		s.TotalAmount += r.Amount

		ct, ok := contributors[r.Name]
		if !ok {
			ct = &contributorTotals{}
			contributors[r.Name] = ct
		}
		ct.count++
		ct.amount += r.Amount

		if key, ok := monthKey(r.Date); ok {
			mb, ok := months[key]
			if !ok {
				mb = &MonthBucket{Month: key}
				months[key] = mb
			}
			mb.Count++
			mb.Amount += r.Amount
		}

		if r.State != "" {
			sb, ok := states[r.State]
			if !ok {
				sb = &StateBucket{State: r.State}
				states[r.State] = sb
			}
			sb.Count++
			sb.Amount += r.Amount
		}
	}

	if s.TotalRecords > 0 {
		s.AverageAmount = s.TotalAmount / float64(s.TotalRecords)
	}
	s.UniqueContributors = len(contributors)

	for _, mb := range months {
		s.MonthlyTrend = append(s.MonthlyTrend, *mb)
	}
	// YYYY-MM keys sort chronologically as plain strings.
	sort.Slice(s.MonthlyTrend, func(i, j int) bool { return s.MonthlyTrend[i].Month < s.MonthlyTrend[j].Month })
	s.TrendChangePct = trendChange(s.MonthlyTrend)

	for _, sb := range states {
		s.ByState = append(s.ByState, *sb)
	}
	sort.Slice(s.ByState, func(i, j int) bool {
		if s.ByState[i].Count != s.ByState[j].Count {
			return s.ByState[i].Count > s.ByState[j].Count
		}
		return s.ByState[i].State < s.ByState[j].State
	})

	for _, ct := range contributors {
		avg := ct.amount / float64(ct.count)
		switch {
		case avg > highRiskAbove:
			s.Risk.High++
		case avg > mediumRiskAbove:
			s.Risk.Medium++
		default:
			s.Risk.Low++
		}
	}

	s.TopContributions = topByAmount(records, topContributionCount)
	return s
}

// trendChange is the percentage change between the last two months, or
// 100 when fewer than two months exist.
func trendChange(trend []MonthBucket) float64 {
	if len(trend) < 2 {
		return 100
	}
	prev := trend[len(trend)-2].Amount
	last := trend[len(trend)-1].Amount
	if prev == 0 {
		return 100
	}
	return (last - prev) / prev * 100
}

// monthKey converts a packed MMDDYYYY date to a YYYY-MM key.
func monthKey(date string) (string, bool) {
	if len(date) != 8 {
		return "", false
	}
	for _, c := range date {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return date[4:8] + "-" + date[0:2], true
}

func topByAmount(records []*model.Record, n int) []*model.Record {
	sorted := make([]*model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
