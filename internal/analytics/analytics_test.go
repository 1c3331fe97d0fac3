package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

func TestCompute(t *testing.T) {
	records := []*model.Record{
		{Name: "John Smith", State: "NY", Amount: 100, Date: "01152020"},
		{Name: "John Smith", State: "NY", Amount: 200, Date: "02102020"},
		{Name: "Jane Doe", State: "NJ", Amount: 6000, Date: "02202020"},
		{Name: "Bob Low", State: "NY", Amount: 500, Date: "BADDATE!"},
	}

	s := Compute(records)

	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 6800.0, s.TotalAmount)
	assert.Equal(t, 1700.0, s.AverageAmount)
	assert.Equal(t, 3, s.UniqueContributors)

	require.Len(t, s.MonthlyTrend, 2, "unparseable dates stay out of the trend")
	assert.Equal(t, MonthBucket{Month: "2020-01", Count: 1, Amount: 100}, s.MonthlyTrend[0])
	assert.Equal(t, MonthBucket{Month: "2020-02", Count: 2, Amount: 6200}, s.MonthlyTrend[1])
	assert.InDelta(t, 6100.0, s.TrendChangePct, 1e-9)

	require.Len(t, s.ByState, 2)
	assert.Equal(t, StateBucket{State: "NY", Count: 3, Amount: 800}, s.ByState[0])
	assert.Equal(t, StateBucket{State: "NJ", Count: 1, Amount: 6000}, s.ByState[1])

	// John averages 150, Bob 500 (both low); Jane 6000 (high).
	assert.Equal(t, RiskBuckets{High: 1, Medium: 0, Low: 2}, s.Risk)

	require.Len(t, s.TopContributions, 4)
	assert.Equal(t, 6000.0, s.TopContributions[0].Amount)
	assert.Equal(t, 100.0, s.TopContributions[3].Amount)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)

	assert.Zero(t, s.TotalRecords)
	assert.Zero(t, s.TotalAmount)
	assert.Zero(t, s.AverageAmount)
	assert.Zero(t, s.UniqueContributors)
	assert.Empty(t, s.MonthlyTrend)
	assert.Equal(t, 100.0, s.TrendChangePct)
}

func TestRiskBucketBoundaries(t *testing.T) {
	records := []*model.Record{
		{Name: "Exactly High Cutoff", Amount: 5000, Date: "01012020"},
		{Name: "Just Above High", Amount: 5000.01, Date: "01012020"},
		{Name: "Exactly Medium Cutoff", Amount: 1000, Date: "01012020"},
		{Name: "Just Above Medium", Amount: 1000.01, Date: "01012020"},
	}

	s := Compute(records)

	// Boundaries are exclusive: exactly 5000 is medium, exactly 1000 low.
	assert.Equal(t, RiskBuckets{High: 1, Medium: 2, Low: 1}, s.Risk)
}

func TestTrendChange(t *testing.T) {
	tests := []struct {
		name     string
		trend    []MonthBucket
		expected float64
	}{
		{name: "no months", trend: nil, expected: 100},
		{name: "single month", trend: []MonthBucket{{Amount: 500}}, expected: 100},
		{name: "zero previous month", trend: []MonthBucket{{Amount: 0}, {Amount: 500}}, expected: 100},
		{name: "growth", trend: []MonthBucket{{Amount: 200}, {Amount: 300}}, expected: 50},
		{name: "decline", trend: []MonthBucket{{Amount: 400}, {Amount: 100}}, expected: -75},
		{name: "only last two months count", trend: []MonthBucket{{Amount: 9999}, {Amount: 100}, {Amount: 200}}, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, trendChange(tt.trend), 1e-9)
		})
	}
}

func TestTopContributionsCapped(t *testing.T) {
	var records []*model.Record
	for i := 1; i <= 15; i++ {
		records = append(records, &model.Record{
			Name:   fmt.Sprintf("Donor %d", i),
			Amount: float64(i * 10),
			Date:   "01012020",
		})
	}

	s := Compute(records)

	require.Len(t, s.TopContributions, 10)
	assert.Equal(t, 150.0, s.TopContributions[0].Amount)
	assert.Equal(t, 60.0, s.TopContributions[9].Amount)
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "01152020", expected: "2020-01", ok: true},
		{input: "12312019", expected: "2019-12", ok: true},
		{input: "0115202", ok: false},
		{input: "01-15-20", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := monthKey(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}
