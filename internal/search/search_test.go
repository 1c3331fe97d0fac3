package search

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/filter"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/index"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/normalize"
)

func rec(name, city, state string, amount float64, date string) *model.Record {
	return &model.Record{
		Name:           name,
		City:           city,
		State:          state,
		Amount:         amount,
		Date:           date,
		NormalizedName: normalize.Name(name),
	}
}

func fixtureIndex() *index.Index {
	return index.New([]*model.Record{
		rec("John Smith", "New York", "NY", 100, "01152020"),
		rec("Jon Smith", "Brooklyn", "NY", 50, "02012020"),
		rec("Jane Doe", "Newark", "NJ", 5000, "11302019"),
		rec("Smith Industries PAC", "Albany", "NY", 300, "06152020"),
	}, index.DefaultOptions())
}

func amt(v float64) *float64 { return &v }

func resultNames(records []*model.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	s := NewSearcher(fixtureIndex())

	tests := []struct {
		name     string
		query    Query
		expected []string
		total    int
		wantErr  error
	}{
		{
			name:     "exact substring ordered by amount desc",
			query:    Query{Name: "smith"},
			expected: []string{"Smith Industries PAC", "John Smith", "Jon Smith"},
			total:    3,
		},
		{
			name:     "filter narrows matches",
			query:    Query{Name: "smith", Filter: filter.Filter{MinAmount: amt(75)}},
			expected: []string{"Smith Industries PAC", "John Smith"},
			total:    2,
		},
		{
			name:     "no matches is a result not an error",
			query:    Query{Name: "zzz"},
			expected: nil,
			total:    0,
		},
		{
			name:    "empty name",
			query:   Query{Name: "   "},
			wantErr: model.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(tt.query)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, eris.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resultNames(got.Records))
			assert.Equal(t, tt.total, got.Total)
		})
	}
}

func TestSearchPagination(t *testing.T) {
	s := NewSearcher(fixtureIndex())

	page, err := s.Search(Query{Name: "smith", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Jon Smith"}, resultNames(page.Records))
	assert.Equal(t, 3, page.Total, "total counts matches before pagination")

	past, err := s.Search(Query{Name: "smith", Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Records)
	assert.Equal(t, 3, past.Total)
}

func TestSearchFuzzyMode(t *testing.T) {
	s := NewSearcher(fixtureIndex())

	got, err := s.Search(Query{Name: "jon smith", Mode: model.SearchModeFuzzy})
	require.NoError(t, err)
	assert.Contains(t, resultNames(got.Records), "John Smith")
	assert.Contains(t, resultNames(got.Records), "Jon Smith")
}
