// Package search wires the normalizer, index, filter pipeline, and
// aggregator into the single-name and bulk query paths.
package search

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/filter"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/index"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// Query is a single-name search request.
type Query struct {
	Name   string
	Mode   model.SearchMode
	Filter filter.Filter
	Limit  int // page size; 0 means no paging
	Offset int
}

// Searcher serves single-name queries over a prebuilt index.
type Searcher struct {
	ix *index.Index
}

// NewSearcher creates a searcher. The index must be fully built before
// the first call — queries never observe a partially built index.
func NewSearcher(ix *index.Index) *Searcher {
	return &Searcher{ix: ix}
}

// Search runs normalize → index lookup → filter → sort → paginate.
// Records are ordered by amount descending (ties keep match order);
// Total is the match count before pagination.
func (s *Searcher) Search(q Query) (*model.SearchResult, error) {
	name := strings.TrimSpace(q.Name)
	if name == "" {
		return nil, eris.Wrap(model.ErrValidation, "search: name is required")
	}

	matched := s.lookup(name, q.Mode)
	matched = q.Filter.Apply(matched)

	sorted := make([]*model.Record, len(matched))
	copy(sorted, matched)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })

	return &model.SearchResult{
		Records: paginate(sorted, q.Offset, q.Limit),
		Total:   len(sorted),
	}, nil
}

func (s *Searcher) lookup(name string, mode model.SearchMode) []*model.Record {
	if mode == model.SearchModeFuzzy {
		return s.ix.Fuzzy(name)
	}
	return s.ix.Exact(name)
}

func paginate(records []*model.Record, offset, limit int) []*model.Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
