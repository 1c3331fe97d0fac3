package main

import (
	"time"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/cache"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/filter"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/index"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/ingest"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/search"
)

// coreEnv holds the shared read-only record set and the components built
// over it.
type coreEnv struct {
	Records  []*model.Record
	Index    *index.Index
	Searcher *search.Searcher
	Bulk     *search.Orchestrator
	Cache    *cache.Cache
}

// initCore loads the source file and builds the index. Construction
// completes before this returns, so no query ever observes a partially
// built index.
func initCore() (*coreEnv, error) {
	records, err := ingest.LoadFile(cfg.Data.File)
	if err != nil {
		return nil, err
	}

	ix := index.New(records, index.Options{
		Threshold:     cfg.Search.FuzzyThreshold,
		MinTokenLen:   cfg.Search.MinTokenLen,
		MaxCandidates: cfg.Search.MaxFuzzyCandidates,
	})
	c := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	return &coreEnv{
		Records:  records,
		Index:    ix,
		Searcher: search.NewSearcher(ix),
		Bulk:     search.NewOrchestrator(ix, c, cfg.Bulk.Concurrency),
		Cache:    c,
	}, nil
}

// Close stops background work owned by the environment.
func (e *coreEnv) Close() {
	e.Cache.Close()
}

// buildFilter assembles a Filter from raw flag values. Amount bounds that
// fail to parse are a caller error; date bounds that fail to parse are
// silently skipped.
func buildFilter(city, state, minAmount, maxAmount, startDate, endDate string) (filter.Filter, error) {
	minBound, err := filter.ParseAmount(minAmount)
	if err != nil {
		return filter.Filter{}, err
	}
	maxBound, err := filter.ParseAmount(maxAmount)
	if err != nil {
		return filter.Filter{}, err
	}
	return filter.Filter{
		City:      city,
		State:     state,
		MinAmount: minBound,
		MaxAmount: maxBound,
		StartDate: filter.ParseDate(startDate),
		EndDate:   filter.ParseDate(endDate),
	}, nil
}
