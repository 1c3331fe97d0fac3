package search

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/aggregate"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/cache"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/filter"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/index"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// MaxBulkNames is the hard cap on input names per bulk request.
const MaxBulkNames = 1000

// defaultConcurrency bounds the per-name fan-out when no limit is
// configured.
const defaultConcurrency = 8

// BulkRequest batches independent per-name searches: one mode and one
// shared filter apply uniformly to every name in the request.
type BulkRequest struct {
	Names  []string
	Mode   model.SearchMode
	Filter filter.Filter
}

// Orchestrator runs bulk requests and parks each run's flattened match
// union in the result cache for later export.
type Orchestrator struct {
	ix          *index.Index
	cache       *cache.Cache
	concurrency int
}

// NewOrchestrator creates a bulk orchestrator over a prebuilt index.
func NewOrchestrator(ix *index.Index, c *cache.Cache, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Orchestrator{ix: ix, cache: c, concurrency: concurrency}
}

// Run processes every input name independently and in parallel:
// normalize → search → shared filter → aggregate. Input names are
// trimmed; empties are dropped. Duplicates are not deduplicated — each
// occurrence runs and overwrites its own key in the output map, so the
// summary is computed over the final map, not per run. The union of all
// matched records (deduplicated, first-seen order) is pushed into the
// result cache under a fresh identifier returned as ExportID.
func (o *Orchestrator) Run(ctx context.Context, req BulkRequest) (*model.BulkResult, error) {
	names := make([]string, 0, len(req.Names))
	for _, n := range req.Names {
		if t := strings.TrimSpace(n); t != "" {
			names = append(names, t)
		}
	}
	if len(names) == 0 {
		return nil, eris.Wrap(model.ErrValidation, "bulk: at least one name is required")
	}
	if len(names) > MaxBulkNames {
		return nil, eris.Wrapf(model.ErrValidation, "bulk: %d names exceeds the %d-name limit", len(names), MaxBulkNames)
	}

	entries := make([]model.BulkEntry, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matched := o.lookup(name, req.Mode)
			matched = req.Filter.Apply(matched)
			entries[i] = aggregate.ByName(matched)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "bulk: search aborted")
	}

	result := &model.BulkResult{Results: make(map[string]model.BulkEntry, len(names))}
	for i, name := range names {
		result.Results[name] = entries[i]
	}

	seenName := make(map[string]struct{}, len(result.Results))
	seenRecord := make(map[*model.Record]struct{})
	var union []*model.Record
	for _, name := range names {
		if _, dup := seenName[name]; dup {
			continue
		}
		seenName[name] = struct{}{}

		e := result.Results[name]
		result.Summary.TotalContributions += e.Count
		result.Summary.TotalAmount += e.TotalAmount
		if e.Count > 0 {
			result.Summary.NamesWithResults++
		}
		for _, r := range e.Records {
			if _, ok := seenRecord[r]; ok {
				continue
			}
			seenRecord[r] = struct{}{}
			union = append(union, r)
		}
	}
	result.Summary.TotalNames = len(names)

	id := cache.NewID()
	o.cache.Put(id, union)
	result.ExportID = id

	zap.L().Info("bulk: search complete",
		zap.Int("names", len(names)),
		zap.Int("names_with_results", result.Summary.NamesWithResults),
		zap.Int("contributions", result.Summary.TotalContributions),
		zap.String("export_id", id),
	)
	return result, nil
}

func (o *Orchestrator) lookup(name string, mode model.SearchMode) []*model.Record {
	if mode == model.SearchModeFuzzy {
		return o.ix.Fuzzy(name)
	}
	return o.ix.Exact(name)
}
