package model

// Record is one individual contribution row from the ingested dataset.
// Records are immutable once loaded; the whole process shares a single
// read-only slice, handed to each component at construction.
type Record struct {
	CommitteeID    string  `json:"committee_id"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	Employer       string  `json:"employer"`
	Occupation     string  `json:"occupation"`
	Date           string  `json:"date"` // packed MMDDYYYY, as shipped in the source files
	Amount         float64 `json:"amount"`
	NormalizedName string  `json:"-"` // derived once at load time, never at query time
}

// SearchMode selects how names are matched against the index.
type SearchMode string

const (
	SearchModeExact SearchMode = "exact"
	SearchModeFuzzy SearchMode = "fuzzy"
)

// SearchResult holds one single-name query's matches, ordered, plus the
// match count before pagination.
type SearchResult struct {
	Records []*Record `json:"records"`
	Total   int       `json:"total"`
}

// NameGroup aggregates matched records that share an exact name string.
// Grouping is by strict equality of the Name field, not the normalized
// form, so "JOHN SMITH" and "John Smith" stay separate groups even when
// they fuzzy-matched into the same candidate set.
type NameGroup struct {
	DisplayName string  `json:"display_name"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// BulkEntry is the aggregated result for one bulk input name.
// Invariant: sum(Matches[].Count) == Count and
// sum(Matches[].TotalAmount) == TotalAmount.
type BulkEntry struct {
	Records     []*Record   `json:"records"`
	Count       int         `json:"count"`
	TotalAmount float64     `json:"total_amount"`
	Matches     []NameGroup `json:"matches"`
}

// BulkSummary rolls a bulk run up across all entries in the result map.
type BulkSummary struct {
	TotalNames         int     `json:"total_names"`
	NamesWithResults   int     `json:"names_with_results"`
	TotalContributions int     `json:"total_contributions"`
	TotalAmount        float64 `json:"total_amount"`
}

// BulkResult maps each literal input name to its entry. ExportID keys the
// result cache entry holding the flattened union of all matched records.
type BulkResult struct {
	Results  map[string]BulkEntry `json:"results"`
	Summary  BulkSummary          `json:"summary"`
	ExportID string               `json:"export_id"`
}
