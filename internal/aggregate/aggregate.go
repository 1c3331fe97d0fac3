// Package aggregate reduces a candidate set into per-name groups.
package aggregate

import "github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"

// ByName computes the count and total amount of a candidate set and its
// breakdown grouped by the exact name string on each record. Grouping
// uses strict string equality of the Name field, never the normalized
// form; every record lands in exactly one group, in first-seen order.
func ByName(records []*model.Record) model.BulkEntry {
	entry := model.BulkEntry{Records: records, Count: len(records)}

	groups := make(map[string]*model.NameGroup)
	var order []string
	for _, r := range records {
		entry.TotalAmount += r.Amount

		g, ok := groups[r.Name]
		if !ok {
			g = &model.NameGroup{DisplayName: r.Name}
			groups[r.Name] = g
			order = append(order, r.Name)
		}
		g.Count++
		g.TotalAmount += r.Amount
	}

	for _, name := range order {
		entry.Matches = append(entry.Matches, *groups[name])
	}
	return entry
}
