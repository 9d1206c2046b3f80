package ranking

import "sort"

// FilterFunc decides whether an entry survives assembly. Returning
// false drops the entry before ranks are assigned.
type FilterFunc func(e Entry) bool

// KeepAll is the filter used when no enrichment data is available.
func KeepAll(Entry) bool { return true }

// Assemble sorts entries by score descending (stable, so equal scores
// keep aggregation order), applies the filter, truncates to limit
// (limit <= 0 keeps everything), and assigns dense 1-based ranks.
func Assemble(entries []Entry, keep FilterFunc, limit int) []Entry {
	if keep == nil {
		keep = KeepAll
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	out := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		if !keep(e) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
