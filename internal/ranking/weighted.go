package ranking

import "sort"

// Weights applied to the three trailing windows of the recency score.
const (
	weight7Days  = 5
	weight15Days = 3
	weight30Days = 2
)

// WeightedEntry is one entity in the single-user multi-period recency
// ranking: uncapped play totals per window, the per-window points, and
// the combined weighted score.
type WeightedEntry struct {
	Key           string         `json:"normalizedKey"`
	Name          string         `json:"name"`
	Plays7Days    int            `json:"plays7Days"`
	Plays15Days   int            `json:"plays15Days"`
	Plays30Days   int            `json:"plays30Days"`
	Points7Days   int            `json:"points7Days"`
	Points15Days  int            `json:"points15Days"`
	Points30Days  int            `json:"points30Days"`
	WeightedScore int            `json:"weightedScore"`
	UserPlays     map[string]int `json:"userPlays"`
	Rank          int            `json:"rank"`
}

// Windows accumulates play totals over the three disjoint trailing
// windows (last 7 days, days 8-15, days 16-30) before weighting.
type Windows struct {
	keyFn   KeyFunc
	entries map[string]*WeightedEntry
	order   []*WeightedEntry
}

// NewWindows builds an empty accumulator.
func NewWindows(keyFn KeyFunc) *Windows {
	return &Windows{
		keyFn:   keyFn,
		entries: make(map[string]*WeightedEntry),
	}
}

// Window identifies which trailing window a batch of records covers.
type Window int

const (
	Last7Days Window = iota
	Days8To15
	Days16To30
)

// Fold adds one user's records for one window. Plays are never capped
// in this mode; duplicate keys sum.
func (w *Windows) Fold(window Window, user string, records []Record) {
	for _, rec := range records {
		key, display := w.keyFn(rec.Artist, rec.Name)
		e, ok := w.entries[key]
		if !ok {
			e = &WeightedEntry{
				Key:       key,
				Name:      display,
				UserPlays: make(map[string]int),
			}
			w.entries[key] = e
			w.order = append(w.order, e)
		}

		switch window {
		case Last7Days:
			e.Plays7Days += rec.Plays
		case Days8To15:
			e.Plays15Days += rec.Plays
		case Days16To30:
			e.Plays30Days += rec.Plays
		}
		e.UserPlays[user] += rec.Plays
	}
}

// Ranking weights each entity (7-day plays x5, 8-15 day plays x3,
// 16-30 day plays x2), sorts by weighted score descending, truncates
// to limit, and assigns dense ranks.
func (w *Windows) Ranking(limit int) []WeightedEntry {
	out := make([]WeightedEntry, 0, len(w.order))
	for _, e := range w.order {
		scored := *e
		scored.Points7Days = scored.Plays7Days * weight7Days
		scored.Points15Days = scored.Plays15Days * weight15Days
		scored.Points30Days = scored.Plays30Days * weight30Days
		scored.WeightedScore = scored.Points7Days + scored.Points15Days + scored.Points30Days
		out = append(out, scored)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedScore > out[j].WeightedScore
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
