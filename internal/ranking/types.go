// Package ranking merges per-user chart records into cross-user
// rankings. It is pure computation: fetching and metadata lookups live
// in internal/lastfm and internal/catalog.
package ranking

// Record is one row of a user's chart as returned by the history
// provider, already rank-ordered by that user's play count.
type Record struct {
	Artist string
	Name   string
	Plays  int
}

// KeyFunc canonicalizes a record into its merge key and the display
// name retained for the first-seen spelling.
type KeyFunc func(artist, name string) (key, display string)

// Entry is one merged entity in a ranking. UserPlays always holds raw
// (uncapped) plays; Plays and Score are policy-dependent: the capped
// cross-user total and hybrid score for hybrid policies, the summed
// position points and bonus-adjusted total for position policies.
type Entry struct {
	Key            string         `json:"normalizedKey"`
	Name           string         `json:"name"`
	Plays          int            `json:"plays"`
	Score          int            `json:"score"`
	ListenersBonus int            `json:"listenersBonus"`
	UserPlays      map[string]int `json:"userPlays"`
	UserScores     map[string]int `json:"userScores,omitempty"`
	UserPositions  map[string]int `json:"userPositions,omitempty"`
	Rank           int            `json:"rank"`
	Image          string         `json:"image,omitempty"`
	ReleaseType    string         `json:"releaseType,omitempty"`
	ReleaseYear    string         `json:"releaseYear,omitempty"`
}

// Listeners counts the distinct users contributing plays to an entry.
func (e *Entry) Listeners() int {
	return len(e.UserPlays)
}
