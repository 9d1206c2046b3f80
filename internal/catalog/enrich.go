package catalog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/blvbruno/crewfm/internal/ranking"
)

const (
	// Lookups run fully parallel inside a batch, then the sweep
	// pauses before the next batch to stay under the rate limit.
	defaultBatchSize  = 10
	defaultBatchDelay = 200 * time.Millisecond
)

// ReleaseTypeSingle is the release type removed by the singles filter.
const ReleaseTypeSingle = "single"

// Enricher looks up the top slice of a ranking in the catalog. A nil
// searcher disables it entirely: every entry passes through untouched
// and unfiltered.
type Enricher struct {
	searcher   Searcher
	batchSize  int
	batchDelay time.Duration
}

// NewEnricher wraps a searcher; pass nil when credentials are absent.
func NewEnricher(searcher Searcher) *Enricher {
	return &Enricher{
		searcher:   searcher,
		batchSize:  defaultBatchSize,
		batchDelay: defaultBatchDelay,
	}
}

// Enabled reports whether lookups will actually happen.
func (e *Enricher) Enabled() bool {
	return e != nil && e.searcher != nil
}

// Albums looks up the top limit entries as albums, keyed by
// normalized key. Display names are "Artist - Title"; the first
// separator splits them back apart.
func (e *Enricher) Albums(ctx context.Context, entries []ranking.Entry, limit int) map[string]Info {
	return e.sweep(ctx, entries, limit, func(entry ranking.Entry) (Info, error) {
		artist, album, _ := strings.Cut(entry.Name, " - ")
		return e.searcher.SearchAlbum(ctx, artist, album)
	})
}

// Artists looks up the top limit entries as artists.
func (e *Enricher) Artists(ctx context.Context, entries []ranking.Entry, limit int) map[string]Info {
	return e.sweep(ctx, entries, limit, func(entry ranking.Entry) (Info, error) {
		return e.searcher.SearchArtist(ctx, entry.Name)
	})
}

func (e *Enricher) sweep(ctx context.Context, entries []ranking.Entry, limit int, lookup func(ranking.Entry) (Info, error)) map[string]Info {
	infos := make(map[string]Info)
	if !e.Enabled() || len(entries) == 0 {
		return infos
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	var mu sync.Mutex
	for start := 0; start < len(entries); start += e.batchSize {
		end := start + e.batchSize
		if end > len(entries) {
			end = len(entries)
		}

		var wg sync.WaitGroup
		for _, entry := range entries[start:end] {
			wg.Add(1)
			go func(entry ranking.Entry) {
				defer wg.Done()
				info, err := lookup(entry)
				if err != nil {
					log.Printf("catalog lookup failed for %q: %v", entry.Name, err)
					info = Info{}
				}
				mu.Lock()
				infos[entry.Key] = info
				mu.Unlock()
			}(entry)
		}
		wg.Wait()

		if end < len(entries) {
			select {
			case <-time.After(e.batchDelay):
			case <-ctx.Done():
				return infos
			}
		}
	}

	found := 0
	for _, info := range infos {
		if info.Found {
			found++
		}
	}
	log.Printf("catalog: %d/%d entries found", found, len(infos))
	return infos
}

// Apply copies lookup results onto their entries.
func Apply(entries []ranking.Entry, infos map[string]Info) {
	for i := range entries {
		info, ok := infos[entries[i].Key]
		if !ok || !info.Found {
			continue
		}
		entries[i].Image = info.Image
		entries[i].ReleaseType = info.ReleaseType
		entries[i].ReleaseYear = info.ReleaseYear
	}
}

// SinglesFilter drops an entry only when its lookup succeeded and
// classified it as a single. Not-found entries and every entry outside
// the enriched slice are kept.
func SinglesFilter(infos map[string]Info) ranking.FilterFunc {
	return func(e ranking.Entry) bool {
		info, ok := infos[e.Key]
		if !ok || !info.Found {
			return true
		}
		return info.ReleaseType != ReleaseTypeSingle
	}
}
