package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blvbruno/crewfm/internal/ranking"
)

type fakeSearcher struct {
	mu      sync.Mutex
	albums  map[string]Info
	artists map[string]Info
	calls   []string
	fail    bool
}

func (f *fakeSearcher) SearchAlbum(ctx context.Context, artist, album string) (Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, artist+" - "+album)
	if f.fail {
		return Info{}, fmt.Errorf("catalog unavailable")
	}
	return f.albums[artist+" - "+album], nil
}

func (f *fakeSearcher) SearchArtist(ctx context.Context, artist string) (Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, artist)
	if f.fail {
		return Info{}, fmt.Errorf("catalog unavailable")
	}
	return f.artists[artist], nil
}

func fastEnricher(searcher Searcher) *Enricher {
	e := NewEnricher(searcher)
	e.batchDelay = time.Millisecond
	return e
}

func TestEnricher_disabled(t *testing.T) {
	var e *Enricher
	if e.Enabled() {
		t.Fatal("A nil enricher should be disabled")
	}
	if NewEnricher(nil).Enabled() {
		t.Fatal("A nil searcher should disable the enricher")
	}

	entries := []ranking.Entry{{Key: "a", Name: "A - One"}}
	infos := NewEnricher(nil).Albums(context.Background(), entries, 10)
	if len(infos) != 0 {
		t.Fatalf("Disabled enricher should return nothing, got %d", len(infos))
	}
}

func TestEnricher_albums(t *testing.T) {
	searcher := &fakeSearcher{
		albums: map[string]Info{
			"Muna - About U": {Found: true, ReleaseType: "album", Image: "http://img", ReleaseYear: "2017"},
		},
	}
	e := fastEnricher(searcher)

	entries := []ranking.Entry{
		{Key: "muna - about u", Name: "Muna - About U"},
		{Key: "missing - thing", Name: "Missing - Thing"},
	}
	infos := e.Albums(context.Background(), entries, 10)

	if len(infos) != 2 {
		t.Fatalf("Expected an info per entry, got %d", len(infos))
	}
	if !infos["muna - about u"].Found {
		t.Error("Expected the known album to be found")
	}
	if infos["missing - thing"].Found {
		t.Error("Unknown album should come back not-found")
	}
}

func TestEnricher_respectsLimit(t *testing.T) {
	searcher := &fakeSearcher{}
	e := fastEnricher(searcher)

	var entries []ranking.Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, ranking.Entry{
			Key:  fmt.Sprintf("key%d", i),
			Name: fmt.Sprintf("Artist%d - Album%d", i, i),
		})
	}

	infos := e.Albums(context.Background(), entries, 15)
	if len(infos) != 15 {
		t.Fatalf("Expected 15 lookups, got %d", len(infos))
	}
	if len(searcher.calls) != 15 {
		t.Fatalf("Expected 15 searcher calls, got %d", len(searcher.calls))
	}
}

func TestEnricher_lookupFailureDegradesToNotFound(t *testing.T) {
	searcher := &fakeSearcher{fail: true}
	e := fastEnricher(searcher)

	entries := []ranking.Entry{{Key: "a", Name: "A - One"}}
	infos := e.Albums(context.Background(), entries, 10)

	if len(infos) != 1 {
		t.Fatalf("Expected 1 info, got %d", len(infos))
	}
	if infos["a"].Found {
		t.Fatal("Failed lookup should degrade to not-found")
	}
}

func TestApply(t *testing.T) {
	entries := []ranking.Entry{
		{Key: "a", Name: "A - One"},
		{Key: "b", Name: "B - Two"},
	}
	infos := map[string]Info{
		"a": {Found: true, ReleaseType: "album", Image: "http://img", ReleaseYear: "2020"},
		"b": {Found: false, Image: "should-not-copy"},
	}

	Apply(entries, infos)

	if entries[0].Image != "http://img" || entries[0].ReleaseType != "album" || entries[0].ReleaseYear != "2020" {
		t.Errorf("Found info should be copied, got %+v", entries[0])
	}
	if entries[1].Image != "" {
		t.Error("Not-found info should leave the entry untouched")
	}
}

func TestSinglesFilter(t *testing.T) {
	infos := map[string]Info{
		"single":   {Found: true, ReleaseType: "single"},
		"album":    {Found: true, ReleaseType: "album"},
		"notfound": {Found: false},
	}
	keep := SinglesFilter(infos)

	if keep(ranking.Entry{Key: "single"}) {
		t.Error("Confirmed singles should be dropped")
	}
	if !keep(ranking.Entry{Key: "album"}) {
		t.Error("Albums should be kept")
	}
	if !keep(ranking.Entry{Key: "notfound"}) {
		t.Error("Not-found entries should be kept")
	}
	if !keep(ranking.Entry{Key: "never-looked-up"}) {
		t.Error("Entries outside the enriched slice should be kept")
	}
}
