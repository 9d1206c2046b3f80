// Package chart wires the ranking pipeline together: sweep the roster
// against last.fm, aggregate and score under the mode's policy,
// enrich the top slice from the catalog, and assemble the final
// ranking. One method per ranking mode; this is the query surface the
// CLI and the HTTP API both consume.
package chart

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/blvbruno/crewfm/internal/catalog"
	"github.com/blvbruno/crewfm/internal/normalize"
	"github.com/blvbruno/crewfm/internal/ranking"
)

// DefaultUsers is the crew roster. Overridable through configuration;
// treated as data everywhere else.
var DefaultUsers = []string{
	"blvbruno",
	"romisk",
	"rapha9095",
	"Matheusygf",
	"boofrnds",
	"ohmymog_",
	"LouLouFM2",
	"brn_4ever",
	"alephunk",
	"okpaulinho",
	"lucas_SS",
	"thecrazy_theus",
	"flow__",
	"hanamoyou",
	"thiago-hbm",
	"thunder__",
	"Petter_HD",
	"BriRy",
	"Lukitoo",
	"otiagoqz",
	"GabeeTTS",
	"matttvieira",
	"adrenalinedame",
	"soprani",
}

const (
	// How deep each mode's catalog lookup goes.
	albumEnrichLimit  = 100
	artistEnrichLimit = 50
	annualCheckLimit  = 300

	// Annual mode scores each user's top 300 rows and publishes 200.
	annualPerUserLimit = 300
	annualFinalLimit   = 200

	weightedLimit = 200
)

// Fetcher is the per-user weekly chart contract, satisfied by
// internal/lastfm. from/to are unix seconds.
type Fetcher interface {
	WeeklyAlbums(ctx context.Context, user string, from, to int64) ([]ranking.Record, error)
	WeeklyTracks(ctx context.Context, user string, from, to int64) ([]ranking.Record, error)
	WeeklyArtists(ctx context.Context, user string, from, to int64) ([]ranking.Record, error)
}

// Service computes the cross-user rankings.
type Service struct {
	fetcher  Fetcher
	enricher *catalog.Enricher
	users    []string
}

// New builds a service over the given roster. enricher may wrap a nil
// searcher, which disables enrichment and filtering.
func New(fetcher Fetcher, enricher *catalog.Enricher, users []string) *Service {
	if len(users) == 0 {
		users = DefaultUsers
	}
	return &Service{fetcher: fetcher, enricher: enricher, users: users}
}

// Albums computes the capped-plays album ranking for a period, with
// cover art for the top entries and singles filtered out.
func (s *Service) Albums(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	agg := ranking.NewAggregator(ranking.AlbumPolicy(), normalize.Entity)
	if err := s.sweep(ctx, agg, s.fetcher.WeeklyAlbums, from.Unix(), to.Unix()); err != nil {
		return nil, err
	}

	ranked := ranking.Assemble(agg.Score(), nil, 0)
	if !s.enricher.Enabled() {
		return ranked, nil
	}
	infos := s.enricher.Albums(ctx, ranked, albumEnrichLimit)
	catalog.Apply(ranked, infos)
	return ranking.Assemble(ranked, catalog.SinglesFilter(infos), 0), nil
}

// Tracks computes the capped-plays track ranking for a period.
func (s *Service) Tracks(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	agg := ranking.NewAggregator(ranking.TrackPolicy(), normalize.Entity)
	if err := s.sweep(ctx, agg, s.fetcher.WeeklyTracks, from.Unix(), to.Unix()); err != nil {
		return nil, err
	}
	return ranking.Assemble(agg.Score(), nil, 0), nil
}

// Artists computes the capped-plays artist ranking for a period, with
// artist images for the top entries. Nothing is filtered.
func (s *Service) Artists(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	agg := ranking.NewAggregator(ranking.ArtistPolicy(), normalize.Artist)
	if err := s.sweep(ctx, agg, s.fetcher.WeeklyArtists, from.Unix(), to.Unix()); err != nil {
		return nil, err
	}

	ranked := ranking.Assemble(agg.Score(), nil, 0)
	if s.enricher.Enabled() {
		catalog.Apply(ranked, s.enricher.Artists(ctx, ranked, artistEnrichLimit))
	}
	return ranked, nil
}

// AnnualAlbums computes the position-weighted album ranking for a
// year. The current year runs January 1 through now, past years run
// whole; future years are rejected before any external call.
func (s *Service) AnnualAlbums(ctx context.Context, year int, now time.Time) ([]ranking.Entry, error) {
	from, to, err := yearRange(year, now)
	if err != nil {
		return nil, err
	}

	agg := ranking.NewAggregator(ranking.AnnualPolicy(annualPerUserLimit), normalize.Entity)
	if err := s.sweep(ctx, agg, s.fetcher.WeeklyAlbums, from.Unix(), to.Unix()); err != nil {
		return nil, err
	}

	ranked := ranking.Assemble(agg.Score(), nil, 0)
	if !s.enricher.Enabled() {
		return ranking.Assemble(ranked, nil, annualFinalLimit), nil
	}
	infos := s.enricher.Albums(ctx, ranked, annualCheckLimit)
	catalog.Apply(ranked, infos)
	return ranking.Assemble(ranked, catalog.SinglesFilter(infos), annualFinalLimit), nil
}

// WeightedTracks computes the multi-period recency ranking for one
// user: uncapped plays over the last 7 days, days 8-15, and days
// 16-30, weighted 5/3/2.
func (s *Service) WeightedTracks(ctx context.Context, user string, now time.Time) ([]ranking.WeightedEntry, error) {
	if user == "" {
		return nil, fmt.Errorf("user is required")
	}

	windows := ranking.NewWindows(normalize.Entity)
	spans := []struct {
		window   ranking.Window
		from, to time.Time
	}{
		{ranking.Last7Days, now.AddDate(0, 0, -7), now},
		{ranking.Days8To15, now.AddDate(0, 0, -15), now.AddDate(0, 0, -7)},
		{ranking.Days16To30, now.AddDate(0, 0, -30), now.AddDate(0, 0, -15)},
	}

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := s.fetcher.WeeklyTracks(ctx, user, span.from.Unix(), span.to.Unix())
		if err != nil {
			log.Printf("weighted: window %v-%v for %q failed: %v",
				span.from.Format("2006-01-02"), span.to.Format("2006-01-02"), user, err)
			continue
		}
		windows.Fold(span.window, user, records)
	}

	return windows.Ranking(weightedLimit), nil
}

// sweep fetches every roster user's chart and folds it into the
// aggregator. A failed user degrades to an empty chart; the sweep
// always finishes and logs which users were skipped.
func (s *Service) sweep(ctx context.Context, agg *ranking.Aggregator, fetch func(context.Context, string, int64, int64) ([]ranking.Record, error), from, to int64) error {
	var failed []string
	for _, user := range s.users {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, err := fetch(ctx, user, from, to)
		if err != nil {
			log.Printf("skipping %q for %d-%d: %v", user, from, to, err)
			failed = append(failed, user)
			continue
		}
		if len(records) == 0 {
			log.Printf("no chart rows for %q in %d-%d", user, from, to)
			continue
		}
		agg.FoldUser(user, records)
	}

	if len(failed) > 0 {
		log.Printf("sweep done: %d/%d users failed (%s)",
			len(failed), len(s.users), strings.Join(failed, ", "))
	}
	return nil
}

func yearRange(year int, now time.Time) (time.Time, time.Time, error) {
	currentYear := now.Year()
	switch {
	case year > currentYear:
		return time.Time{}, time.Time{}, fmt.Errorf("year %d is in the future", year)
	case year == currentYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()), now, nil
	default:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()),
			time.Date(year, time.December, 31, 23, 59, 59, 0, now.Location()), nil
	}
}
