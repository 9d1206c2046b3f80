// Package catalog looks up ranked entries in the Spotify catalog to
// attach cover art, release types, and release years, and decides
// which entries the singles filter removes. Everything here degrades:
// a failed lookup is a not-found, never an aborted sweep.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Tokens are refreshed once they are within a minute of expiring.
const tokenExpiryMargin = time.Minute

const searchLimit = 5

// Info is the per-lookup enrichment result.
type Info struct {
	Found       bool
	ReleaseType string
	Image       string
	ReleaseYear string
}

// Searcher is the catalog lookup contract the enricher consumes.
type Searcher interface {
	SearchAlbum(ctx context.Context, artist, album string) (Info, error)
	SearchArtist(ctx context.Context, artist string) (Info, error)
}

// Client implements Searcher against the Spotify Web API using the
// client-credentials flow. The token source is owned by the client and
// refreshes itself ahead of expiry; rate-limit responses are retried
// honoring the Retry-After header.
type Client struct {
	sp       *spotify.Client
	minScore int
}

// NewClient builds a Spotify-backed searcher. minScore is the
// acceptance threshold for album match scoring.
func NewClient(ctx context.Context, creds Credentials, minScore int) (*Client, error) {
	if !creds.Configured() {
		return nil, errors.New("spotify credentials not configured")
	}

	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	source := oauth2.ReuseTokenSourceWithExpiry(nil, config.TokenSource(ctx), tokenExpiryMargin)
	httpClient := oauth2.NewClient(ctx, source)

	return &Client{
		sp:       spotify.New(httpClient, spotify.WithRetry(true)),
		minScore: minScore,
	}, nil
}

// SearchAlbum looks up an album, trying an exact quoted query first
// and falling back to a loose one when it returns nothing.
func (c *Client) SearchAlbum(ctx context.Context, artist, album string) (Info, error) {
	artist = strings.TrimSpace(artist)
	album = strings.TrimSpace(album)

	query := fmt.Sprintf("artist:%q album:%q", artist, album)
	candidates, err := c.searchAlbums(ctx, query)
	if err != nil {
		return Info{}, err
	}
	if len(candidates) == 0 {
		candidates, err = c.searchAlbums(ctx, artist+" "+album)
		if err != nil {
			return Info{}, err
		}
	}

	match, ok := bestAlbumMatch(candidates, artist, album, c.minScore)
	if !ok {
		return Info{}, nil
	}

	info := Info{
		Found:       true,
		ReleaseType: match.AlbumType,
		ReleaseYear: releaseYear(match.ReleaseDate),
	}
	if len(match.Images) > 0 {
		info.Image = match.Images[0].URL
	}
	return info, nil
}

// SearchArtist looks up an artist and returns their largest image.
func (c *Client) SearchArtist(ctx context.Context, artist string) (Info, error) {
	artist = strings.TrimSpace(artist)

	var candidates []spotify.FullArtist
	err := c.search(ctx, func() error {
		result, err := c.sp.Search(ctx, fmt.Sprintf("artist:%q", artist), spotify.SearchTypeArtist, spotify.Limit(searchLimit))
		if err != nil {
			return err
		}
		if result.Artists != nil {
			candidates = result.Artists.Artists
		}
		return nil
	})
	if err != nil {
		return Info{}, err
	}

	match, ok := bestArtistMatch(candidates, artist)
	if !ok {
		return Info{}, nil
	}

	info := Info{Found: true}
	if len(match.Images) > 0 {
		info.Image = match.Images[0].URL
	}
	return info, nil
}

func (c *Client) searchAlbums(ctx context.Context, query string) ([]spotify.SimpleAlbum, error) {
	var candidates []spotify.SimpleAlbum
	err := c.search(ctx, func() error {
		result, err := c.sp.Search(ctx, query, spotify.SearchTypeAlbum, spotify.Limit(searchLimit))
		if err != nil {
			return err
		}
		if result.Albums != nil {
			candidates = result.Albums.Albums
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// search retries server-side and transport failures with exponential
// backoff. 429s are handled inside the Spotify client, which sleeps
// out the Retry-After hint before retrying.
func (c *Client) search(ctx context.Context, call func() error) error {
	return retry.Do(
		call,
		retry.RetryIf(func(err error) bool {
			if ctx.Err() != nil {
				return false
			}
			var serr spotify.Error
			if errors.As(err, &serr) {
				return serr.Status == 429 || serr.Status >= 500
			}
			return true
		}),
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// releaseYear extracts the leading year from a Spotify release date,
// which arrives as yyyy, yyyy-mm, or yyyy-mm-dd.
func releaseYear(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	return year
}
