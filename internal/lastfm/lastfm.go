// Package lastfm wraps the last.fm weekly chart API behind the
// fetcher contract used by the ranking sweep: one call per (user,
// period), paced, retried on transient failures, and bounded by a
// request timeout so a single unreachable user cannot stall a sweep.
package lastfm

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ademuri/lastfm-go/lastfm"
	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/blvbruno/crewfm/internal/ranking"
)

const (
	// requestTimeout bounds one chart call, including retries of the
	// underlying transport but not our own backoff.
	requestTimeout = 30 * time.Second

	// userSpacing keeps roster sweeps under the provider rate limit.
	userSpacing = 200 * time.Millisecond

	// retryAttempts is the initial call plus three retries (1s, 2s, 4s).
	retryAttempts = 4

	userAgent = "crewfm/1.0"
)

// Client fetches weekly charts. Safe for sequential use from a single
// sweep; the limiter spaces successive per-user calls.
type Client struct {
	api     *lastfm.Api
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a client with the given last.fm API credentials.
func New(apiKey, secret string) *Client {
	api := lastfm.New(apiKey, secret)
	api.SetUserAgent(userAgent)
	return &Client{
		api:     api,
		apiKey:  apiKey,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Every(userSpacing), 1),
	}
}

// weeklyAlbumChart mirrors the album chart payload. The library's own
// result type omits the artist element, so the album chart is fetched
// directly and decoded with the artist included.
type weeklyAlbumChart struct {
	XMLName xml.Name `xml:"weeklyalbumchart"`
	Albums  []struct {
		Artist struct {
			Name string `xml:",chardata"`
			Mbid string `xml:"mbid,attr"`
		} `xml:"artist"`
		Name      string `xml:"name"`
		PlayCount string `xml:"playcount"`
	} `xml:"album"`
}

// WeeklyAlbums returns one user's album chart for [from, to], ordered
// by the provider (descending plays).
func (c *Client) WeeklyAlbums(ctx context.Context, user string, from, to int64) ([]ranking.Record, error) {
	return c.fetch(ctx, func() ([]ranking.Record, error) {
		chart, err := c.albumChart(user, from, to)
		if err != nil {
			return nil, fmt.Errorf("weekly album chart for %q: %w", user, err)
		}
		return albumRecords(chart), nil
	})
}

// WeeklyTracks returns one user's track chart for [from, to].
func (c *Client) WeeklyTracks(ctx context.Context, user string, from, to int64) ([]ranking.Record, error) {
	return c.fetch(ctx, func() ([]ranking.Record, error) {
		chart, err := c.api.User.GetWeeklyTrackChart(lastfm.P{"user": user, "from": from, "to": to})
		if err != nil {
			return nil, fmt.Errorf("weekly track chart for %q: %w", user, err)
		}
		records := make([]ranking.Record, 0, len(chart.Tracks))
		for _, track := range chart.Tracks {
			if rec, ok := record(track.Artist.Name, track.Name, track.PlayCount); ok {
				records = append(records, rec)
			}
		}
		return records, nil
	})
}

// WeeklyArtists returns one user's artist chart for [from, to].
func (c *Client) WeeklyArtists(ctx context.Context, user string, from, to int64) ([]ranking.Record, error) {
	return c.fetch(ctx, func() ([]ranking.Record, error) {
		chart, err := c.api.User.GetWeeklyArtistChart(lastfm.P{"user": user, "from": from, "to": to})
		if err != nil {
			return nil, fmt.Errorf("weekly artist chart for %q: %w", user, err)
		}
		records := make([]ranking.Record, 0, len(chart.Artists))
		for _, artist := range chart.Artists {
			if rec, ok := record(artist.Name, "", artist.PlayCount); ok {
				records = append(records, rec)
			}
		}
		return records, nil
	})
}

func (c *Client) albumChart(user string, from, to int64) (weeklyAlbumChart, error) {
	params := url.Values{}
	params.Set("method", "user.getweeklyalbumchart")
	params.Set("user", user)
	params.Set("from", strconv.FormatInt(from, 10))
	params.Set("to", strconv.FormatInt(to, 10))
	params.Set("api_key", c.apiKey)

	var chart weeklyAlbumChart
	req, err := http.NewRequest(http.MethodGet, lastfm.UriApiSecBase+"?"+params.Encode(), nil)
	if err != nil {
		return chart, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return chart, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return chart, &httpStatusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chart, err
	}
	return chart, parseChart(body, &chart)
}

func albumRecords(chart weeklyAlbumChart) []ranking.Record {
	records := make([]ranking.Record, 0, len(chart.Albums))
	for _, album := range chart.Albums {
		if rec, ok := record(album.Artist.Name, album.Name, album.PlayCount); ok {
			records = append(records, rec)
		}
	}
	return records
}

// parseChart unwraps the lfm envelope. Failed responses become the
// library's error type so retry classification treats both chart
// paths the same.
func parseChart(body []byte, result interface{}) error {
	var base lastfm.Base
	if err := xml.Unmarshal(body, &base); err != nil {
		return err
	}
	if base.Status == lastfm.ApiResponseStatusFailed {
		var detail lastfm.ApiError
		if err := xml.Unmarshal(base.Inner, &detail); err != nil {
			return err
		}
		return &lastfm.LastfmError{Code: detail.Code, Message: strings.TrimSpace(detail.Message)}
	}
	return xml.Unmarshal(base.Inner, result)
}

// httpStatusError is a non-200 from the direct album chart call.
type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("last.fm returned HTTP %d", e.status)
}

func record(artist, name, playCount string) (ranking.Record, bool) {
	plays, err := strconv.Atoi(playCount)
	if err != nil || plays < 0 {
		return ranking.Record{}, false
	}
	return ranking.Record{Artist: artist, Name: name, Plays: plays}, true
}

func (c *Client) fetch(ctx context.Context, call func() ([]ranking.Record, error)) ([]ranking.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var records []ranking.Record
	err := retry.Do(
		func() error {
			var err error
			records, err = callWithTimeout(ctx, call)
			return err
		},
		retry.RetryIf(Transient),
		retry.Attempts(retryAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// callWithTimeout runs one attempt under the request timeout. The
// underlying client is not context-aware, so a timed-out call is
// abandoned rather than canceled.
func callWithTimeout(ctx context.Context, call func() ([]ranking.Record, error)) ([]ranking.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	type result struct {
		records []ranking.Record
		err     error
	}
	done := make(chan result, 1)
	go func() {
		records, err := call()
		done <- result{records, err}
	}()

	select {
	case r := <-done:
		return r.records, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Transient reports whether a chart fetch failure is worth retrying:
// timeouts, rate limiting, a service-side error code, or an HTTP 429
// or 5xx from the direct album chart call. Client-side API errors
// (bad user, bad params) are permanent.
func Transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	var herr *httpStatusError
	if errors.As(err, &herr) {
		return herr.status == http.StatusTooManyRequests || herr.status >= 500
	}
	var lerr *lastfm.LastfmError
	if errors.As(err, &lerr) {
		switch lerr.Code {
		case 8, 11, 16, 29:
			// Operation failed, service offline, temporarily
			// unavailable, rate limit exceeded.
			return true
		}
	}
	return false
}
