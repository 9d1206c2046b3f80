/*
Copyright 2025 The crewfm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blvbruno/crewfm/internal/ranking"
)

type stubService struct {
	entries  []ranking.Entry
	weighted []ranking.WeightedEntry
	err      error

	lastFrom, lastTo time.Time
	lastYear         int
	lastUser         string
	calls            int
}

func (s *stubService) period(from, to time.Time) ([]ranking.Entry, error) {
	s.calls++
	s.lastFrom, s.lastTo = from, to
	return s.entries, s.err
}

func (s *stubService) Albums(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	return s.period(from, to)
}

func (s *stubService) Tracks(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	return s.period(from, to)
}

func (s *stubService) Artists(ctx context.Context, from, to time.Time) ([]ranking.Entry, error) {
	return s.period(from, to)
}

func (s *stubService) AnnualAlbums(ctx context.Context, year int, now time.Time) ([]ranking.Entry, error) {
	s.calls++
	s.lastYear = year
	return s.entries, s.err
}

func (s *stubService) WeightedTracks(ctx context.Context, user string, now time.Time) ([]ranking.WeightedEntry, error) {
	s.calls++
	s.lastUser = user
	return s.weighted, s.err
}

func get(t *testing.T, svc rankingService, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	rec := httptest.NewRecorder()
	NewRouter(svc).ServeHTTP(rec, req)
	return rec
}

func TestHandlers_albums(t *testing.T) {
	svc := &stubService{
		entries: []ranking.Entry{{Key: "muna - about u", Name: "Muna - About U", Score: 100, Rank: 1}},
	}

	rec := get(t, svc, "/api/albums?startDate=2024-01-01&endDate=2024-01-31")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var entries []ranking.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Muna - About U" {
		t.Fatalf("Unexpected response: %+v", entries)
	}

	if svc.lastFrom.Day() != 1 {
		t.Errorf("Expected start on the 1st, got %v", svc.lastFrom)
	}
	// The end date runs through its last second.
	if svc.lastTo.Hour() != 23 || svc.lastTo.Second() != 59 {
		t.Errorf("Expected the end day to be inclusive, got %v", svc.lastTo)
	}
}

func TestHandlers_missingParamsRejectedBeforeService(t *testing.T) {
	for _, url := range []string{
		"/api/albums",
		"/api/albums?startDate=2024-01-01",
		"/api/tracks?endDate=2024-01-31",
		"/api/artists?startDate=bogus&endDate=2024-01-31",
		"/api/annual",
		"/api/annual?year=notayear",
		"/api/weighted",
	} {
		svc := &stubService{}
		rec := get(t, svc, url)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, rec.Code)
		}
		if svc.calls != 0 {
			t.Errorf("%s: service should not be called on bad input", url)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: error body should be JSON: %v", url, err)
		} else if body["error"] == "" {
			t.Errorf("%s: expected an error message", url)
		}
	}
}

func TestHandlers_annual(t *testing.T) {
	svc := &stubService{entries: []ranking.Entry{}}

	rec := get(t, svc, "/api/annual?year=2024")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if svc.lastYear != 2024 {
		t.Errorf("Expected year 2024, got %d", svc.lastYear)
	}
}

func TestHandlers_weighted(t *testing.T) {
	svc := &stubService{
		weighted: []ranking.WeightedEntry{{Name: "Muna - Solid", WeightedScore: 19, Rank: 1}},
	}

	rec := get(t, svc, "/api/weighted?user=alice")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if svc.lastUser != "alice" {
		t.Errorf("Expected user alice, got %q", svc.lastUser)
	}

	var entries []ranking.WeightedEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("Decoding response: %v", err)
	}
	if len(entries) != 1 || entries[0].WeightedScore != 19 {
		t.Fatalf("Unexpected response: %+v", entries)
	}
}

func TestHandlers_serviceError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("provider down")}

	rec := get(t, svc, "/api/tracks?startDate=2024-01-01&endDate=2024-01-31")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
}
