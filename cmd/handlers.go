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
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/blvbruno/crewfm/internal/ranking"
)

// rankingService is the part of chart.Service the API handlers use.
type rankingService interface {
	Albums(ctx context.Context, from, to time.Time) ([]ranking.Entry, error)
	Tracks(ctx context.Context, from, to time.Time) ([]ranking.Entry, error)
	Artists(ctx context.Context, from, to time.Time) ([]ranking.Entry, error)
	AnnualAlbums(ctx context.Context, year int, now time.Time) ([]ranking.Entry, error)
	WeightedTracks(ctx context.Context, user string, now time.Time) ([]ranking.WeightedEntry, error)
}

func NewRouter(svc rankingService) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/albums", periodHandler(svc.Albums)).Methods("GET")
	r.HandleFunc("/api/tracks", periodHandler(svc.Tracks)).Methods("GET")
	r.HandleFunc("/api/artists", periodHandler(svc.Artists)).Methods("GET")

	r.HandleFunc("/api/annual", func(w http.ResponseWriter, req *http.Request) {
		year, err := strconv.Atoi(req.URL.Query().Get("year"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "year parameter is required")
			return
		}

		entries, err := svc.AnnualAlbums(req.Context(), year, time.Now())
		if err != nil {
			log.Printf("Annual ranking failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, entries)
	}).Methods("GET")

	r.HandleFunc("/api/weighted", func(w http.ResponseWriter, req *http.Request) {
		user := req.URL.Query().Get("user")
		if user == "" {
			writeError(w, http.StatusBadRequest, "user parameter is required")
			return
		}

		entries, err := svc.WeightedTracks(req.Context(), user, time.Now())
		if err != nil {
			log.Printf("Weighted ranking failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, entries)
	}).Methods("GET")

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("API is running"))
	})
	return r
}

// periodHandler wraps a period ranking method in startDate/endDate
// query parsing. endDate is extended to the last second of its day.
func periodHandler(rank func(ctx context.Context, from, to time.Time) ([]ranking.Entry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		start, err := time.Parse("2006-01-02", query.Get("startDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate parameter must be yyyy-mm-dd")
			return
		}
		end, err := time.Parse("2006-01-02", query.Get("endDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate parameter must be yyyy-mm-dd")
			return
		}
		end = end.AddDate(0, 0, 1).Add(-time.Second)

		entries, err := rank(req.Context(), start, end)
		if err != nil {
			log.Printf("Ranking failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, entries)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
