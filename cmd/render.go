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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/blvbruno/crewfm/internal/ranking"
)

// Ranking is a rendered table plus a one-line summary, printable as-is.
type Ranking struct {
	header  []string
	rows    [][]string
	summary string
}

func (r Ranking) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(r.header)
	for _, row := range r.rows {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", r.summary)
	return out.String()
}

// entryRanking renders a hybrid or annual ranking. entity names the
// first column ("Album", "Song", "Artist").
func entryRanking(entries []ranking.Entry, entity string, showReleaseType bool) Ranking {
	header := []string{"Rank", entity, "Plays", "Score", "Listeners"}
	if showReleaseType {
		header = append(header, "Type")
	}

	r := Ranking{header: header}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.Itoa(e.Plays),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Listeners()),
		}
		if showReleaseType {
			row = append(row, e.ReleaseType)
		}
		r.rows = append(r.rows, row)
	}
	r.summary = fmt.Sprintf("Ranked %d %ss", len(entries), strings.ToLower(entity))
	return r
}

// weightedRanking renders the multi-period recency ranking.
func weightedRanking(entries []ranking.WeightedEntry, user string) Ranking {
	r := Ranking{
		header: []string{"Rank", "Song", "7d", "8-15d", "16-30d", "Score"},
	}
	for _, e := range entries {
		r.rows = append(r.rows, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			strconv.Itoa(e.Plays7Days),
			strconv.Itoa(e.Plays15Days),
			strconv.Itoa(e.Plays30Days),
			strconv.Itoa(e.WeightedScore),
		})
	}
	r.summary = fmt.Sprintf("Ranked %d songs for %s", len(entries), user)
	return r
}
