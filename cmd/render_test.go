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
	"strings"
	"testing"

	"github.com/blvbruno/crewfm/internal/ranking"
)

func TestEntryRanking(t *testing.T) {
	entries := []ranking.Entry{
		{
			Rank:        1,
			Name:        "Muna - About U",
			Plays:       20,
			Score:       220,
			UserPlays:   map[string]int{"alice": 15, "bob": 5},
			ReleaseType: "album",
		},
	}

	out := entryRanking(entries, "Album", true).String()

	for _, want := range []string{"Muna - About U", "220", "album", "Ranked 1 albums"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}

func TestEntryRanking_withoutReleaseType(t *testing.T) {
	entries := []ranking.Entry{
		{Rank: 1, Name: "Phoenix", Plays: 15, Score: 200, ReleaseType: "album"},
	}

	out := entryRanking(entries, "Artist", false).String()

	if strings.Contains(out, "Type") {
		t.Errorf("Artist ranking should not have a Type column:\n%s", out)
	}
	if !strings.Contains(out, "Ranked 1 artists") {
		t.Errorf("Unexpected summary:\n%s", out)
	}
}

func TestWeightedRankingOutput(t *testing.T) {
	entries := []ranking.WeightedEntry{
		{Rank: 1, Name: "Muna - Solid", Plays7Days: 2, Plays15Days: 1, Plays30Days: 3, WeightedScore: 19},
	}

	out := weightedRanking(entries, "alice").String()

	for _, want := range []string{"Muna - Solid", "19", "Ranked 1 songs for alice"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output should contain %q:\n%s", want, out)
		}
	}
}
