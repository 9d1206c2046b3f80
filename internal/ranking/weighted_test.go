package ranking

import "testing"

func TestWindows_weightedScore(t *testing.T) {
	w := NewWindows(identityKey)
	w.Fold(Last7Days, "alice", []Record{{Artist: "Muna", Name: "Solid", Plays: 2}})
	w.Fold(Days8To15, "alice", []Record{{Artist: "Muna", Name: "Solid", Plays: 1}})
	w.Fold(Days16To30, "alice", []Record{{Artist: "Muna", Name: "Solid", Plays: 3}})

	out := w.Ranking(0)
	if len(out) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(out))
	}

	e := out[0]
	// 2*5 + 1*3 + 3*2 = 19.
	if e.WeightedScore != 19 {
		t.Errorf("Expected weighted score 19, got %d", e.WeightedScore)
	}
	if e.Points7Days != 10 || e.Points15Days != 3 || e.Points30Days != 6 {
		t.Errorf("Unexpected per-window points: %d/%d/%d", e.Points7Days, e.Points15Days, e.Points30Days)
	}
	if e.UserPlays["alice"] != 6 {
		t.Errorf("Expected 6 total plays, got %d", e.UserPlays["alice"])
	}
	if e.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", e.Rank)
	}
}

func TestWindows_recentPlaysOutweighOlder(t *testing.T) {
	w := NewWindows(identityKey)
	w.Fold(Last7Days, "alice", []Record{{Artist: "A", Name: "Recent", Plays: 3}})
	w.Fold(Days16To30, "alice", []Record{{Artist: "B", Name: "Older", Plays: 5}})

	out := w.Ranking(0)
	// 3*5 = 15 beats 5*2 = 10.
	if out[0].Key != "A - Recent" {
		t.Fatalf("Recent plays should rank first, got %q", out[0].Key)
	}
}

func TestWindows_limit(t *testing.T) {
	w := NewWindows(identityKey)
	w.Fold(Last7Days, "alice", []Record{
		{Artist: "A", Name: "One", Plays: 3},
		{Artist: "B", Name: "Two", Plays: 2},
		{Artist: "C", Name: "Three", Plays: 1},
	})

	out := w.Ranking(2)
	if len(out) != 2 {
		t.Fatalf("Expected truncation to 2, got %d", len(out))
	}
	if out[1].Rank != 2 {
		t.Errorf("Expected rank 2, got %d", out[1].Rank)
	}
}

func TestWindows_duplicateKeysSum(t *testing.T) {
	w := NewWindows(identityKey)
	w.Fold(Last7Days, "alice", []Record{
		{Artist: "A", Name: "One", Plays: 2},
		{Artist: "A", Name: "One", Plays: 4},
	})

	out := w.Ranking(0)
	if len(out) != 1 {
		t.Fatalf("Expected duplicate rows to merge, got %d entries", len(out))
	}
	if out[0].Plays7Days != 6 {
		t.Errorf("Expected 6 plays, got %d", out[0].Plays7Days)
	}
}
