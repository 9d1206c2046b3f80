package ranking

import "testing"

func TestAssemble_sortsAndRanks(t *testing.T) {
	entries := []Entry{
		{Key: "low", Score: 10},
		{Key: "high", Score: 30},
		{Key: "mid", Score: 20},
	}

	out := Assemble(entries, nil, 0)

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if out[i].Key != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, out[i].Key)
		}
		if out[i].Rank != i+1 {
			t.Errorf("Position %d: expected rank %d, got %d", i, i+1, out[i].Rank)
		}
	}
}

func TestAssemble_tiesKeepFoldOrder(t *testing.T) {
	entries := []Entry{
		{Key: "first", Score: 10},
		{Key: "second", Score: 10},
	}

	out := Assemble(entries, nil, 0)
	if out[0].Key != "first" || out[1].Key != "second" {
		t.Fatalf("Equal scores should keep aggregation order, got %q, %q", out[0].Key, out[1].Key)
	}
}

func TestAssemble_filterAndLimit(t *testing.T) {
	entries := []Entry{
		{Key: "a", Score: 40},
		{Key: "b", Score: 30},
		{Key: "c", Score: 20},
		{Key: "d", Score: 10},
	}
	dropB := func(e Entry) bool { return e.Key != "b" }

	out := Assemble(entries, dropB, 2)

	if len(out) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(out))
	}
	// Ranks stay dense after filtering.
	if out[0].Key != "a" || out[0].Rank != 1 {
		t.Errorf("Expected a at rank 1, got %q at %d", out[0].Key, out[0].Rank)
	}
	if out[1].Key != "c" || out[1].Rank != 2 {
		t.Errorf("Expected c at rank 2, got %q at %d", out[1].Key, out[1].Rank)
	}
}

func TestAssemble_doesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{Key: "low", Score: 10},
		{Key: "high", Score: 30},
	}

	Assemble(entries, nil, 0)

	if entries[0].Key != "low" || entries[0].Rank != 0 {
		t.Fatalf("Input slice was mutated: %+v", entries[0])
	}
}
