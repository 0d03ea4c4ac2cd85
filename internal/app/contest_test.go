package app

import (
	"testing"

	"anagram-quiz-service/internal/domain"
)

func result(id string, times ...float64) ParticipantResult {
	return ParticipantResult{
		Participant: domain.Participant{ID: id, Name: id},
		Data:        ContestData{SolveTimes: times},
	}
}

func expectOrder(t *testing.T, entries []domain.LeaderboardEntry, ids ...string) {
	t.Helper()
	if len(entries) != len(ids) {
		t.Fatalf("expected %d entries, got %+v", len(ids), entries)
	}
	for i, id := range ids {
		if entries[i].UserID != id || entries[i].Rank != i+1 {
			t.Fatalf("entry %d: expected %s ranked %d, got %+v", i, id, i+1, entries[i])
		}
	}
}

func TestAggregateOrdersBySolvesThenMean(t *testing.T) {
	entries := Aggregate([]ParticipantResult{
		result("p1", 1.0, 2.0, 3.0),
		result("p2", 0.5, 1.0, 1.5),
		result("p3", 5.0),
	})
	expectOrder(t, entries, "p2", "p1", "p3")
}

func TestAggregateKeepsInputOrderForTies(t *testing.T) {
	// 1.0004 and 1.0001 round to the same millisecond key.
	entries := Aggregate([]ParticipantResult{
		result("late", 1.0004),
		result("early", 1.0001),
	})
	expectOrder(t, entries, "late", "early")
}

func TestFormatLeaderboard(t *testing.T) {
	entries := Aggregate([]ParticipantResult{
		result("Bob", 2.0),
		result("Alice", 1.0, 2.0),
	})
	want := "1st Alice: 2 AC, average speed = 1.500 sec\n2nd Bob: 1 AC, average speed = 2.000 sec"
	if got := FormatLeaderboard(entries); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := FormatLeaderboard(nil); got != "" {
		t.Fatalf("expected empty leaderboard, got %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 101: "101st", 111: "111th",
	}
	for n, want := range cases {
		if got := Ordinal(n); got != want {
			t.Fatalf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestContestBoardCreditsInFirstSolveOrder(t *testing.T) {
	b := newContestBoard()
	b.credit(domain.Participant{ID: "b", Name: "Bob"}, 1)
	b.credit(domain.Participant{ID: "a", Name: "Alice"}, 2)
	b.credit(domain.Participant{ID: "b", Name: "Bob"}, 3)

	results := b.results()
	if len(results) != 2 || results[0].Participant.ID != "b" {
		t.Fatalf("expected Bob first, got %+v", results)
	}
	if results[0].Data.Count() != 2 || results[0].Data.Mean() != 2.0 {
		t.Fatalf("expected 2 solves averaging 2s, got %+v", results[0].Data)
	}

	b.reset()
	if got := b.results(); len(got) != 0 {
		t.Fatalf("expected empty board after reset, got %+v", got)
	}
}
