package standings

import (
	"testing"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

func row(userID, points, correct, total int) *models.StandingsRow {
	r := &models.StandingsRow{
		UserID:       userID,
		TotalPoints:  points,
		CorrectPicks: correct,
		TotalPicks:   total,
		WeeklyPoints: map[int]int{},
	}
	if total > 0 {
		r.WinPercentage = float64(correct) / float64(total)
	}
	return r
}

func TestRankOrdering(t *testing.T) {
	rows := map[int]*models.StandingsRow{
		1: row(1, 5, 5, 10),
		2: row(2, 9, 7, 10),
		3: row(3, 9, 9, 10),
		4: row(4, 9, 7, 8), // same points and correct as user 2, better percentage
	}

	sorted := Rank(rows)
	wantOrder := []int{3, 4, 2, 1}
	for i, want := range wantOrder {
		if sorted[i].UserID != want {
			t.Fatalf("position %d: got user %d, want %d", i, sorted[i].UserID, want)
		}
		if sorted[i].Rank != i+1 {
			t.Fatalf("position %d: got rank %d, want %d", i, sorted[i].Rank, i+1)
		}
	}
}

func TestRankMonotonicity(t *testing.T) {
	rows := map[int]*models.StandingsRow{
		1: row(1, 12, 8, 16),
		2: row(2, 12, 8, 10),
		3: row(3, 20, 14, 16),
		4: row(4, 3, 3, 16),
		5: row(5, 12, 9, 16),
	}
	sorted := Rank(rows)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Rank >= cur.Rank {
			t.Fatalf("ranks not strictly increasing at %d: %d then %d", i, prev.Rank, cur.Rank)
		}
		if cur.TotalPoints > prev.TotalPoints {
			t.Fatalf("points out of order at %d", i)
		}
		if cur.TotalPoints == prev.TotalPoints && cur.CorrectPicks > prev.CorrectPicks {
			t.Fatalf("correct picks out of order at %d", i)
		}
		if cur.TotalPoints == prev.TotalPoints && cur.CorrectPicks == prev.CorrectPicks &&
			cur.WinPercentage > prev.WinPercentage {
			t.Fatalf("win percentage out of order at %d", i)
		}
	}
}

func TestRankFullTiesGetSequentialRanks(t *testing.T) {
	// Three identical records: ranks are still 1, 2, 3, not a shared rank.
	rows := map[int]*models.StandingsRow{
		7: row(7, 6, 6, 9),
		3: row(3, 6, 6, 9),
		5: row(5, 6, 6, 9),
	}
	sorted := Rank(rows)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(sorted))
	}
	for i, r := range sorted {
		if r.Rank != i+1 {
			t.Fatalf("position %d: got rank %d, want %d", i, r.Rank, i+1)
		}
	}
	// Full ties fall back to user id so the output is stable.
	if sorted[0].UserID != 3 || sorted[1].UserID != 5 || sorted[2].UserID != 7 {
		t.Fatalf("unexpected tie order: %d, %d, %d", sorted[0].UserID, sorted[1].UserID, sorted[2].UserID)
	}
}

func TestRankEmpty(t *testing.T) {
	sorted := Rank(map[int]*models.StandingsRow{})
	if len(sorted) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(sorted))
	}
}
