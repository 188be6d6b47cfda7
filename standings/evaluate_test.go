package standings

import (
	"testing"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

func intPtr(v int) *int                                    { return &v }
func floatPtr(v float64) *float64                          { return &v }
func sidePtr(s models.OverUnderSide) *models.OverUnderSide { return &s }

func finalGame(homeTeam, awayTeam, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:         1,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		Week:       3,
		Status:     models.GameStatusFinal,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func TestEvaluateStraight(t *testing.T) {
	game := finalGame(10, 20, 24, 21) // home wins 24-21

	tests := []struct {
		name       string
		pickedTeam int
		want       Verdict
	}{
		{name: "picked winner", pickedTeam: 10, want: Correct},
		{name: "picked loser", pickedTeam: 20, want: Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := &models.Pick{PickType: models.PickTypeStraight, PickedTeamID: intPtr(tt.pickedTeam)}
			got, err := Evaluate(pick, game)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateStraightTiedScoreIsIncorrectForBothSides(t *testing.T) {
	game := finalGame(10, 20, 14, 14)
	for _, team := range []int{10, 20} {
		pick := &models.Pick{PickType: models.PickTypeStraight, PickedTeamID: intPtr(team)}
		got, err := Evaluate(pick, game)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Incorrect {
			t.Fatalf("team %d: got %v, want Incorrect on tied score", team, got)
		}
	}
}

func TestEvaluateNotFinalIsUndecided(t *testing.T) {
	game := &models.Game{
		HomeTeamID: 10,
		AwayTeamID: 20,
		Status:     models.GameStatusScheduled,
	}
	for _, pick := range []*models.Pick{
		{PickType: models.PickTypeStraight, PickedTeamID: intPtr(10)},
		{PickType: models.PickTypeSpread, PickedTeamID: intPtr(20)},
		{PickType: models.PickTypeOverUnder, OverUnderSide: sidePtr(models.SideOver)},
	} {
		got, err := Evaluate(pick, game)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Undecided {
			t.Fatalf("pick type %s: got %v, want Undecided for scheduled game", pick.PickType, got)
		}
	}
}

func TestEvaluateFinalWithMissingScoreIsUndecided(t *testing.T) {
	game := &models.Game{
		HomeTeamID: 10,
		AwayTeamID: 20,
		Status:     models.GameStatusFinal,
		HomeScore:  intPtr(21),
	}
	pick := &models.Pick{PickType: models.PickTypeStraight, PickedTeamID: intPtr(10)}
	got, err := Evaluate(pick, game)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Undecided {
		t.Fatalf("got %v, want Undecided when away score is missing", got)
	}
}

func TestEvaluateSpread(t *testing.T) {
	// Home favored by 3.5: home 20, away 20 adjusts to 16.5 vs 20.
	game := finalGame(10, 20, 20, 20)
	game.PointSpread = floatPtr(-3.5)

	tests := []struct {
		name       string
		pickedTeam int
		want       Verdict
	}{
		{name: "away covers", pickedTeam: 20, want: Correct},
		{name: "home fails to cover", pickedTeam: 10, want: Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pick := &models.Pick{PickType: models.PickTypeSpread, PickedTeamID: intPtr(tt.pickedTeam)}
			got, err := Evaluate(pick, game)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateSpreadPushIsIncorrect(t *testing.T) {
	// Home favored by exactly 3; wins by exactly 3. Push loses for both sides.
	game := finalGame(10, 20, 24, 21)
	game.PointSpread = floatPtr(-3)

	for _, team := range []int{10, 20} {
		pick := &models.Pick{PickType: models.PickTypeSpread, PickedTeamID: intPtr(team)}
		got, err := Evaluate(pick, game)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != Incorrect {
			t.Fatalf("team %d: got %v, want Incorrect on push", team, got)
		}
	}
}

func TestEvaluateOverUnder(t *testing.T) {
	game := finalGame(10, 20, 27, 24) // total 51
	game.OverUnder = floatPtr(47.5)

	tests := []struct {
		name string
		side models.OverUnderSide
		line float64
		want Verdict
	}{
		{name: "over hits", side: models.SideOver, line: 47.5, want: Correct},
		{name: "under misses", side: models.SideUnder, line: 47.5, want: Incorrect},
		{name: "under hits high line", side: models.SideUnder, line: 55.5, want: Correct},
		{name: "push on exact line over", side: models.SideOver, line: 51, want: Incorrect},
		{name: "push on exact line under", side: models.SideUnder, line: 51, want: Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game.OverUnder = floatPtr(tt.line)
			pick := &models.Pick{PickType: models.PickTypeOverUnder, OverUnderSide: sidePtr(tt.side)}
			got, err := Evaluate(pick, game)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateUnknownPickType(t *testing.T) {
	game := finalGame(10, 20, 21, 14)
	pick := &models.Pick{PickType: models.PickType("parlay")}
	if _, err := Evaluate(pick, game); err == nil {
		t.Fatal("expected error for unknown pick type")
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		name    string
		scoring models.ScoringType
		pick    *models.Pick
		verdict Verdict
		want    int
	}{
		{name: "confidence uses pick value", scoring: models.ScoringConfidence, pick: &models.Pick{ConfidencePoints: intPtr(10)}, verdict: Correct, want: 10},
		{name: "confidence default", scoring: models.ScoringConfidence, pick: &models.Pick{}, verdict: Correct, want: 1},
		{name: "straight", scoring: models.ScoringStraight, pick: &models.Pick{ConfidencePoints: intPtr(10)}, verdict: Correct, want: 1},
		{name: "survivor scores like straight", scoring: models.ScoringSurvivor, pick: &models.Pick{}, verdict: Correct, want: 1},
		{name: "incorrect earns nothing", scoring: models.ScoringConfidence, pick: &models.Pick{ConfidencePoints: intPtr(10)}, verdict: Incorrect, want: 0},
		{name: "undecided earns nothing", scoring: models.ScoringStraight, pick: &models.Pick{}, verdict: Undecided, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Points(tt.pick, tt.scoring, tt.verdict)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPointsUnknownScoringType(t *testing.T) {
	if _, err := Points(&models.Pick{}, models.ScoringType("parimutuel"), Correct); err == nil {
		t.Fatal("expected error for unknown scoring type")
	}
}
