package standings

import (
	"reflect"
	"testing"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

func straightPick(userID, gameID, pickedTeam int, game *models.Game) *models.Pick {
	return &models.Pick{
		UserID:       userID,
		GameID:       gameID,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &pickedTeam,
		Game:         game,
		PickedTeam:   &models.Team{ID: pickedTeam},
	}
}

func TestAggregateStraightLeague(t *testing.T) {
	// One final game decided 24-21 for the home side; A picked home, B away.
	game := finalGame(10, 20, 24, 21)
	participants := []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
	picks := []*models.Pick{
		straightPick(1, game.ID, 10, game),
		straightPick(2, game.ID, 20, game),
	}

	sorted, err := Compute(participants, picks, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sorted) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sorted))
	}

	a, b := sorted[0], sorted[1]
	if a.UserID != 1 || a.TotalPoints != 1 || a.CorrectPicks != 1 || a.TotalPicks != 1 || a.Rank != 1 {
		t.Fatalf("unexpected winner row: %+v", a)
	}
	if b.UserID != 2 || b.TotalPoints != 0 || b.CorrectPicks != 0 || b.TotalPicks != 1 || b.Rank != 2 {
		t.Fatalf("unexpected loser row: %+v", b)
	}
	if a.WinPercentage != 1 || b.WinPercentage != 0 {
		t.Fatalf("unexpected win percentages: %v, %v", a.WinPercentage, b.WinPercentage)
	}
	if a.WeeklyPoints[game.Week] != 1 {
		t.Fatalf("expected 1 point in week %d, got %+v", game.Week, a.WeeklyPoints)
	}
}

func TestAggregateConfidenceLeague(t *testing.T) {
	game := finalGame(10, 20, 24, 21)
	participants := []models.User{{ID: 1}, {ID: 2}}
	winning := straightPick(1, game.ID, 10, game)
	winning.ConfidencePoints = intPtr(10)
	picks := []*models.Pick{winning, straightPick(2, game.ID, 20, game)}

	sorted, err := Compute(participants, picks, models.ScoringConfidence, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sorted[0].UserID != 1 || sorted[0].TotalPoints != 10 {
		t.Fatalf("expected 10 confidence points, got %+v", sorted[0])
	}
}

func TestAggregateScheduledGameCountsPickButNoPoints(t *testing.T) {
	game := &models.Game{ID: 5, HomeTeamID: 10, AwayTeamID: 20, Week: 1, Status: models.GameStatusScheduled}
	participants := []models.User{{ID: 1}}
	picks := []*models.Pick{straightPick(1, game.ID, 10, game)}

	rows, err := Aggregate(participants, picks, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := rows[1]
	if row.TotalPicks != 1 || row.CorrectPicks != 0 || row.TotalPoints != 0 {
		t.Fatalf("unexpected row for scheduled game: %+v", row)
	}
	if row.WinPercentage != 0 {
		t.Fatalf("expected zero win percentage, got %v", row.WinPercentage)
	}
}

func TestAggregateZeroPickParticipantsStillAppear(t *testing.T) {
	participants := []models.User{{ID: 1}, {ID: 2}, {ID: 3}}
	rows, err := Aggregate(participants, nil, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for id, row := range rows {
		if row.TotalPoints != 0 || row.CorrectPicks != 0 || row.TotalPicks != 0 || row.WinPercentage != 0 {
			t.Fatalf("user %d: expected zeroed row, got %+v", id, row)
		}
	}
}

func TestAggregateIgnoresNonParticipants(t *testing.T) {
	game := finalGame(10, 20, 24, 21)
	participants := []models.User{{ID: 1}}
	picks := []*models.Pick{
		straightPick(1, game.ID, 10, game),
		straightPick(99, game.ID, 10, game), // left the league
	}

	rows, err := Aggregate(participants, picks, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, ok := rows[99]; ok {
		t.Fatal("non-participant must not get a row")
	}
}

func TestAggregateSkipsUnresolvedPicks(t *testing.T) {
	game := finalGame(10, 20, 24, 21)
	participants := []models.User{{ID: 1}}

	noGame := straightPick(1, game.ID, 10, game)
	noGame.Game = nil
	noTeam := straightPick(1, game.ID, 10, game)
	noTeam.PickedTeam = nil

	rows, err := Aggregate(participants, []*models.Pick{noGame, noTeam}, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[1].TotalPicks != 0 {
		t.Fatalf("unresolved picks must be skipped, got %+v", rows[1])
	}
}

func TestAggregateWeekFilter(t *testing.T) {
	week3 := finalGame(10, 20, 24, 21)
	week3.ID, week3.Week = 1, 3
	week4 := finalGame(10, 20, 17, 13)
	week4.ID, week4.Week = 2, 4

	participants := []models.User{{ID: 1}}
	picks := []*models.Pick{
		straightPick(1, week3.ID, 10, week3),
		straightPick(1, week4.ID, 10, week4),
	}

	filter := 3
	rows, err := Aggregate(participants, picks, models.ScoringStraight, &filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := rows[1]
	if row.TotalPicks != 1 || row.TotalPoints != 1 {
		t.Fatalf("week filter leaked other weeks: %+v", row)
	}
	if _, ok := row.WeeklyPoints[4]; ok {
		t.Fatalf("week 4 bucket must be absent under the filter: %+v", row.WeeklyPoints)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	game := finalGame(10, 20, 24, 21)
	participants := []models.User{{ID: 1}, {ID: 2}}
	picks := []*models.Pick{
		straightPick(1, game.ID, 10, game),
		straightPick(2, game.ID, 20, game),
	}

	first, err := Compute(participants, picks, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(participants, picks, models.ScoringStraight, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated computation diverged:\n%+v\n%+v", first, second)
	}
}
