package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
)

type fakeGameRepo struct {
	game *models.Game
	err  error
}

func (f *fakeGameRepo) Create(ctx context.Context, game *models.Game) error { return nil }
func (f *fakeGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.game, nil
}
func (f *fakeGameRepo) Update(ctx context.Context, exec repositories.SQLExecutor, game *models.Game) error {
	return nil
}
func (f *fakeGameRepo) List(ctx context.Context, filter repositories.ListGamesFilter) ([]*models.Game, error) {
	return nil, nil
}
func (f *fakeGameRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func scheduledGame(kickoff time.Time) *models.Game {
	spread := -3.5
	total := 44.5
	return &models.Game{
		ID:          1,
		HomeTeamID:  100,
		AwayTeamID:  200,
		Week:        1,
		SeasonYear:  2025,
		Kickoff:     kickoff,
		PointSpread: &spread,
		OverUnder:   &total,
		Status:      models.GameStatusScheduled,
	}
}

func newPickServiceAt(t *testing.T, game *models.Game, now time.Time) (PickService, *fakePickRepo) {
	t.Helper()
	pickRepo := &fakePickRepo{}
	svc := NewPickService(
		pickRepo,
		&fakeGameRepo{game: game},
		&fakeLeagueRepo{league: testLeague(models.ScoringStraight)},
		&fakeMemberRepo{contains: true},
	)
	svc.(*pickService).now = func() time.Time { return now }
	return svc, pickRepo
}

func TestSubmitPickBeforeKickoff(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	game := scheduledGame(kickoff)
	svc, pickRepo := newPickServiceAt(t, game, kickoff.Add(-time.Hour))

	team := 100
	pick, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
		GameID:       1,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &team,
	})
	if err != nil {
		t.Fatalf("SubmitPick returned error: %v", err)
	}
	if pick.PickedTeamID == nil || *pick.PickedTeamID != 100 {
		t.Errorf("PickedTeamID = %v, want 100", pick.PickedTeamID)
	}
	if len(pickRepo.created) != 1 {
		t.Fatalf("created %d picks, want 1", len(pickRepo.created))
	}
}

func TestSubmitPickAfterKickoffRejected(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	game := scheduledGame(kickoff)

	for _, tc := range []struct {
		name string
		now  time.Time
	}{
		{"at kickoff", kickoff},
		{"after kickoff", kickoff.Add(time.Minute)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newPickServiceAt(t, game, tc.now)

			team := 100
			_, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
				GameID:       1,
				PickType:     models.PickTypeStraight,
				PickedTeamID: &team,
			})
			if !errors.Is(err, ErrPickAfterKickoff) {
				t.Errorf("got %v, want ErrPickAfterKickoff", err)
			}
		})
	}
}

func TestSubmitPickShapeValidation(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	game := scheduledGame(kickoff)

	outsider := 999
	home := 100
	side := models.SideOver
	lowConfidence := 0
	highConfidence := 17

	tests := []struct {
		name    string
		input   SubmitPickInput
		wantErr error
	}{
		{
			name:    "unknown type",
			input:   SubmitPickInput{GameID: 1, PickType: "parlay", PickedTeamID: &home},
			wantErr: ErrPickInvalidType,
		},
		{
			name:    "straight without team",
			input:   SubmitPickInput{GameID: 1, PickType: models.PickTypeStraight},
			wantErr: ErrPickTeamRequired,
		},
		{
			name:    "straight with team not in game",
			input:   SubmitPickInput{GameID: 1, PickType: models.PickTypeStraight, PickedTeamID: &outsider},
			wantErr: ErrPickTeamNotInGame,
		},
		{
			name:    "over under without side",
			input:   SubmitPickInput{GameID: 1, PickType: models.PickTypeOverUnder},
			wantErr: ErrPickSideRequired,
		},
		{
			name: "confidence too low",
			input: SubmitPickInput{
				GameID: 1, PickType: models.PickTypeStraight,
				PickedTeamID: &home, ConfidencePoints: &lowConfidence,
			},
			wantErr: ErrPickInvalidConfidence,
		},
		{
			name: "confidence too high",
			input: SubmitPickInput{
				GameID: 1, PickType: models.PickTypeStraight,
				PickedTeamID: &home, ConfidencePoints: &highConfidence,
			},
			wantErr: ErrPickInvalidConfidence,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newPickServiceAt(t, game, kickoff.Add(-time.Hour))
			if _, err := svc.SubmitPick(context.Background(), 1, 7, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("over under clears picked team", func(t *testing.T) {
		svc, pickRepo := newPickServiceAt(t, game, kickoff.Add(-time.Hour))
		pick, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
			GameID:        1,
			PickType:      models.PickTypeOverUnder,
			PickedTeamID:  &home,
			OverUnderSide: &side,
		})
		if err != nil {
			t.Fatalf("SubmitPick returned error: %v", err)
		}
		if pick.PickedTeamID != nil {
			t.Errorf("PickedTeamID = %v, want nil for over/under", *pick.PickedTeamID)
		}
		if len(pickRepo.created) != 1 {
			t.Fatalf("created %d picks, want 1", len(pickRepo.created))
		}
	})
}

func TestSubmitPickDuplicateConflict(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	game := scheduledGame(kickoff)

	pickRepo := &fakePickRepo{createErr: repositories.ErrPickConflict}
	svc := NewPickService(
		pickRepo,
		&fakeGameRepo{game: game},
		&fakeLeagueRepo{league: testLeague(models.ScoringStraight)},
		&fakeMemberRepo{contains: true},
	)
	svc.(*pickService).now = func() time.Time { return kickoff.Add(-time.Hour) }

	team := 100
	_, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
		GameID:       1,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &team,
	})
	if !errors.Is(err, ErrPickConflict) {
		t.Errorf("got %v, want ErrPickConflict", err)
	}
}

func TestSubmitPickNonMemberRejected(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	game := scheduledGame(kickoff)

	svc := NewPickService(
		&fakePickRepo{},
		&fakeGameRepo{game: game},
		&fakeLeagueRepo{league: testLeague(models.ScoringStraight)},
		&fakeMemberRepo{contains: false},
	)
	svc.(*pickService).now = func() time.Time { return kickoff.Add(-time.Hour) }

	team := 100
	_, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
		GameID:       1,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &team,
	})
	if !errors.Is(err, ErrPickNotMember) {
		t.Errorf("got %v, want ErrPickNotMember", err)
	}
}

func TestSubmitPickInactiveLeagueRejected(t *testing.T) {
	kickoff := time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC)
	league := testLeague(models.ScoringStraight)
	league.IsActive = false

	svc := NewPickService(
		&fakePickRepo{},
		&fakeGameRepo{game: scheduledGame(kickoff)},
		&fakeLeagueRepo{league: league},
		&fakeMemberRepo{contains: true},
	)
	svc.(*pickService).now = func() time.Time { return kickoff.Add(-time.Hour) }

	team := 100
	_, err := svc.SubmitPick(context.Background(), 1, 7, SubmitPickInput{
		GameID:       1,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &team,
	})
	if !errors.Is(err, ErrLeagueInactive) {
		t.Errorf("got %v, want ErrLeagueInactive", err)
	}
}
