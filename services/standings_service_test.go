package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
)

type fakeLeagueRepo struct {
	league *models.League
	err    error
}

func (f *fakeLeagueRepo) Create(ctx context.Context, league *models.League) error { return nil }
func (f *fakeLeagueRepo) GetByID(ctx context.Context, id int) (*models.League, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.league, nil
}
func (f *fakeLeagueRepo) Update(ctx context.Context, league *models.League) error { return nil }
func (f *fakeLeagueRepo) Deactivate(ctx context.Context, id int) error            { return nil }
func (f *fakeLeagueRepo) List(ctx context.Context, filter repositories.ListLeaguesFilter) ([]*models.League, error) {
	return nil, nil
}
func (f *fakeLeagueRepo) Count(ctx context.Context, onlyActive bool) (int, error) { return 0, nil }

type fakeMemberRepo struct {
	users    []models.User
	contains bool
}

func (f *fakeMemberRepo) Add(ctx context.Context, leagueID, userID int) error    { return nil }
func (f *fakeMemberRepo) Remove(ctx context.Context, leagueID, userID int) error { return nil }
func (f *fakeMemberRepo) Contains(ctx context.Context, leagueID, userID int) (bool, error) {
	return f.contains, nil
}
func (f *fakeMemberRepo) Count(ctx context.Context, leagueID int) (int, error) {
	return len(f.users), nil
}
func (f *fakeMemberRepo) ListUsers(ctx context.Context, leagueID int) ([]models.User, error) {
	return f.users, nil
}

type fakePickRepo struct {
	picks []*models.Pick
	// lastFilter records what the service passed down so tests can assert
	// that week scoping happens at the query, not in memory.
	lastFilter repositories.ListPicksFilter
	createErr  error
	created    []*models.Pick
}

func (f *fakePickRepo) Create(ctx context.Context, pick *models.Pick) error {
	if f.createErr != nil {
		return f.createErr
	}
	pick.ID = len(f.created) + 1
	f.created = append(f.created, pick)
	return nil
}
func (f *fakePickRepo) GetByID(ctx context.Context, id int) (*models.Pick, error) {
	return nil, repositories.ErrPickNotFound
}
func (f *fakePickRepo) Update(ctx context.Context, pick *models.Pick) error { return nil }
func (f *fakePickRepo) Delete(ctx context.Context, id int) error            { return nil }
func (f *fakePickRepo) ListByLeague(ctx context.Context, leagueID int, filter repositories.ListPicksFilter) ([]*models.Pick, error) {
	f.lastFilter = filter
	if filter.Week == nil {
		return f.picks, nil
	}
	var out []*models.Pick
	for _, p := range f.picks {
		if p.Game != nil && p.Game.Week == *filter.Week {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePickRepo) ListByGame(ctx context.Context, gameID int) ([]*models.Pick, error) {
	return nil, nil
}
func (f *fakePickRepo) UpdateIsCorrect(ctx context.Context, exec repositories.SQLExecutor, pickID int, isCorrect *bool) error {
	return nil
}
func (f *fakePickRepo) Count(ctx context.Context) (int, error) { return len(f.picks), nil }

func testLeague(scoring models.ScoringType) *models.League {
	return &models.League{
		ID:              7,
		Name:            "office pool",
		Visibility:      models.VisibilityPublic,
		CommissionerID:  1,
		ScoringType:     scoring,
		MaxParticipants: 10,
		SeasonYear:      2025,
		IsActive:        true,
	}
}

func testFinalGame(id, week, homeScore, awayScore int) *models.Game {
	hs, as := homeScore, awayScore
	return &models.Game{
		ID:         id,
		HomeTeamID: 100,
		AwayTeamID: 200,
		Week:       week,
		SeasonYear: 2025,
		Kickoff:    time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC),
		HomeScore:  &hs,
		AwayScore:  &as,
		Status:     models.GameStatusFinal,
	}
}

func testStraightPick(userID int, game *models.Game, pickedTeamID int) *models.Pick {
	team := pickedTeamID
	return &models.Pick{
		UserID:       userID,
		LeagueID:     7,
		GameID:       game.ID,
		PickType:     models.PickTypeStraight,
		PickedTeamID: &team,
		Game:         game,
		PickedTeam:   &models.Team{ID: pickedTeamID},
	}
}

func TestGetStandingsSeasonTotals(t *testing.T) {
	week1 := testFinalGame(1, 1, 24, 17) // home wins
	week2 := testFinalGame(2, 2, 10, 31) // away wins

	leagueRepo := &fakeLeagueRepo{league: testLeague(models.ScoringStraight)}
	memberRepo := &fakeMemberRepo{users: []models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}}
	pickRepo := &fakePickRepo{picks: []*models.Pick{
		testStraightPick(1, week1, 100), // correct
		testStraightPick(1, week2, 200), // correct
		testStraightPick(2, week1, 200), // incorrect
		testStraightPick(2, week2, 200), // correct
	}}

	svc := NewStandingsService(leagueRepo, memberRepo, pickRepo)
	result, err := svc.GetStandings(context.Background(), 7, nil)
	if err != nil {
		t.Fatalf("GetStandings returned error: %v", err)
	}

	if result.LeagueID != "7" {
		t.Errorf("LeagueID = %q, want %q", result.LeagueID, "7")
	}
	if result.ScoringType != models.ScoringStraight {
		t.Errorf("ScoringType = %q, want %q", result.ScoringType, models.ScoringStraight)
	}
	if result.Week != nil {
		t.Errorf("Week = %v, want nil for season standings", *result.Week)
	}
	if len(result.Standings) != 2 {
		t.Fatalf("got %d standings rows, want 2", len(result.Standings))
	}

	first := result.Standings[0]
	if first.UserID != 1 || first.TotalPoints != 2 || first.Rank != 1 {
		t.Errorf("first row = user %d, points %d, rank %d; want user 1, points 2, rank 1",
			first.UserID, first.TotalPoints, first.Rank)
	}
	second := result.Standings[1]
	if second.UserID != 2 || second.TotalPoints != 1 || second.Rank != 2 {
		t.Errorf("second row = user %d, points %d, rank %d; want user 2, points 1, rank 2",
			second.UserID, second.TotalPoints, second.Rank)
	}
}

func TestGetStandingsWeekScoped(t *testing.T) {
	week1 := testFinalGame(1, 1, 24, 17)
	week2 := testFinalGame(2, 2, 10, 31)

	leagueRepo := &fakeLeagueRepo{league: testLeague(models.ScoringStraight)}
	memberRepo := &fakeMemberRepo{users: []models.User{{ID: 1, Username: "alice"}}}
	pickRepo := &fakePickRepo{picks: []*models.Pick{
		testStraightPick(1, week1, 100),
		testStraightPick(1, week2, 100),
	}}

	svc := NewStandingsService(leagueRepo, memberRepo, pickRepo)
	week := 1
	result, err := svc.GetStandings(context.Background(), 7, &week)
	if err != nil {
		t.Fatalf("GetStandings returned error: %v", err)
	}

	if pickRepo.lastFilter.Week == nil || *pickRepo.lastFilter.Week != 1 {
		t.Errorf("pick query was not scoped to week 1: %+v", pickRepo.lastFilter)
	}
	if result.Week == nil || *result.Week != 1 {
		t.Fatalf("result.Week = %v, want 1", result.Week)
	}

	row := result.Standings[0]
	if row.TotalPicks != 1 || row.TotalPoints != 1 {
		t.Errorf("week 1 row: picks %d, points %d; want 1 and 1", row.TotalPicks, row.TotalPoints)
	}
	if got := row.WeeklyPoints[1]; got != 1 {
		t.Errorf("WeeklyPoints[1] = %d, want 1", got)
	}
}

func TestGetStandingsInvalidWeek(t *testing.T) {
	svc := NewStandingsService(&fakeLeagueRepo{}, &fakeMemberRepo{}, &fakePickRepo{})

	for _, week := range []int{0, -1, models.MaxWeek + 1} {
		w := week
		if _, err := svc.GetStandings(context.Background(), 7, &w); !errors.Is(err, ErrGameInvalidWeek) {
			t.Errorf("week %d: got %v, want ErrGameInvalidWeek", week, err)
		}
	}
}

func TestGetStandingsLeagueNotFound(t *testing.T) {
	leagueRepo := &fakeLeagueRepo{err: repositories.ErrLeagueNotFound}
	svc := NewStandingsService(leagueRepo, &fakeMemberRepo{}, &fakePickRepo{})

	if _, err := svc.GetStandings(context.Background(), 99, nil); !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("got %v, want ErrLeagueNotFound", err)
	}
}

func TestGetStandingsStripsPasswordHashes(t *testing.T) {
	leagueRepo := &fakeLeagueRepo{league: testLeague(models.ScoringStraight)}
	memberRepo := &fakeMemberRepo{users: []models.User{
		{ID: 1, Username: "alice", PasswordHash: "bcrypt-blob"},
	}}
	svc := NewStandingsService(leagueRepo, memberRepo, &fakePickRepo{})

	result, err := svc.GetStandings(context.Background(), 7, nil)
	if err != nil {
		t.Fatalf("GetStandings returned error: %v", err)
	}
	if result.Standings[0].User != nil && result.Standings[0].User.PasswordHash != "" {
		t.Error("standings row leaked a password hash")
	}
}
