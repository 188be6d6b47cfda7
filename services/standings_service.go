package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/standings"
	"golang.org/x/sync/errgroup"
)

// StandingsResult is the standings response envelope.
type StandingsResult struct {
	Standings   []*models.StandingsRow `json:"standings"`
	Week        *int                   `json:"week,omitempty"`
	LeagueID    string                 `json:"leagueId"`
	ScoringType models.ScoringType     `json:"scoringType"`
}

type StandingsService interface {
	GetStandings(ctx context.Context, leagueID int, week *int) (*StandingsResult, error)
}

type standingsService struct {
	leagueRepo repositories.LeagueRepository
	memberRepo repositories.MemberRepository
	pickRepo   repositories.PickRepository
}

func NewStandingsService(
	leagueRepo repositories.LeagueRepository,
	memberRepo repositories.MemberRepository,
	pickRepo repositories.PickRepository,
) StandingsService {
	return &standingsService{
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		pickRepo:   pickRepo,
	}
}

// GetStandings loads a consistent snapshot of the league's members and picks
// and folds it through the standings engine. The computation itself is pure;
// everything stateful happens in the two loads, which run concurrently.
func (s *standingsService) GetStandings(ctx context.Context, leagueID int, week *int) (*StandingsResult, error) {
	if week != nil && (*week < models.MinWeek || *week > models.MaxWeek) {
		return nil, ErrGameInvalidWeek
	}

	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to load league %d: %w", leagueID, err)
	}

	var (
		members []models.User
		picks   []*models.Pick
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.memberRepo.ListUsers(gctx, leagueID)
		if err != nil {
			return fmt.Errorf("failed to list members of league %d: %w", leagueID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		picks, err = s.pickRepo.ListByLeague(gctx, leagueID, repositories.ListPicksFilter{Week: week})
		if err != nil {
			return fmt.Errorf("failed to list picks for league %d: %w", leagueID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range members {
		members[i].PasswordHash = ""
	}

	rows, err := standings.Compute(members, picks, league.ScoringType, week)
	if err != nil {
		return nil, fmt.Errorf("failed to compute standings for league %d: %w", leagueID, err)
	}

	return &StandingsResult{
		Standings:   rows,
		Week:        week,
		LeagueID:    fmt.Sprintf("%d", leagueID),
		ScoringType: league.ScoringType,
	}, nil
}
