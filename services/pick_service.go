package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
)

type PickService interface {
	SubmitPick(ctx context.Context, userID, leagueID int, input SubmitPickInput) (*models.Pick, error)
	UpdatePick(ctx context.Context, userID, pickID int, input UpdatePickInput) (*models.Pick, error)
	DeletePick(ctx context.Context, userID, pickID int) error
	ListUserPicks(ctx context.Context, userID, leagueID int, week *int) ([]*models.Pick, error)
}

type SubmitPickInput struct {
	GameID           int                   `json:"game_id"`
	PickType         models.PickType       `json:"pick_type"`
	PickedTeamID     *int                  `json:"picked_team_id"`
	OverUnderSide    *models.OverUnderSide `json:"over_under_side"`
	ConfidencePoints *int                  `json:"confidence_points"`
}

type UpdatePickInput struct {
	PickedTeamID     *int                  `json:"picked_team_id"`
	OverUnderSide    *models.OverUnderSide `json:"over_under_side"`
	ConfidencePoints *int                  `json:"confidence_points"`
}

type pickService struct {
	pickRepo   repositories.PickRepository
	gameRepo   repositories.GameRepository
	leagueRepo repositories.LeagueRepository
	memberRepo repositories.MemberRepository
	now        func() time.Time
}

func NewPickService(
	pickRepo repositories.PickRepository,
	gameRepo repositories.GameRepository,
	leagueRepo repositories.LeagueRepository,
	memberRepo repositories.MemberRepository,
) PickService {
	return &pickService{
		pickRepo:   pickRepo,
		gameRepo:   gameRepo,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// validatePickInput checks the type-specific shape of a pick: straight and
// spread picks name one of the game's two teams, over/under picks name a
// side, and confidence points stay in range.
func validatePickInput(game *models.Game, pickType models.PickType, pickedTeamID *int, side *models.OverUnderSide, confidence *int) error {
	if !pickType.Valid() {
		return ErrPickInvalidType
	}

	switch pickType {
	case models.PickTypeStraight, models.PickTypeSpread:
		if pickedTeamID == nil {
			return ErrPickTeamRequired
		}
		if *pickedTeamID != game.HomeTeamID && *pickedTeamID != game.AwayTeamID {
			return ErrPickTeamNotInGame
		}
	case models.PickTypeOverUnder:
		if side == nil {
			return ErrPickSideRequired
		}
		if *side != models.SideOver && *side != models.SideUnder {
			return ErrPickSideRequired
		}
	}

	if confidence != nil {
		if *confidence < models.MinConfidencePoints || *confidence > models.MaxConfidencePoints {
			return ErrPickInvalidConfidence
		}
	}
	return nil
}

func (s *pickService) SubmitPick(ctx context.Context, userID, leagueID int, input SubmitPickInput) (*models.Pick, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to load league %d: %w", leagueID, err)
	}
	if !league.IsActive {
		return nil, ErrLeagueInactive
	}

	isMember, err := s.memberRepo.Contains(ctx, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, ErrPickNotMember
	}

	game, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", input.GameID, err)
	}
	if game.HasStarted(s.now()) {
		return nil, ErrPickAfterKickoff
	}

	if err := validatePickInput(game, input.PickType, input.PickedTeamID, input.OverUnderSide, input.ConfidencePoints); err != nil {
		return nil, err
	}

	pick := &models.Pick{
		UserID:           userID,
		LeagueID:         leagueID,
		GameID:           input.GameID,
		PickType:         input.PickType,
		PickedTeamID:     input.PickedTeamID,
		OverUnderSide:    input.OverUnderSide,
		ConfidencePoints: input.ConfidencePoints,
	}
	if pick.PickType == models.PickTypeOverUnder {
		pick.PickedTeamID = nil
	}

	if err := s.pickRepo.Create(ctx, pick); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPickConflict):
			return nil, ErrPickConflict
		case errors.Is(err, repositories.ErrPickGameInvalid):
			return nil, ErrGameNotFound
		case errors.Is(err, repositories.ErrPickTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create pick: %w", err)
	}
	pick.Game = game
	return pick, nil
}

// loadOwnedMutablePick fetches the pick, checks ownership and the kickoff
// gate shared by update and delete.
func (s *pickService) loadOwnedMutablePick(ctx context.Context, userID, pickID int) (*models.Pick, *models.Game, error) {
	pick, err := s.pickRepo.GetByID(ctx, pickID)
	if err != nil {
		if errors.Is(err, repositories.ErrPickNotFound) {
			return nil, nil, ErrPickNotFound
		}
		return nil, nil, fmt.Errorf("failed to load pick %d: %w", pickID, err)
	}
	if pick.UserID != userID {
		return nil, nil, ErrForbiddenOperation
	}

	game, err := s.gameRepo.GetByID(ctx, pick.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load game %d: %w", pick.GameID, err)
	}
	if game.HasStarted(s.now()) {
		return nil, nil, ErrPickAfterKickoff
	}
	return pick, game, nil
}

func (s *pickService) UpdatePick(ctx context.Context, userID, pickID int, input UpdatePickInput) (*models.Pick, error) {
	pick, game, err := s.loadOwnedMutablePick(ctx, userID, pickID)
	if err != nil {
		return nil, err
	}

	if input.PickedTeamID != nil {
		pick.PickedTeamID = input.PickedTeamID
	}
	if input.OverUnderSide != nil {
		pick.OverUnderSide = input.OverUnderSide
	}
	if input.ConfidencePoints != nil {
		pick.ConfidencePoints = input.ConfidencePoints
	}

	if err := validatePickInput(game, pick.PickType, pick.PickedTeamID, pick.OverUnderSide, pick.ConfidencePoints); err != nil {
		return nil, err
	}

	if err := s.pickRepo.Update(ctx, pick); err != nil {
		if errors.Is(err, repositories.ErrPickNotFound) {
			return nil, ErrPickNotFound
		}
		return nil, fmt.Errorf("failed to update pick %d: %w", pickID, err)
	}
	pick.Game = game
	return pick, nil
}

func (s *pickService) DeletePick(ctx context.Context, userID, pickID int) error {
	pick, _, err := s.loadOwnedMutablePick(ctx, userID, pickID)
	if err != nil {
		return err
	}
	if err := s.pickRepo.Delete(ctx, pick.ID); err != nil {
		if errors.Is(err, repositories.ErrPickNotFound) {
			return ErrPickNotFound
		}
		return fmt.Errorf("failed to delete pick %d: %w", pickID, err)
	}
	return nil
}

func (s *pickService) ListUserPicks(ctx context.Context, userID, leagueID int, week *int) ([]*models.Pick, error) {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to load league %d: %w", leagueID, err)
	}
	picks, err := s.pickRepo.ListByLeague(ctx, leagueID, repositories.ListPicksFilter{UserID: &userID, Week: week})
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}
