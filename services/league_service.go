package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
)

type LeagueService interface {
	CreateLeague(ctx context.Context, commissionerID int, input CreateLeagueInput) (*models.League, error)
	GetLeagueByID(ctx context.Context, id int) (*models.League, error)
	UpdateLeague(ctx context.Context, currentUserID, leagueID int, input UpdateLeagueInput) (*models.League, error)
	DeactivateLeague(ctx context.Context, currentUserID, leagueID int) error
	ListLeagues(ctx context.Context, filter repositories.ListLeaguesFilter) ([]*models.League, error)
	JoinLeague(ctx context.Context, userID, leagueID int) error
	LeaveLeague(ctx context.Context, userID, leagueID int) error
	RemoveMember(ctx context.Context, currentUserID, leagueID, memberID int) error
	ListMembers(ctx context.Context, leagueID int) ([]models.User, error)
}

type CreateLeagueInput struct {
	Name            string                  `json:"name"`
	Visibility      models.LeagueVisibility `json:"visibility"`
	ScoringType     models.ScoringType      `json:"scoring_type"`
	MaxParticipants int                     `json:"max_participants"`
	SeasonYear      int                     `json:"season_year"`
	Settings        *models.LeagueSettings  `json:"settings"`
}

type UpdateLeagueInput struct {
	Name            *string                  `json:"name"`
	Visibility      *models.LeagueVisibility `json:"visibility"`
	MaxParticipants *int                     `json:"max_participants"`
	Settings        *models.LeagueSettings   `json:"settings"`
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	memberRepo repositories.MemberRepository
	userRepo   repositories.UserRepository
}

func NewLeagueService(
	leagueRepo repositories.LeagueRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

func marshalSettings(settings *models.LeagueSettings) (*string, error) {
	if settings == nil {
		return nil, nil
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal league settings: %w", err)
	}
	s := string(raw)
	return &s, nil
}

func (s *leagueService) CreateLeague(ctx context.Context, commissionerID int, input CreateLeagueInput) (*models.League, error) {
	if input.Name == "" {
		return nil, ErrLeagueNameRequired
	}
	if !input.ScoringType.Valid() {
		return nil, ErrLeagueInvalidScoring
	}
	if input.Visibility != models.VisibilityPublic && input.Visibility != models.VisibilityPrivate {
		return nil, ErrLeagueInvalidVisibility
	}
	if input.MaxParticipants <= 0 {
		return nil, ErrLeagueInvalidCapacity
	}

	settingsJSON, err := marshalSettings(input.Settings)
	if err != nil {
		return nil, err
	}

	league := &models.League{
		Name:            input.Name,
		Visibility:      input.Visibility,
		CommissionerID:  commissionerID,
		ScoringType:     input.ScoringType,
		MaxParticipants: input.MaxParticipants,
		SeasonYear:      input.SeasonYear,
		SettingsJSON:    settingsJSON,
	}

	if err := s.leagueRepo.Create(ctx, league); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeagueNameConflict):
			return nil, ErrLeagueNameConflict
		case errors.Is(err, repositories.ErrLeagueCommissionerInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	// The commissioner is always a member.
	if err := s.memberRepo.Add(ctx, league.ID, commissionerID); err != nil {
		return nil, fmt.Errorf("failed to add commissioner to league %d: %w", league.ID, err)
	}

	league.ParsedSettings = input.Settings
	return league, nil
}

func (s *leagueService) GetLeagueByID(ctx context.Context, id int) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league %d: %w", id, err)
	}

	settings, err := league.GetSettings()
	if err == nil {
		league.ParsedSettings = settings
	}

	if commissioner, err := s.userRepo.GetByID(ctx, league.CommissionerID); err == nil {
		commissioner.PasswordHash = ""
		league.Commissioner = commissioner
	}

	return league, nil
}

func (s *leagueService) UpdateLeague(ctx context.Context, currentUserID, leagueID int, input UpdateLeagueInput) (*models.League, error) {
	league, err := s.GetLeagueByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league.CommissionerID != currentUserID {
		return nil, ErrCommissionerOnly
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrLeagueNameRequired
		}
		league.Name = *input.Name
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPublic && *input.Visibility != models.VisibilityPrivate {
			return nil, ErrLeagueInvalidVisibility
		}
		league.Visibility = *input.Visibility
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, ErrLeagueInvalidCapacity
		}
		count, err := s.memberRepo.Count(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}
		if *input.MaxParticipants < count {
			return nil, ErrLeagueInvalidCapacity
		}
		league.MaxParticipants = *input.MaxParticipants
	}
	if input.Settings != nil {
		settingsJSON, err := marshalSettings(input.Settings)
		if err != nil {
			return nil, err
		}
		league.SettingsJSON = settingsJSON
		league.ParsedSettings = input.Settings
	}

	if err := s.leagueRepo.Update(ctx, league); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeagueNameConflict):
			return nil, ErrLeagueNameConflict
		case errors.Is(err, repositories.ErrLeagueNotFound):
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to update league %d: %w", leagueID, err)
	}
	return league, nil
}

func (s *leagueService) DeactivateLeague(ctx context.Context, currentUserID, leagueID int) error {
	league, err := s.GetLeagueByID(ctx, leagueID)
	if err != nil {
		return err
	}
	if league.CommissionerID != currentUserID {
		return ErrCommissionerOnly
	}
	if err := s.leagueRepo.Deactivate(ctx, leagueID); err != nil {
		return fmt.Errorf("failed to deactivate league %d: %w", leagueID, err)
	}
	return nil
}

func (s *leagueService) ListLeagues(ctx context.Context, filter repositories.ListLeaguesFilter) ([]*models.League, error) {
	leagues, err := s.leagueRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	for _, l := range leagues {
		if settings, err := l.GetSettings(); err == nil {
			l.ParsedSettings = settings
		}
	}
	return leagues, nil
}

// JoinLeague adds the user directly; private leagues require going through
// an invite instead.
func (s *leagueService) JoinLeague(ctx context.Context, userID, leagueID int) error {
	league, err := s.GetLeagueByID(ctx, leagueID)
	if err != nil {
		return err
	}
	if !league.IsActive {
		return ErrLeagueInactive
	}
	if league.Visibility == models.VisibilityPrivate {
		return ErrInviteRequired
	}
	return s.addMember(ctx, leagueID, userID)
}

func (s *leagueService) addMember(ctx context.Context, leagueID, userID int) error {
	err := s.memberRepo.Add(ctx, leagueID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMemberConflict):
		return ErrAlreadyMember
	case errors.Is(err, repositories.ErrLeagueFull):
		return ErrLeagueFull
	case errors.Is(err, repositories.ErrLeagueNotFound):
		return ErrLeagueNotFound
	case errors.Is(err, repositories.ErrMemberUserInvalid):
		return ErrUserNotFound
	default:
		return fmt.Errorf("failed to join league %d: %w", leagueID, err)
	}
}

func (s *leagueService) LeaveLeague(ctx context.Context, userID, leagueID int) error {
	league, err := s.GetLeagueByID(ctx, leagueID)
	if err != nil {
		return err
	}
	if league.CommissionerID == userID {
		return ErrCommissionerImmovable
	}
	if err := s.memberRepo.Remove(ctx, leagueID, userID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrPickNotMember
		}
		return fmt.Errorf("failed to leave league %d: %w", leagueID, err)
	}
	return nil
}

func (s *leagueService) RemoveMember(ctx context.Context, currentUserID, leagueID, memberID int) error {
	league, err := s.GetLeagueByID(ctx, leagueID)
	if err != nil {
		return err
	}
	if league.CommissionerID != currentUserID {
		return ErrCommissionerOnly
	}
	if memberID == league.CommissionerID {
		return ErrCommissionerImmovable
	}
	if err := s.memberRepo.Remove(ctx, leagueID, memberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return ErrPickNotMember
		}
		return fmt.Errorf("failed to remove member %d from league %d: %w", memberID, leagueID, err)
	}
	return nil
}

func (s *leagueService) ListMembers(ctx context.Context, leagueID int) ([]models.User, error) {
	if _, err := s.GetLeagueByID(ctx, leagueID); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListUsers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of league %d: %w", leagueID, err)
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	return members, nil
}
