package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/google/uuid"
)

const inviteTTL = 7 * 24 * time.Hour

type InviteService interface {
	CreateInvite(ctx context.Context, currentUserID, leagueID int) (*models.Invite, string, error)
	AcceptInvite(ctx context.Context, userID int, token string) (*models.League, error)
}

type inviteService struct {
	inviteRepo repositories.InviteRepository
	leagueRepo repositories.LeagueRepository
	memberRepo repositories.MemberRepository
}

func NewInviteService(
	inviteRepo repositories.InviteRepository,
	leagueRepo repositories.LeagueRepository,
	memberRepo repositories.MemberRepository,
) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
	}
}

// CreateInvite issues a join token for a private league. Returns the token
// separately since the model omits it from JSON.
func (s *inviteService) CreateInvite(ctx context.Context, currentUserID, leagueID int) (*models.Invite, string, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, "", ErrLeagueNotFound
		}
		return nil, "", fmt.Errorf("failed to load league %d: %w", leagueID, err)
	}
	if league.CommissionerID != currentUserID {
		return nil, "", ErrCommissionerOnly
	}
	if league.Visibility != models.VisibilityPrivate {
		return nil, "", ErrLeagueNotPrivate
	}

	token := uuid.NewString()
	invite := &models.Invite{
		LeagueID:  leagueID,
		Token:     token,
		ExpiresAt: time.Now().Add(inviteTTL),
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, "", fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, token, nil
}

func (s *inviteService) AcceptInvite(ctx context.Context, userID int, token string) (*models.League, error) {
	invite, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	league, err := s.leagueRepo.GetByID(ctx, invite.LeagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to load league %d: %w", invite.LeagueID, err)
	}
	if !league.IsActive {
		return nil, ErrLeagueInactive
	}

	err = s.memberRepo.Add(ctx, invite.LeagueID, userID)
	switch {
	case err == nil:
		return league, nil
	case errors.Is(err, repositories.ErrMemberConflict):
		return nil, ErrAlreadyMember
	case errors.Is(err, repositories.ErrLeagueFull):
		return nil, ErrLeagueFull
	default:
		return nil, fmt.Errorf("failed to join league %d via invite: %w", invite.LeagueID, err)
	}
}
