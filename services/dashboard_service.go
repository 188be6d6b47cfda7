package services

import (
	"context"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo   repositories.UserRepository
	leagueRepo repositories.LeagueRepository
	gameRepo   repositories.GameRepository
	pickRepo   repositories.PickRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	leagueRepo repositories.LeagueRepository,
	gameRepo repositories.GameRepository,
	pickRepo repositories.PickRepository,
) DashboardService {
	return &dashboardService{
		userRepo:   userRepo,
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		pickRepo:   pickRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	usersTotal, err := s.userRepo.Count(ctx, false)
	if err != nil {
		return models.DashboardStats{}, err
	}
	leaguesTotal, err := s.leagueRepo.Count(ctx, false)
	if err != nil {
		return models.DashboardStats{}, err
	}
	activeLeagues, err := s.leagueRepo.Count(ctx, true)
	if err != nil {
		return models.DashboardStats{}, err
	}
	gamesTotal, err := s.gameRepo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	picksTotal, err := s.pickRepo.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	return models.DashboardStats{
		UsersTotal:    usersTotal,
		LeaguesTotal:  leaguesTotal,
		ActiveLeagues: activeLeagues,
		GamesTotal:    gamesTotal,
		PicksTotal:    picksTotal,
	}, nil
}
