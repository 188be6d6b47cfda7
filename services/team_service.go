package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/storage"
)

type TeamService interface {
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
	SeedTeams(ctx context.Context) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader}
}

func (s *teamService) resolveLogoURL(team *models.Team) {
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	s.resolveLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		s.resolveLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("logos/%d", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save logo key: %w", err)
	}

	team.LogoKey = &result.Key
	s.resolveLogoURL(team)
	return team, nil
}

// SeedTeams inserts the 32 franchises; existing rows are left untouched.
func (s *teamService) SeedTeams(ctx context.Context) error {
	return s.teamRepo.Seed(ctx, franchises)
}

var franchises = []models.Team{
	{City: "Buffalo", Name: "Bills", Abbreviation: "BUF", Conference: models.ConferenceAFC, Division: models.DivisionEast},
	{City: "Miami", Name: "Dolphins", Abbreviation: "MIA", Conference: models.ConferenceAFC, Division: models.DivisionEast},
	{City: "New England", Name: "Patriots", Abbreviation: "NE", Conference: models.ConferenceAFC, Division: models.DivisionEast},
	{City: "New York", Name: "Jets", Abbreviation: "NYJ", Conference: models.ConferenceAFC, Division: models.DivisionEast},
	{City: "Baltimore", Name: "Ravens", Abbreviation: "BAL", Conference: models.ConferenceAFC, Division: models.DivisionNorth},
	{City: "Cincinnati", Name: "Bengals", Abbreviation: "CIN", Conference: models.ConferenceAFC, Division: models.DivisionNorth},
	{City: "Cleveland", Name: "Browns", Abbreviation: "CLE", Conference: models.ConferenceAFC, Division: models.DivisionNorth},
	{City: "Pittsburgh", Name: "Steelers", Abbreviation: "PIT", Conference: models.ConferenceAFC, Division: models.DivisionNorth},
	{City: "Houston", Name: "Texans", Abbreviation: "HOU", Conference: models.ConferenceAFC, Division: models.DivisionSouth},
	{City: "Indianapolis", Name: "Colts", Abbreviation: "IND", Conference: models.ConferenceAFC, Division: models.DivisionSouth},
	{City: "Jacksonville", Name: "Jaguars", Abbreviation: "JAX", Conference: models.ConferenceAFC, Division: models.DivisionSouth},
	{City: "Tennessee", Name: "Titans", Abbreviation: "TEN", Conference: models.ConferenceAFC, Division: models.DivisionSouth},
	{City: "Denver", Name: "Broncos", Abbreviation: "DEN", Conference: models.ConferenceAFC, Division: models.DivisionWest},
	{City: "Kansas City", Name: "Chiefs", Abbreviation: "KC", Conference: models.ConferenceAFC, Division: models.DivisionWest},
	{City: "Las Vegas", Name: "Raiders", Abbreviation: "LV", Conference: models.ConferenceAFC, Division: models.DivisionWest},
	{City: "Los Angeles", Name: "Chargers", Abbreviation: "LAC", Conference: models.ConferenceAFC, Division: models.DivisionWest},
	{City: "Dallas", Name: "Cowboys", Abbreviation: "DAL", Conference: models.ConferenceNFC, Division: models.DivisionEast},
	{City: "New York", Name: "Giants", Abbreviation: "NYG", Conference: models.ConferenceNFC, Division: models.DivisionEast},
	{City: "Philadelphia", Name: "Eagles", Abbreviation: "PHI", Conference: models.ConferenceNFC, Division: models.DivisionEast},
	{City: "Washington", Name: "Commanders", Abbreviation: "WAS", Conference: models.ConferenceNFC, Division: models.DivisionEast},
	{City: "Chicago", Name: "Bears", Abbreviation: "CHI", Conference: models.ConferenceNFC, Division: models.DivisionNorth},
	{City: "Detroit", Name: "Lions", Abbreviation: "DET", Conference: models.ConferenceNFC, Division: models.DivisionNorth},
	{City: "Green Bay", Name: "Packers", Abbreviation: "GB", Conference: models.ConferenceNFC, Division: models.DivisionNorth},
	{City: "Minnesota", Name: "Vikings", Abbreviation: "MIN", Conference: models.ConferenceNFC, Division: models.DivisionNorth},
	{City: "Atlanta", Name: "Falcons", Abbreviation: "ATL", Conference: models.ConferenceNFC, Division: models.DivisionSouth},
	{City: "Carolina", Name: "Panthers", Abbreviation: "CAR", Conference: models.ConferenceNFC, Division: models.DivisionSouth},
	{City: "New Orleans", Name: "Saints", Abbreviation: "NO", Conference: models.ConferenceNFC, Division: models.DivisionSouth},
	{City: "Tampa Bay", Name: "Buccaneers", Abbreviation: "TB", Conference: models.ConferenceNFC, Division: models.DivisionSouth},
	{City: "Arizona", Name: "Cardinals", Abbreviation: "ARI", Conference: models.ConferenceNFC, Division: models.DivisionWest},
	{City: "Los Angeles", Name: "Rams", Abbreviation: "LAR", Conference: models.ConferenceNFC, Division: models.DivisionWest},
	{City: "San Francisco", Name: "49ers", Abbreviation: "SF", Conference: models.ConferenceNFC, Division: models.DivisionWest},
	{City: "Seattle", Name: "Seahawks", Abbreviation: "SEA", Conference: models.ConferenceNFC, Division: models.DivisionWest},
}
