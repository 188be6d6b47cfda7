package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cprater/football-pickem-backend-sub000/live"
	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/standings"
)

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	UpdateGame(ctx context.Context, gameID int, input UpdateGameInput) (*models.Game, error)
	ListGames(ctx context.Context, filter repositories.ListGamesFilter) ([]*models.Game, error)
}

type CreateGameInput struct {
	HomeTeamID  int       `json:"home_team_id"`
	AwayTeamID  int       `json:"away_team_id"`
	Week        int       `json:"week"`
	SeasonYear  int       `json:"season_year"`
	Kickoff     time.Time `json:"kickoff"`
	PointSpread *float64  `json:"point_spread"`
	OverUnder   *float64  `json:"over_under"`
}

type UpdateGameInput struct {
	Kickoff     *time.Time         `json:"kickoff"`
	HomeScore   *int               `json:"home_score"`
	AwayScore   *int               `json:"away_score"`
	PointSpread *float64           `json:"point_spread"`
	OverUnder   *float64           `json:"over_under"`
	Status      *models.GameStatus `json:"status"`
}

type gameService struct {
	db       *sql.DB
	gameRepo repositories.GameRepository
	pickRepo repositories.PickRepository
	hub      *live.Hub
	logger   *slog.Logger
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	pickRepo repositories.PickRepository,
	hub *live.Hub,
	logger *slog.Logger,
) GameService {
	return &gameService{
		db:       db,
		gameRepo: gameRepo,
		pickRepo: pickRepo,
		hub:      hub,
		logger:   logger,
	}
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if input.Week < models.MinWeek || input.Week > models.MaxWeek {
		return nil, ErrGameInvalidWeek
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrGameSameTeams
	}

	game := &models.Game{
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		Week:        input.Week,
		SeasonYear:  input.SeasonYear,
		Kickoff:     input.Kickoff,
		PointSpread: input.PointSpread,
		OverUnder:   input.OverUnder,
		Status:      models.GameStatusScheduled,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// UpdateGame applies an admin update. Scores may only be set together with
// (or after) the final status; finalizing refreshes the cached correctness of
// every pick on the game and notifies the affected league rooms.
func (s *gameService) UpdateGame(ctx context.Context, gameID int, input UpdateGameInput) (*models.Game, error) {
	game, err := s.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	wasFinal := game.Status == models.GameStatusFinal

	if input.Kickoff != nil {
		game.Kickoff = *input.Kickoff
	}
	if input.PointSpread != nil {
		game.PointSpread = input.PointSpread
	}
	if input.OverUnder != nil {
		game.OverUnder = input.OverUnder
	}
	if input.Status != nil {
		switch *input.Status {
		case models.GameStatusScheduled, models.GameStatusInProgress, models.GameStatusFinal:
			game.Status = *input.Status
		default:
			return nil, ErrValidationFailed
		}
	}
	if input.HomeScore != nil || input.AwayScore != nil {
		if game.Status != models.GameStatusFinal {
			return nil, ErrGameNotFinal
		}
		game.HomeScore = input.HomeScore
		game.AwayScore = input.AwayScore
	}
	if game.Status == models.GameStatusFinal && (game.HomeScore == nil || game.AwayScore == nil) {
		return nil, ErrGameScoresRequired
	}

	if err := s.gameRepo.Update(ctx, nil, game); err != nil {
		return nil, fmt.Errorf("failed to update game %d: %w", gameID, err)
	}

	if game.Status == models.GameStatusFinal && !wasFinal {
		if err := s.finalizeGame(ctx, game); err != nil {
			// Standings recompute correctness on demand, so a failed cache
			// refresh is logged rather than failing the update.
			s.logger.Error("failed to refresh pick correctness cache",
				slog.Int("game_id", gameID), slog.Any("error", err))
		}
	}

	return game, nil
}

// finalizeGame refreshes the denormalized is_correct hint on every pick for
// the game and pushes a refresh signal to each league that has picks on it.
func (s *gameService) finalizeGame(ctx context.Context, game *models.Game) error {
	picks, err := s.pickRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to list picks for game %d: %w", game.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin correctness transaction: %w", err)
	}
	defer tx.Rollback()

	leagues := make(map[int]bool)
	for _, pick := range picks {
		verdict, err := standings.Evaluate(pick, game)
		if err != nil {
			return fmt.Errorf("failed to evaluate pick %d: %w", pick.ID, err)
		}
		var isCorrect *bool
		if verdict != standings.Undecided {
			v := verdict == standings.Correct
			isCorrect = &v
		}
		if err := s.pickRepo.UpdateIsCorrect(ctx, tx, pick.ID, isCorrect); err != nil {
			return err
		}
		leagues[pick.LeagueID] = true
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit correctness transaction: %w", err)
	}

	if s.hub != nil {
		for leagueID := range leagues {
			s.hub.BroadcastToLeague(leagueID, live.Message{
				Type:    live.EventGameFinal,
				Payload: game,
			})
			s.hub.BroadcastToLeague(leagueID, live.Message{
				Type:    live.EventStandingsUpdated,
				Payload: map[string]int{"game_id": game.ID, "week": game.Week},
			})
		}
	}

	s.logger.Info("game finalized",
		slog.Int("game_id", game.ID),
		slog.Int("week", game.Week),
		slog.Int("picks_updated", len(picks)),
		slog.Int("leagues_notified", len(leagues)))
	return nil
}

func (s *gameService) ListGames(ctx context.Context, filter repositories.ListGamesFilter) ([]*models.Game, error) {
	if filter.Week != nil && (*filter.Week < models.MinWeek || *filter.Week > models.MaxWeek) {
		return nil, ErrGameInvalidWeek
	}
	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}
