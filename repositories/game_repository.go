package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameTeamInvalid = errors.New("game team conflict or invalid")
)

type ListGamesFilter struct {
	Week       *int
	SeasonYear *int
	Status     *models.GameStatus
}

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	Update(ctx context.Context, exec SQLExecutor, game *models.Game) error
	List(ctx context.Context, filter ListGamesFilter) ([]*models.Game, error)
	Count(ctx context.Context) (int, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const gameColumns = `g.id, g.home_team_id, g.away_team_id, g.week, g.season_year, g.kickoff,
		g.home_score, g.away_score, g.point_spread, g.over_under, g.status`

func scanGameWithTeams(rowScanner interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	var home, away models.Team
	err := rowScanner.Scan(
		&g.ID, &g.HomeTeamID, &g.AwayTeamID, &g.Week, &g.SeasonYear, &g.Kickoff,
		&g.HomeScore, &g.AwayScore, &g.PointSpread, &g.OverUnder, &g.Status,
		&home.ID, &home.City, &home.Name, &home.Abbreviation,
		&away.ID, &away.City, &away.Name, &away.Abbreviation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	g.HomeTeam = &home
	g.AwayTeam = &away
	return &g, nil
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (home_team_id, away_team_id, week, season_year, kickoff, point_spread, over_under, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		game.HomeTeamID,
		game.AwayTeamID,
		game.Week,
		game.SeasonYear,
		game.Kickoff,
		game.PointSpread,
		game.OverUnder,
		game.Status,
	).Scan(&game.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameTeamInvalid
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `,
			ht.id, ht.city, ht.name, ht.abbreviation,
			aw.id, aw.city, aw.name, aw.abbreviation
		FROM games g
		JOIN teams ht ON g.home_team_id = ht.id
		JOIN teams aw ON g.away_team_id = aw.id
		WHERE g.id = $1`
	return scanGameWithTeams(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGameRepository) Update(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE games
		SET kickoff = $1, home_score = $2, away_score = $3, point_spread = $4, over_under = $5, status = $6
		WHERE id = $7`
	result, err := executor.ExecContext(ctx, query,
		game.Kickoff, game.HomeScore, game.AwayScore, game.PointSpread, game.OverUnder, game.Status, game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) List(ctx context.Context, filter ListGamesFilter) ([]*models.Game, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + gameColumns + `,
			ht.id, ht.city, ht.name, ht.abbreviation,
			aw.id, aw.city, aw.name, aw.abbreviation
		FROM games g
		JOIN teams ht ON g.home_team_id = ht.id
		JOIN teams aw ON g.away_team_id = aw.id`)

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	argCounter := 1

	if filter.Week != nil {
		conditions = append(conditions, fmt.Sprintf("g.week = $%d", argCounter))
		args = append(args, *filter.Week)
		argCounter++
	}
	if filter.SeasonYear != nil {
		conditions = append(conditions, fmt.Sprintf("g.season_year = $%d", argCounter))
		args = append(args, *filter.SeasonYear)
		argCounter++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("g.status = $%d", argCounter))
		args = append(args, *filter.Status)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY g.kickoff ASC, g.id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, errScan := scanGameWithTeams(rows)
		if errScan != nil {
			return nil, errScan
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}
