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
	ErrPickNotFound      = errors.New("pick not found")
	ErrPickConflict      = errors.New("pick already exists for this user, league, game and type")
	ErrPickGameInvalid   = errors.New("pick game conflict or invalid")
	ErrPickUserInvalid   = errors.New("pick user conflict or invalid")
	ErrPickLeagueInvalid = errors.New("pick league conflict or invalid")
	ErrPickTeamInvalid   = errors.New("pick team conflict or invalid")
)

type ListPicksFilter struct {
	UserID *int
	Week   *int
}

type PickRepository interface {
	Create(ctx context.Context, pick *models.Pick) error
	GetByID(ctx context.Context, id int) (*models.Pick, error)
	Update(ctx context.Context, pick *models.Pick) error
	Delete(ctx context.Context, id int) error
	// ListByLeague returns picks pre-joined with their game (including both
	// teams) and the picked team, which is the shape the standings
	// aggregator consumes.
	ListByLeague(ctx context.Context, leagueID int, filter ListPicksFilter) ([]*models.Pick, error)
	ListByGame(ctx context.Context, gameID int) ([]*models.Pick, error)
	UpdateIsCorrect(ctx context.Context, exec SQLExecutor, pickID int, isCorrect *bool) error
	Count(ctx context.Context) (int, error)
}

type postgresPickRepository struct {
	db *sql.DB
}

func NewPostgresPickRepository(db *sql.DB) PickRepository {
	return &postgresPickRepository{db: db}
}

func (r *postgresPickRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const pickColumns = `p.id, p.user_id, p.league_id, p.game_id, p.pick_type, p.picked_team_id,
		p.over_under_side, p.confidence_points, p.is_correct, p.created_at`

func scanPick(rowScanner interface{ Scan(...interface{}) error }) (*models.Pick, error) {
	var p models.Pick
	err := rowScanner.Scan(
		&p.ID, &p.UserID, &p.LeagueID, &p.GameID, &p.PickType, &p.PickedTeamID,
		&p.OverUnderSide, &p.ConfidencePoints, &p.IsCorrect, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPickNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (user_id, league_id, game_id, pick_type, picked_team_id, over_under_side, confidence_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		pick.UserID,
		pick.LeagueID,
		pick.GameID,
		pick.PickType,
		pick.PickedTeamID,
		pick.OverUnderSide,
		pick.ConfidencePoints,
	).Scan(&pick.ID, &pick.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				// (user_id, league_id, game_id, pick_type) unique index:
				// concurrent duplicate submissions surface as a conflict
				// instead of silently overwriting.
				return ErrPickConflict
			case "23503":
				switch pqErr.Constraint {
				case "picks_user_id_fkey":
					return ErrPickUserInvalid
				case "picks_league_id_fkey":
					return ErrPickLeagueInvalid
				case "picks_game_id_fkey":
					return ErrPickGameInvalid
				case "picks_picked_team_id_fkey":
					return ErrPickTeamInvalid
				}
			}
		}
		return fmt.Errorf("failed to create pick: %w", err)
	}
	return nil
}

func (r *postgresPickRepository) GetByID(ctx context.Context, id int) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks p WHERE p.id = $1`
	return scanPick(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPickRepository) Update(ctx context.Context, pick *models.Pick) error {
	query := `
		UPDATE picks
		SET picked_team_id = $1, over_under_side = $2, confidence_points = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query,
		pick.PickedTeamID, pick.OverUnderSide, pick.ConfidencePoints, pick.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPickTeamInvalid
		}
		return fmt.Errorf("failed to update pick: %w", err)
	}
	return checkAffectedRows(result, ErrPickNotFound)
}

func (r *postgresPickRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM picks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pick: %w", err)
	}
	return checkAffectedRows(result, ErrPickNotFound)
}

func (r *postgresPickRepository) ListByLeague(ctx context.Context, leagueID int, filter ListPicksFilter) ([]*models.Pick, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + pickColumns + `,
			g.id, g.home_team_id, g.away_team_id, g.week, g.season_year, g.kickoff,
			g.home_score, g.away_score, g.point_spread, g.over_under, g.status,
			pt.id, pt.city, pt.name, pt.abbreviation
		FROM picks p
		JOIN games g ON p.game_id = g.id
		LEFT JOIN teams pt ON p.picked_team_id = pt.id
		WHERE p.league_id = $1`)

	args := []interface{}{leagueID}
	argCounter := 2

	if filter.UserID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.user_id = $%d", argCounter))
		args = append(args, *filter.UserID)
		argCounter++
	}
	if filter.Week != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND g.week = $%d", argCounter))
		args = append(args, *filter.Week)
	}
	queryBuilder.WriteString(" ORDER BY g.kickoff ASC, p.id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	picks := make([]*models.Pick, 0)
	for rows.Next() {
		var p models.Pick
		var g models.Game
		var ptID sql.NullInt64
		var ptCity, ptName, ptAbbr sql.NullString

		err := rows.Scan(
			&p.ID, &p.UserID, &p.LeagueID, &p.GameID, &p.PickType, &p.PickedTeamID,
			&p.OverUnderSide, &p.ConfidencePoints, &p.IsCorrect, &p.CreatedAt,
			&g.ID, &g.HomeTeamID, &g.AwayTeamID, &g.Week, &g.SeasonYear, &g.Kickoff,
			&g.HomeScore, &g.AwayScore, &g.PointSpread, &g.OverUnder, &g.Status,
			&ptID, &ptCity, &ptName, &ptAbbr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick row: %w", err)
		}

		p.Game = &g
		if ptID.Valid {
			p.PickedTeam = &models.Team{
				ID:           int(ptID.Int64),
				City:         ptCity.String,
				Name:         ptName.String,
				Abbreviation: ptAbbr.String,
			}
		}
		picks = append(picks, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pick rows: %w", err)
	}
	return picks, nil
}

func (r *postgresPickRepository) ListByGame(ctx context.Context, gameID int) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM picks p WHERE p.game_id = $1 ORDER BY p.id ASC`
	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks for game %d: %w", gameID, err)
	}
	defer rows.Close()

	picks := make([]*models.Pick, 0)
	for rows.Next() {
		p, errScan := scanPick(rows)
		if errScan != nil {
			return nil, errScan
		}
		picks = append(picks, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return picks, nil
}

// UpdateIsCorrect refreshes the cached correctness hint. The hint is for
// display only; standings recompute from the joined game.
func (r *postgresPickRepository) UpdateIsCorrect(ctx context.Context, exec SQLExecutor, pickID int, isCorrect *bool) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE picks SET is_correct = $1 WHERE id = $2`, isCorrect, pickID)
	if err != nil {
		return fmt.Errorf("failed to update pick correctness: %w", err)
	}
	return checkAffectedRows(result, ErrPickNotFound)
}

func (r *postgresPickRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM picks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return count, nil
}
