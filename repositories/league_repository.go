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
	ErrLeagueNotFound            = errors.New("league not found")
	ErrLeagueNameConflict        = errors.New("league name conflict")
	ErrLeagueCommissionerInvalid = errors.New("league commissioner conflict or invalid")
)

type ListLeaguesFilter struct {
	Visibility *models.LeagueVisibility
	SeasonYear *int
	OnlyActive bool
	Limit      int
	Offset     int
}

type LeagueRepository interface {
	Create(ctx context.Context, league *models.League) error
	GetByID(ctx context.Context, id int) (*models.League, error)
	Update(ctx context.Context, league *models.League) error
	Deactivate(ctx context.Context, id int) error
	List(ctx context.Context, filter ListLeaguesFilter) ([]*models.League, error)
	Count(ctx context.Context, onlyActive bool) (int, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

const leagueColumns = `id, name, visibility, commissioner_id, scoring_type, max_participants, season_year, is_active, settings_json, created_at`

func (r *postgresLeagueRepository) scanLeague(rowScanner interface{ Scan(...interface{}) error }) (*models.League, error) {
	var l models.League
	err := rowScanner.Scan(
		&l.ID, &l.Name, &l.Visibility, &l.CommissionerID, &l.ScoringType,
		&l.MaxParticipants, &l.SeasonYear, &l.IsActive, &l.SettingsJSON, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *postgresLeagueRepository) Create(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (name, visibility, commissioner_id, scoring_type, max_participants, season_year, is_active, settings_json)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		league.Name,
		league.Visibility,
		league.CommissionerID,
		league.ScoringType,
		league.MaxParticipants,
		league.SeasonYear,
		league.SettingsJSON,
	).Scan(&league.ID, &league.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "leagues_name_season_year_key" {
					return ErrLeagueNameConflict
				}
			case "23503":
				if pqErr.Constraint == "leagues_commissioner_id_fkey" {
					return ErrLeagueCommissionerInvalid
				}
			}
		}
		return fmt.Errorf("failed to create league: %w", err)
	}
	league.IsActive = true
	return nil
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id int) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`
	return r.scanLeague(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresLeagueRepository) Update(ctx context.Context, league *models.League) error {
	query := `
		UPDATE leagues
		SET name = $1, visibility = $2, max_participants = $3, settings_json = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		league.Name, league.Visibility, league.MaxParticipants, league.SettingsJSON, league.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrLeagueNameConflict
		}
		return fmt.Errorf("failed to update league: %w", err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE leagues SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate league: %w", err)
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) List(ctx context.Context, filter ListLeaguesFilter) ([]*models.League, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + leagueColumns + ` FROM leagues`)

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	argCounter := 1

	if filter.Visibility != nil {
		conditions = append(conditions, fmt.Sprintf("visibility = $%d", argCounter))
		args = append(args, *filter.Visibility)
		argCounter++
	}
	if filter.SeasonYear != nil {
		conditions = append(conditions, fmt.Sprintf("season_year = $%d", argCounter))
		args = append(args, *filter.SeasonYear)
		argCounter++
	}
	if filter.OnlyActive {
		conditions = append(conditions, "is_active = TRUE")
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filter.Limit)
		argCounter++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]*models.League, 0)
	for rows.Next() {
		l, errScan := r.scanLeague(rows)
		if errScan != nil {
			return nil, errScan
		}
		leagues = append(leagues, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) Count(ctx context.Context, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM leagues`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leagues: %w", err)
	}
	return count, nil
}
