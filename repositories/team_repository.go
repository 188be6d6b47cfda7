package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository serves the static franchise reference data. Teams are
// seeded once; only the logo is mutable afterwards.
type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UpdateLogoKey(ctx context.Context, id int, key *string) error
	Seed(ctx context.Context, teams []models.Team) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, city, name, abbreviation, conference, division, logo_key`

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(&t.ID, &t.City, &t.Name, &t.Abbreviation, &t.Conference, &t.Division, &t.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY conference, division, city`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0, 32)
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to update team logo: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// Seed inserts the franchise list, skipping abbreviations that already exist.
func (r *postgresTeamRepository) Seed(ctx context.Context, teams []models.Team) error {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO teams (city, name, abbreviation, conference, division)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (abbreviation) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare team seed statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range teams {
		if _, err := stmt.ExecContext(ctx, t.City, t.Name, t.Abbreviation, t.Conference, t.Division); err != nil {
			return fmt.Errorf("failed to seed team %s: %w", t.Abbreviation, err)
		}
	}
	return nil
}
