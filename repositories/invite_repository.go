package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInviteLeagueInvalid = errors.New("invite league conflict or invalid")
)

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	DeleteByLeagueID(ctx context.Context, leagueID int) error
}

type postgresInviteRepository struct {
	db *sql.DB
}

func NewPostgresInviteRepository(db *sql.DB) InviteRepository {
	return &postgresInviteRepository{db: db}
}

func (r *postgresInviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	query := `
		INSERT INTO invites (league_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		invite.LeagueID,
		invite.Token,
		invite.ExpiresAt,
	).Scan(&invite.ID, &invite.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrInviteLeagueInvalid
		}
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *postgresInviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `SELECT id, league_id, token, expires_at, created_at FROM invites WHERE token = $1`
	var inv models.Invite
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.ID, &inv.LeagueID, &inv.Token, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite by token: %w", err)
	}
	return &inv, nil
}

func (r *postgresInviteRepository) DeleteByLeagueID(ctx context.Context, leagueID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE league_id = $1`, leagueID)
	if err != nil {
		return fmt.Errorf("failed to delete invites for league %d: %w", leagueID, err)
	}
	return nil
}
