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
	ErrMemberNotFound      = errors.New("league member not found")
	ErrMemberConflict      = errors.New("user is already a member of this league")
	ErrMemberUserInvalid   = errors.New("member user conflict or invalid")
	ErrMemberLeagueInvalid = errors.New("member league conflict or invalid")
	ErrLeagueFull          = errors.New("league is full")
)

// MemberRepository is the league_members join table: membership only, no
// ownership. Add enforces the capacity limit inside one transaction by
// locking the league row before counting, so concurrent joins cannot
// overshoot max_participants.
type MemberRepository interface {
	Add(ctx context.Context, leagueID, userID int) error
	Remove(ctx context.Context, leagueID, userID int) error
	Contains(ctx context.Context, leagueID, userID int) (bool, error)
	Count(ctx context.Context, leagueID int) (int, error)
	ListUsers(ctx context.Context, leagueID int) ([]models.User, error)
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) Add(ctx context.Context, leagueID, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin join transaction: %w", err)
	}
	defer tx.Rollback()

	var maxParticipants int
	err = tx.QueryRowContext(ctx,
		`SELECT max_participants FROM leagues WHERE id = $1 FOR UPDATE`, leagueID,
	).Scan(&maxParticipants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLeagueNotFound
		}
		return fmt.Errorf("failed to lock league %d: %w", leagueID, err)
	}

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM league_members WHERE league_id = $1`, leagueID,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to count members of league %d: %w", leagueID, err)
	}
	if current >= maxParticipants {
		return ErrLeagueFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO league_members (league_id, user_id) VALUES ($1, $2)`, leagueID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrMemberConflict
			case "23503":
				switch pqErr.Constraint {
				case "league_members_user_id_fkey":
					return ErrMemberUserInvalid
				case "league_members_league_id_fkey":
					return ErrMemberLeagueInvalid
				}
			}
		}
		return fmt.Errorf("failed to add member to league %d: %w", leagueID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit join transaction: %w", err)
	}
	return nil
}

func (r *postgresMemberRepository) Remove(ctx context.Context, leagueID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM league_members WHERE league_id = $1 AND user_id = $2`, leagueID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) Contains(ctx context.Context, leagueID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM league_members WHERE league_id = $1 AND user_id = $2)`,
		leagueID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

func (r *postgresMemberRepository) Count(ctx context.Context, leagueID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM league_members WHERE league_id = $1`, leagueID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (r *postgresMemberRepository) ListUsers(ctx context.Context, leagueID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.display_name, u.role, u.is_active, u.avatar_key, u.created_at
		FROM league_members lm
		JOIN users u ON lm.user_id = u.id
		WHERE lm.league_id = $1
		ORDER BY lm.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list league members: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.Role, &u.IsActive, &u.AvatarKey, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league member: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
