package models

import "time"

type PickType string

const (
	PickTypeStraight  PickType = "straight"
	PickTypeSpread    PickType = "spread"
	PickTypeOverUnder PickType = "over_under"
)

func (t PickType) Valid() bool {
	switch t {
	case PickTypeStraight, PickTypeSpread, PickTypeOverUnder:
		return true
	}
	return false
}

type OverUnderSide string

const (
	SideOver  OverUnderSide = "over"
	SideUnder OverUnderSide = "under"
)

const (
	MinConfidencePoints = 1
	MaxConfidencePoints = 16
)

// Pick is one user's prediction for one game within one league. The
// (user, league, game, pick_type) tuple is unique. PickedTeamID is set for
// straight and spread picks; OverUnderSide is set for over_under picks.
// IsCorrect is a cached hint refreshed on game finalization; standings never
// trust it and recompute from the joined game instead.
type Pick struct {
	ID               int            `json:"id" db:"id"`
	UserID           int            `json:"user_id" db:"user_id"`
	LeagueID         int            `json:"league_id" db:"league_id"`
	GameID           int            `json:"game_id" db:"game_id"`
	PickType         PickType       `json:"pick_type" db:"pick_type"`
	PickedTeamID     *int           `json:"picked_team_id,omitempty" db:"picked_team_id"`
	OverUnderSide    *OverUnderSide `json:"over_under_side,omitempty" db:"over_under_side"`
	ConfidencePoints *int           `json:"confidence_points,omitempty" db:"confidence_points"`
	IsCorrect        *bool          `json:"is_correct,omitempty" db:"is_correct"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`

	Game       *Game `json:"game,omitempty" db:"-"`
	PickedTeam *Team `json:"picked_team,omitempty" db:"-"`
	User       *User `json:"user,omitempty" db:"-"`
}
