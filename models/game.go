package models

import "time"

type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
)

const (
	MinWeek = 1
	MaxWeek = 22 // regular season plus playoffs
)

// Game is one scheduled matchup. Scores are populated iff status is final.
// PointSpread is home-team-relative: negative means the home team is favored.
type Game struct {
	ID          int        `json:"id" db:"id"`
	HomeTeamID  int        `json:"home_team_id" db:"home_team_id"`
	AwayTeamID  int        `json:"away_team_id" db:"away_team_id"`
	Week        int        `json:"week" db:"week"`
	SeasonYear  int        `json:"season_year" db:"season_year"`
	Kickoff     time.Time  `json:"kickoff" db:"kickoff"`
	HomeScore   *int       `json:"home_score,omitempty" db:"home_score"`
	AwayScore   *int       `json:"away_score,omitempty" db:"away_score"`
	PointSpread *float64   `json:"point_spread,omitempty" db:"point_spread"`
	OverUnder   *float64   `json:"over_under,omitempty" db:"over_under"`
	Status      GameStatus `json:"status" db:"status"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
}

// HasStarted reports whether kickoff has passed; picks lock at kickoff.
func (g *Game) HasStarted(now time.Time) bool {
	return !now.Before(g.Kickoff)
}
