package models

import (
	"encoding/json"
	"time"
)

type ScoringType string

const (
	ScoringConfidence ScoringType = "confidence"
	ScoringStraight   ScoringType = "straight"
	ScoringSurvivor   ScoringType = "survivor"
)

func (s ScoringType) Valid() bool {
	switch s {
	case ScoringConfidence, ScoringStraight, ScoringSurvivor:
		return true
	}
	return false
}

type LeagueVisibility string

const (
	VisibilityPublic  LeagueVisibility = "public"
	VisibilityPrivate LeagueVisibility = "private"
)

// LeagueSettings is the free-form settings blob stored as raw JSON.
// Only kickoff gating is enforced server-side; the rest is advisory.
type LeagueSettings struct {
	Tiebreaker     string `json:"tiebreaker,omitempty"`
	LatePickPolicy string `json:"late_pick_policy,omitempty"`
}

type League struct {
	ID              int              `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Visibility      LeagueVisibility `json:"visibility" db:"visibility"`
	CommissionerID  int              `json:"commissioner_id" db:"commissioner_id"`
	ScoringType     ScoringType      `json:"scoring_type" db:"scoring_type"`
	MaxParticipants int              `json:"max_participants" db:"max_participants"`
	SeasonYear      int              `json:"season_year" db:"season_year"`
	IsActive        bool             `json:"is_active" db:"is_active"`
	SettingsJSON    *string          `json:"-" db:"settings_json"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`

	Commissioner   *User           `json:"commissioner,omitempty" db:"-"`
	Members        []User          `json:"members,omitempty" db:"-"`
	ParsedSettings *LeagueSettings `json:"settings,omitempty" db:"-"`
}

// GetSettings unmarshals the raw settings column, tolerating absence.
func (l *League) GetSettings() (*LeagueSettings, error) {
	if l.SettingsJSON == nil || *l.SettingsJSON == "" {
		return &LeagueSettings{}, nil
	}
	var settings LeagueSettings
	if err := json.Unmarshal([]byte(*l.SettingsJSON), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

type Invite struct {
	ID        int       `json:"id" db:"id"`
	LeagueID  int       `json:"league_id" db:"league_id"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
