package models

// StandingsRow is a derived per-participant aggregate. It is recomputed on
// every standings request and never persisted.
type StandingsRow struct {
	UserID        int         `json:"userId"`
	User          *User       `json:"user,omitempty"`
	TotalPoints   int         `json:"totalPoints"`
	CorrectPicks  int         `json:"correctPicks"`
	TotalPicks    int         `json:"totalPicks"`
	WinPercentage float64     `json:"winPercentage"`
	Rank          int         `json:"rank"`
	WeeklyPoints  map[int]int `json:"weeklyPoints"`
}
