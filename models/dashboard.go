package models

type DashboardStats struct {
	UsersTotal    int `json:"users_total"`
	LeaguesTotal  int `json:"leagues_total"`
	ActiveLeagues int `json:"active_leagues"`
	GamesTotal    int `json:"games_total"`
	PicksTotal    int `json:"picks_total"`
}
