package handlers

import (
	"net/http"
	"strconv"

	"github.com/cprater/football-pickem-backend-sub000/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// Get computes standings for a league on demand. Without a week query
// parameter the result covers the whole season.
func (h *StandingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var week *int
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errInvalidQueryParam("week"))
			return
		}
		week = &parsed
	}

	result, err := h.standingsService.GetStandings(r.Context(), leagueID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
