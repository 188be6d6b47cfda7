package handlers

import (
	"net/http"
	"strconv"

	"github.com/cprater/football-pickem-backend-sub000/models"
	"github.com/cprater/football-pickem-backend-sub000/repositories"
	"github.com/cprater/football-pickem-backend-sub000/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.CreateGame(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.GetGameByID(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update records score and status changes. Marking a game final triggers
// pick evaluation and a live standings refresh for affected leagues.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateGameInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.gameService.UpdateGame(r.Context(), gameID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ListGamesFilter

	if raw := r.URL.Query().Get("week"); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errInvalidQueryParam("week"))
			return
		}
		filter.Week = &week
	}
	if raw := r.URL.Query().Get("season_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, errInvalidQueryParam("season_year"))
			return
		}
		filter.SeasonYear = &year
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.GameStatus(raw)
		filter.Status = &status
	}

	games, err := h.gameService.ListGames(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
