package handlers

import (
	"net/http"
	"strconv"

	"github.com/cprater/football-pickem-backend-sub000/middleware"
	"github.com/cprater/football-pickem-backend-sub000/services"
)

type PickHandler struct {
	pickService services.PickService
}

func NewPickHandler(pickService services.PickService) *PickHandler {
	return &PickHandler{pickService: pickService}
}

func (h *PickHandler) Submit(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication token")
		return
	}

	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmitPickInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pick, err := h.pickService.SubmitPick(r.Context(), currentUserID, leagueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pick": pick}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PickHandler) Update(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication token")
		return
	}

	pickID, err := getIDFromURL(r, "pickID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePickInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pick, err := h.pickService.UpdatePick(r.Context(), currentUserID, pickID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pick": pick}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PickHandler) Delete(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication token")
		return
	}

	pickID, err := getIDFromURL(r, "pickID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.pickService.DeletePick(r.Context(), currentUserID, pickID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine returns the authenticated user's picks within a league,
// optionally scoped to a single week.
func (h *PickHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid authentication token")
		return
	}

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

	picks, err := h.pickService.ListUserPicks(r.Context(), currentUserID, leagueID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"picks": picks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
