package handlers

import (
	"net/http"

	"github.com/Dosada05/botola-fantasy/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: ls}
}

// CreateLeague godoc
// @Summary Создать лигу
// @Tags leagues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body object true "{name}"
// @Success 201 {object} models.League
// @Router /leagues [post]
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.CreateLeague(r.Context(), input.Name, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"league": league}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// JoinLeague godoc
// @Summary Вступить в лигу по коду
// @Tags leagues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body object true "{code}"
// @Success 200 {object} models.League
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /leagues/join [post]
func (h *LeagueHandler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.JoinLeague(r.Context(), input.Code, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"league": league}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMyLeagues godoc
// @Summary Мои лиги
// @Tags leagues
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /leagues [get]
func (h *LeagueHandler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	leagues, err := h.leagueService.ListMyLeagues(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetLeague godoc
// @Summary Лига (только для участников)
// @Tags leagues
// @Produce json
// @Security BearerAuth
// @Param leagueID path string true "League ID"
// @Success 200 {object} models.League
// @Router /leagues/{leagueID} [get]
func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	league, err := h.leagueService.GetLeague(r.Context(), leagueID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"league": league}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Leaderboard godoc
// @Summary Таблица лиги
// @Tags leagues
// @Produce json
// @Security BearerAuth
// @Param leagueID path string true "League ID"
// @Success 200 {object} models.Leaderboard
// @Router /leagues/{leagueID}/leaderboard [get]
func (h *LeagueHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.leagueService.Leaderboard(r.Context(), leagueID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
