package handlers

import (
	"net/http"

	"github.com/Dosada05/botola-fantasy/services"
)

type GameweekHandler struct {
	gameweekService services.GameweekService
}

func NewGameweekHandler(gs services.GameweekService) *GameweekHandler {
	return &GameweekHandler{gameweekService: gs}
}

// Current godoc
// @Summary Текущий тур
// @Tags gameweek
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /gameweek [get]
func (h *GameweekHandler) Current(w http.ResponseWriter, r *http.Request) {
	gw, err := h.gameweekService.Current(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"gameweek": gw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Set godoc
// @Summary Установить текущий тур
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body object true "{gameweek}"
// @Success 200 {object} map[string]interface{}
// @Router /admin/gameweek [put]
func (h *GameweekHandler) Set(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Gameweek int `json:"gameweek"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.gameweekService.Set(r.Context(), input.Gameweek); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"gameweek": input.Gameweek}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
