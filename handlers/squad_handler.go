package handlers

import (
	"net/http"

	"github.com/Dosada05/botola-fantasy/middleware"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/services"
)

type SquadHandler struct {
	squadService services.SquadService
}

func NewSquadHandler(ss services.SquadService) *SquadHandler {
	return &SquadHandler{squadService: ss}
}

type playerRefInput struct {
	PlayerID string `json:"player_id"`
}

// GetSquad godoc
// @Summary Состав текущего пользователя
// @Description Только чтение. needs_reconcile=true, если состав ещё не переведён на текущий тур.
// @Tags squad
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SquadView
// @Router /squad [get]
func (h *SquadHandler) GetSquad(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	view, err := h.squadService.GetSquad(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Reconcile godoc
// @Summary Перевести состав на текущий тур
// @Tags squad
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SquadLedger
// @Router /squad/reconcile [post]
func (h *SquadHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.respondLedger(w, r, func() (*models.SquadLedger, error) {
		return h.squadService.Reconcile(r.Context(), userID)
	})
}

// AddPlayer godoc
// @Summary Купить игрока
// @Tags squad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body playerRefInput true "player_id"
// @Success 200 {object} models.SquadLedger
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /squad/players [post]
func (h *SquadHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input playerRefInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.respondLedger(w, r, func() (*models.SquadLedger, error) {
		return h.squadService.AddPlayer(r.Context(), userID, input.PlayerID)
	})
}

// SellPlayer godoc
// @Summary Продать игрока
// @Tags squad
// @Produce json
// @Security BearerAuth
// @Param playerID path string true "Player ID"
// @Success 200 {object} models.SquadLedger
// @Router /squad/players/{playerID} [delete]
func (h *SquadHandler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.respondLedger(w, r, func() (*models.SquadLedger, error) {
		return h.squadService.SellPlayer(r.Context(), userID, playerID)
	})
}

// SetCaptain godoc
// @Summary Назначить капитана
// @Tags squad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body playerRefInput true "player_id"
// @Success 200 {object} models.SquadLedger
// @Router /squad/captain [put]
func (h *SquadHandler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input playerRefInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.respondLedger(w, r, func() (*models.SquadLedger, error) {
		return h.squadService.SetCaptain(r.Context(), userID, input.PlayerID)
	})
}

// SetViceCaptain godoc
// @Summary Назначить вице-капитана
// @Tags squad
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body playerRefInput true "player_id"
// @Success 200 {object} models.SquadLedger
// @Router /squad/vice-captain [put]
func (h *SquadHandler) SetViceCaptain(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input playerRefInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.respondLedger(w, r, func() (*models.SquadLedger, error) {
		return h.squadService.SetViceCaptain(r.Context(), userID, input.PlayerID)
	})
}

// Score godoc
// @Summary Очки состава
// @Tags squad
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /squad/score [get]
func (h *SquadHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	score, err := h.squadService.Score(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) respondLedger(w http.ResponseWriter, r *http.Request, op func() (*models.SquadLedger, error)) {
	ledger, err := op()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ledger": ledger}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return "", false
	}
	return userID, true
}
