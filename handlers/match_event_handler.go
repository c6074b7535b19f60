package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/botola-fantasy/services"
)

type MatchEventHandler struct {
	matchEventService services.MatchEventService
	logger            *slog.Logger
}

func NewMatchEventHandler(ms services.MatchEventService, logger *slog.Logger) *MatchEventHandler {
	return &MatchEventHandler{matchEventService: ms, logger: logger}
}

// MatchEventRequest - тело запроса от поставщика матчевых данных.
type MatchEventRequest struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
}

// ProcessMatchEvent godoc
// @Summary Применить матчевое событие к очкам игрока
// @Description goal +5, assist +3, yellow_card -1, red_card -3, appearance +1. clean_sheet_* пока не оцениваются.
// @Tags match-events
// @Accept json
// @Produce json
// @Param X-Ingest-Key header string false "ключ поставщика, если настроен"
// @Param input body MatchEventRequest true "playerId, action"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 405 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /match-events [post]
func (h *MatchEventHandler) ProcessMatchEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.MethodNotAllowed(w, r)
		return
	}

	var input MatchEventRequest
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Bad Request: %v", err))
		return
	}
	if input.PlayerID == "" || input.Action == "" {
		errorResponse(w, r, http.StatusBadRequest, "Bad Request: Missing playerId or action in request body.")
		return
	}

	update, err := h.matchEventService.ApplyMatchEvent(r.Context(), input.PlayerID, input.Action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownAction):
			h.logger.Warn("unknown action type", slog.String("action", input.Action))
			errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown action type: %s", input.Action))
		case errors.Is(err, services.ErrActionNotScored):
			errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Action type has no point value yet: %s", input.Action))
		default:
			h.logger.Error("error processing match event",
				slog.String("player_id", input.PlayerID),
				slog.String("action", input.Action),
				slog.Any("error", err),
			)
			details := "failed to update player points"
			// Отсутствующий игрок - такая же общая ошибка, но с понятной причиной.
			if errors.Is(err, services.ErrPlayerNotFound) {
				details = fmt.Sprintf("Player with ID %s not found.", input.PlayerID)
			}
			h.internalError(w, details)
		}
		return
	}

	response := jsonResponse{
		"status":      "success",
		"message":     fmt.Sprintf("Player %s's score updated due to %s.", update.PlayerID, update.Action),
		"pointsAdded": update.PointsAdded,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MethodNotAllowed отвечает JSON вместо текстового ответа chi по умолчанию.
func (h *MatchEventHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	headers := http.Header{"Allow": []string{http.MethodPost}}
	env := jsonResponse{"error": "Method Not Allowed. Please use POST."}
	if err := writeJSON(w, http.StatusMethodNotAllowed, env, headers); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func (h *MatchEventHandler) internalError(w http.ResponseWriter, details string) {
	env := jsonResponse{"error": "Internal Server Error", "details": details}
	if err := writeJSON(w, http.StatusInternalServerError, env, nil); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}
