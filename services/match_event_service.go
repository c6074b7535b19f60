package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/live"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
)

type MatchEventService interface {
	ApplyMatchEvent(ctx context.Context, playerID string, action string) (*models.PointsUpdate, error)
}

type matchEventService struct {
	tx         repositories.Transactor
	playerRepo repositories.PlayerRepository
	hub        live.Broadcaster
	logger     *slog.Logger
}

func NewMatchEventService(tx repositories.Transactor, playerRepo repositories.PlayerRepository, hub live.Broadcaster, logger *slog.Logger) MatchEventService {
	return &matchEventService{
		tx:         tx,
		playerRepo: playerRepo,
		hub:        hub,
		logger:     logger,
	}
}

// ApplyMatchEvent начисляет игроку очки за событие. Действие проверяется до
// обращения к базе; чтение и запись очков идут под блокировкой строки игрока.
func (s *matchEventService) ApplyMatchEvent(ctx context.Context, playerID string, action string) (*models.PointsUpdate, error) {
	parsed, err := fantasy.ParseAction(action)
	if err != nil {
		return nil, err
	}
	delta, err := parsed.Delta()
	if err != nil {
		return nil, err
	}

	var update models.PointsUpdate
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		player, err := s.playerRepo.GetForUpdate(ctx, exec, playerID)
		if err != nil {
			return err
		}
		total := player.Points + delta
		if err := s.playerRepo.UpdatePoints(ctx, exec, player.ID, total); err != nil {
			return err
		}
		update = models.PointsUpdate{
			PlayerID:    player.ID,
			Action:      string(parsed),
			PointsAdded: delta,
			TotalPoints: total,
		}
		s.logger.Info("player points updated",
			slog.String("player_id", player.ID),
			slog.String("action", string(parsed)),
			slog.Int("from", player.Points),
			slog.Int("to", total),
		)
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, fmt.Errorf("%w: player with ID %s not found", ErrPlayerNotFound, playerID)
		}
		return nil, fmt.Errorf("failed to apply match event: %w", err)
	}

	s.hub.BroadcastToRoom(live.PlayersRoom, live.Message{Type: live.MessagePlayerPointsUpdated, Payload: update})
	return &update, nil
}
