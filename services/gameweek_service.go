package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/botola-fantasy/repositories"
)

type GameweekService interface {
	Current(ctx context.Context) (int, error)
	Set(ctx context.Context, gameweek int) error
}

type gameweekService struct {
	repo   repositories.GameweekRepository
	logger *slog.Logger
}

func NewGameweekService(repo repositories.GameweekRepository, logger *slog.Logger) GameweekService {
	return &gameweekService{repo: repo, logger: logger}
}

func (s *gameweekService) Current(ctx context.Context) (int, error) {
	gw, err := s.repo.Current(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current gameweek: %w", err)
	}
	return gw, nil
}

// Set меняет авторитетный тур. Составы переводятся на него при следующей записи
// или явным вызовом reconcile.
func (s *gameweekService) Set(ctx context.Context, gameweek int) error {
	if gameweek <= 0 {
		return ErrInvalidGameweek
	}
	if err := s.repo.Set(ctx, gameweek); err != nil {
		return err
	}
	s.logger.Info("current gameweek changed", slog.Int("gameweek", gameweek))
	return nil
}
