package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
)

type SquadService interface {
	// GetSquad только читает: составы прошлого тура возвращаются с NeedsReconcile.
	GetSquad(ctx context.Context, userID string) (*models.SquadView, error)
	Reconcile(ctx context.Context, userID string) (*models.SquadLedger, error)
	AddPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error)
	SellPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error)
	SetCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error)
	SetViceCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error)
	Score(ctx context.Context, userID string) (int, error)
}

type squadService struct {
	tx           repositories.Transactor
	ledgerRepo   repositories.LedgerRepository
	playerRepo   repositories.PlayerRepository
	gameweekRepo repositories.GameweekRepository
	players      PlayerService
	rules        fantasy.Rules
	logger       *slog.Logger
}

func NewSquadService(
	tx repositories.Transactor,
	ledgerRepo repositories.LedgerRepository,
	playerRepo repositories.PlayerRepository,
	gameweekRepo repositories.GameweekRepository,
	players PlayerService,
	rules fantasy.Rules,
	logger *slog.Logger,
) SquadService {
	return &squadService{
		tx:           tx,
		ledgerRepo:   ledgerRepo,
		playerRepo:   playerRepo,
		gameweekRepo: gameweekRepo,
		players:      players,
		rules:        rules,
		logger:       logger,
	}
}

func (s *squadService) GetSquad(ctx context.Context, userID string) (*models.SquadView, error) {
	gameweek, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current gameweek: %w", err)
	}

	ledger, err := s.ledgerRepo.GetByUserID(ctx, nil, userID)
	if errors.Is(err, repositories.ErrLedgerNotFound) {
		// Состав создаётся при первом обращении.
		ledger, err = s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
			return l, nil
		})
	}
	if err != nil {
		return nil, err
	}

	catalog, err := s.players.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SquadView{
		Ledger:         *ledger,
		Players:        catalog.Resolve(ledger.PlayerIDs),
		Score:          fantasy.ComputeScore(ledger.PlayerIDs, ledger.CaptainID, ledger.PointsDeductions, catalog),
		Gameweek:       gameweek,
		NeedsReconcile: ledger.CurrentGameweek != gameweek,
	}, nil
}

func (s *squadService) Reconcile(ctx context.Context, userID string) (*models.SquadLedger, error) {
	return s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
		return l, nil
	})
}

func (s *squadService) AddPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	player, err := s.lookupPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
		return s.rules.AddPlayer(l, *player)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("player added to squad",
		slog.String("user_id", userID),
		slog.String("player_id", playerID),
		slog.String("budget", ledger.Budget.String()),
		slog.Int("points_deductions", ledger.PointsDeductions),
	)
	return ledger, nil
}

func (s *squadService) SellPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
		}
		// Игрок удалён из каталога: продаём без возврата денег.
		player = &models.Player{ID: playerID}
	}
	ledger, err := s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
		return s.rules.SellPlayer(l, *player)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("player sold from squad",
		slog.String("user_id", userID),
		slog.String("player_id", playerID),
		slog.String("budget", ledger.Budget.String()),
	)
	return ledger, nil
}

func (s *squadService) SetCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
		return s.rules.SetCaptain(l, playerID)
	})
}

func (s *squadService) SetViceCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return s.mutate(ctx, userID, func(l models.SquadLedger) (models.SquadLedger, error) {
		return s.rules.SetViceCaptain(l, playerID)
	})
}

func (s *squadService) Score(ctx context.Context, userID string) (int, error) {
	ledger, err := s.ledgerRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrLedgerNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get ledger for user %s: %w", userID, err)
	}
	catalog, err := s.players.Catalog(ctx)
	if err != nil {
		return 0, err
	}
	return fantasy.ComputeScore(ledger.PlayerIDs, ledger.CaptainID, ledger.PointsDeductions, catalog), nil
}

func (s *squadService) lookupPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	if playerID == "" {
		return nil, ErrPlayerIDRequired
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return player, nil
}

// mutate - одна транзакция над строкой состава: блокировка (или создание с
// дефолтами), перевод на текущий тур, применение правила и запись.
func (s *squadService) mutate(ctx context.Context, userID string, apply func(models.SquadLedger) (models.SquadLedger, error)) (*models.SquadLedger, error) {
	gameweek, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current gameweek: %w", err)
	}

	var result models.SquadLedger
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		current, err := s.ledgerRepo.GetForUpdate(ctx, exec, userID)
		switch {
		case errors.Is(err, repositories.ErrLedgerNotFound):
			fresh := s.rules.NewLedger(userID, gameweek)
			current = &fresh
		case err != nil:
			return err
		}

		reconciled, rolled := s.rules.ReconcileGameweek(*current, gameweek)
		if rolled {
			s.logger.Info("squad reconciled to gameweek",
				slog.String("user_id", userID),
				slog.Int("from", current.CurrentGameweek),
				slog.Int("to", gameweek),
			)
		}

		next, err := apply(reconciled)
		if err != nil {
			return err
		}
		if err := s.ledgerRepo.Save(ctx, exec, &next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &result, nil
}
