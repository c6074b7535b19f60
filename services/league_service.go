package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/live"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	joinCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength      = 6
	maxJoinCodeAttempts = 5
	maxLeagueNameLength = 60
	leaderboardFanOut   = 8
)

type LeagueService interface {
	CreateLeague(ctx context.Context, name string, creatorID string) (*models.League, error)
	JoinLeague(ctx context.Context, code string, userID string) (*models.League, error)
	GetLeague(ctx context.Context, leagueID string, userID string) (*models.League, error)
	ListMyLeagues(ctx context.Context, userID string) ([]models.League, error)
	Leaderboard(ctx context.Context, leagueID string, userID string) (*models.Leaderboard, error)
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	ledgerRepo repositories.LedgerRepository
	userRepo   repositories.UserRepository
	players    PlayerService
	hub        live.Broadcaster
	logger     *slog.Logger
	newCode    func() (string, error)
}

func NewLeagueService(
	leagueRepo repositories.LeagueRepository,
	ledgerRepo repositories.LedgerRepository,
	userRepo repositories.UserRepository,
	players PlayerService,
	hub live.Broadcaster,
	logger *slog.Logger,
) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		players:    players,
		hub:        hub,
		logger:     logger,
		newCode:    generateJoinCode,
	}
}

func generateJoinCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(joinCodeAlphabet)))
	code := make([]byte, joinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func normalizeJoinCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != joinCodeLength {
		return "", ErrInvalidJoinCode
	}
	for _, r := range code {
		if !strings.ContainsRune(joinCodeAlphabet, r) {
			return "", ErrInvalidJoinCode
		}
	}
	return code, nil
}

func (s *leagueService) CreateLeague(ctx context.Context, name string, creatorID string) (*models.League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLeagueNameRequired
	}
	if utf8.RuneCountInString(name) > maxLeagueNameLength {
		return nil, ErrLeagueNameTooLong
	}

	league := &models.League{
		ID:        uuid.NewString(),
		Name:      name,
		CreatorID: creatorID,
		Members:   []string{creatorID},
	}

	for attempt := 1; attempt <= maxJoinCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate join code: %w", err)
		}
		league.Code = code

		err = s.leagueRepo.Create(ctx, league)
		if err == nil {
			s.logger.Info("league created",
				slog.String("league_id", league.ID),
				slog.String("creator_id", creatorID),
				slog.Int("attempts", attempt),
			)
			return league, nil
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		if !errors.Is(err, repositories.ErrLeagueCodeConflict) {
			return nil, fmt.Errorf("failed to create league: %w", err)
		}
		s.logger.Warn("join code collision, retrying", slog.Int("attempt", attempt))
	}

	return nil, ErrJoinCodeExhausted
}

func (s *leagueService) JoinLeague(ctx context.Context, code string, userID string) (*models.League, error) {
	normalized, err := normalizeJoinCode(code)
	if err != nil {
		return nil, err
	}

	league, err := s.leagueRepo.GetByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to find league by code: %w", err)
	}
	if league.IsMember(userID) {
		return nil, ErrAlreadyLeagueMember
	}

	updated, err := s.leagueRepo.AddMember(ctx, league.ID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyMember):
			return nil, ErrAlreadyLeagueMember
		case errors.Is(err, repositories.ErrLeagueNotFound):
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to join league %s: %w", league.ID, err)
	}

	s.hub.BroadcastToRoom(live.LeagueRoom(updated.ID), live.Message{
		Type:    live.MessageLeagueMemberJoined,
		Payload: map[string]interface{}{"league_id": updated.ID, "user_id": userID, "members": len(updated.Members)},
	})
	s.logger.Info("user joined league", slog.String("league_id", updated.ID), slog.String("user_id", userID))
	return updated, nil
}

func (s *leagueService) GetLeague(ctx context.Context, leagueID string, userID string) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league %s: %w", leagueID, err)
	}
	if !league.IsMember(userID) {
		return nil, ErrNotLeagueMember
	}
	return league, nil
}

func (s *leagueService) ListMyLeagues(ctx context.Context, userID string) ([]models.League, error) {
	leagues, err := s.leagueRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

// Leaderboard читает составы участников параллельно. Снимок не согласован
// между участниками: чужой состав может измениться во время расчёта.
func (s *leagueService) Leaderboard(ctx context.Context, leagueID string, userID string) (*models.Leaderboard, error) {
	league, err := s.GetLeague(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}

	var (
		catalog fantasy.Catalog
		labels  = make(map[string]string, len(league.Members))
		ledgers = make(map[string]models.SquadLedger, len(league.Members))
		mu      sync.Mutex
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(leaderboardFanOut)

	g.Go(func() error {
		c, err := s.players.Catalog(gCtx)
		if err != nil {
			return err
		}
		catalog = c
		return nil
	})

	g.Go(func() error {
		users, err := s.userRepo.ListByIDs(gCtx, league.Members)
		if err != nil {
			return fmt.Errorf("failed to load league members: %w", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for i := range users {
			labels[users[i].ID] = users[i].Label()
		}
		return nil
	})

	for _, memberID := range league.Members {
		memberID := memberID
		g.Go(func() error {
			ledger, err := s.ledgerRepo.GetByUserID(gCtx, nil, memberID)
			if err != nil {
				if errors.Is(err, repositories.ErrLedgerNotFound) {
					return nil
				}
				return fmt.Errorf("failed to load ledger for member %s: %w", memberID, err)
			}
			mu.Lock()
			ledgers[memberID] = *ledger
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Leaderboard{
		League:  *league,
		Entries: fantasy.ComputeLeaderboard(*league, ledgers, labels, catalog),
	}, nil
}
