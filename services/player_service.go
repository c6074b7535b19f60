package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/Dosada05/botola-fantasy/storage"
	"github.com/shopspring/decimal"
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	Catalog(ctx context.Context) (fantasy.Catalog, error)
	UpsertPlayer(ctx context.Context, input UpsertPlayerInput) (*models.Player, error)
	UploadImage(ctx context.Context, playerID string, contentType string, file io.Reader) (*models.Player, error)
}

type UpsertPlayerInput struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Team         string          `json:"team"`
	Position     *string         `json:"position"`
	JerseyNumber *int            `json:"jersey_number"`
	ImageHint    *string         `json:"image_hint"`
	Price        decimal.Decimal `json:"price"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
	now        func() time.Time
}

// NewPlayerService принимает uploader == nil, если хранилище не настроено.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	players := catalog.Players()
	for i := range players {
		s.populateImageURL(&players[i])
	}
	return players, nil
}

func (s *playerService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	s.populateImageURL(p)
	return p, nil
}

// Catalog загружает неизменяемый снимок всех игроков.
func (s *playerService) Catalog(ctx context.Context) (fantasy.Catalog, error) {
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return fantasy.Catalog{}, fmt.Errorf("failed to load player catalog: %w", err)
	}
	return fantasy.NewCatalog(players), nil
}

func (s *playerService) UpsertPlayer(ctx context.Context, input UpsertPlayerInput) (*models.Player, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, ErrPlayerIDRequired
	}
	name := strings.TrimSpace(input.Name)
	team := strings.TrimSpace(input.Team)
	if name == "" || team == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.Price.IsNegative() || !input.Price.Equal(input.Price.Round(1)) {
		return nil, ErrInvalidPrice
	}

	p := &models.Player{
		ID:           id,
		Name:         name,
		Team:         team,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		ImageHint:    input.ImageHint,
		Price:        input.Price,
	}
	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	s.populateImageURL(p)
	return p, nil
}

// UploadImage загружает фото игрока и удаляет предыдущее.
func (s *playerService) UploadImage(ctx context.Context, playerID string, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}

	key, err := storage.PlayerImageKey(p.ID, contentType, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload image for player %s: %w", p.ID, err)
	}

	if err := s.playerRepo.UpdateImageKey(ctx, p.ID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to clean up uploaded image", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save image key for player %s: %w", p.ID, err)
	}

	if p.ImageKey != nil && *p.ImageKey != "" && *p.ImageKey != key {
		if err := s.uploader.Delete(ctx, *p.ImageKey); err != nil {
			s.logger.Warn("failed to delete old player image", slog.String("key", *p.ImageKey), slog.Any("error", err))
		}
	}

	p.ImageKey = &key
	s.populateImageURL(p)
	return p, nil
}

func (s *playerService) populateImageURL(p *models.Player) {
	if s.uploader == nil || p.ImageKey == nil || *p.ImageKey == "" {
		return
	}
	url := s.uploader.GetPublicURL(*p.ImageKey)
	if url != "" {
		p.ImageURL = &url
	}
}
