package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type RegisterInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	tx           repositories.Transactor
	userRepo     repositories.UserRepository
	ledgerRepo   repositories.LedgerRepository
	gameweekRepo repositories.GameweekRepository
	rules        fantasy.Rules
	logger       *slog.Logger
}

func NewAuthService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	ledgerRepo repositories.LedgerRepository,
	gameweekRepo repositories.GameweekRepository,
	rules fantasy.Rules,
	logger *slog.Logger,
) AuthService {
	return &authService{
		tx:           tx,
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		gameweekRepo: gameweekRepo,
		rules:        rules,
		logger:       logger,
	}
}

// Register создаёт пользователя вместе с пустым составом на текущий тур.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayName *string
	if input.DisplayName != nil {
		if trimmed := strings.TrimSpace(*input.DisplayName); trimmed != "" {
			displayName = &trimmed
		}
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		Role:         models.RoleManager,
		PasswordHash: string(hashedPassword),
	}

	gameweek, err := s.gameweekRepo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current gameweek: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.userRepo.Create(ctx, exec, user); err != nil {
			return err
		}
		ledger := s.rules.NewLedger(user.ID, gameweek)
		return s.ledgerRepo.Save(ctx, exec, &ledger)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID))
	// Хеш остаётся в сохранённой записи, наружу отдаётся копия без него.
	created := *user
	created.PasswordHash = ""
	return &created, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}
