package services

import (
	"errors"

	"github.com/Dosada05/botola-fantasy/fantasy"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail           = errors.New("email address is invalid")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Сущности
	ErrUserNotFound   = errors.New("user not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrLeagueNotFound = errors.New("league not found")

	// Игроки
	ErrPlayerIDRequired   = errors.New("player id is required")
	ErrPlayerNameRequired = errors.New("player name and team are required")
	ErrInvalidPrice       = errors.New("price must be a non-negative multiple of 0.1")
	ErrStorageUnavailable = errors.New("image storage is not configured")

	// Туры
	ErrInvalidGameweek = errors.New("gameweek must be a positive number")

	// Лиги
	ErrLeagueNameRequired  = errors.New("league name is required")
	ErrLeagueNameTooLong   = errors.New("league name must be at most 60 characters")
	ErrInvalidJoinCode     = errors.New("join code must be 6 letters or digits")
	ErrAlreadyLeagueMember = errors.New("you are already a member of this league")
	ErrNotLeagueMember     = errors.New("only league members can view this league")
	ErrJoinCodeExhausted   = errors.New("could not generate a unique join code")

	// Правила состава
	ErrAlreadyOwned       = fantasy.ErrAlreadyOwned
	ErrSquadFull          = fantasy.ErrSquadFull
	ErrInsufficientBudget = fantasy.ErrInsufficientBudget
	ErrNotInSquad         = fantasy.ErrNotInSquad

	// Матчевые события
	ErrUnknownAction   = fantasy.ErrUnknownAction
	ErrActionNotScored = fantasy.ErrActionNotScored
)
