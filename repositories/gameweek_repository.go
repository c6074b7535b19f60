package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrGameStateMissing = errors.New("game state row is missing")

// GameweekRepository хранит единственное авторитетное значение текущего тура.
type GameweekRepository interface {
	Current(ctx context.Context) (int, error)
	Set(ctx context.Context, gameweek int) error
}

type postgresGameweekRepository struct {
	db *sql.DB
}

func NewPostgresGameweekRepository(db *sql.DB) GameweekRepository {
	return &postgresGameweekRepository{db: db}
}

func (r *postgresGameweekRepository) Current(ctx context.Context) (int, error) {
	var gw int
	err := r.db.QueryRowContext(ctx, `SELECT current_gameweek FROM game_state WHERE id`).Scan(&gw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrGameStateMissing
		}
		return 0, fmt.Errorf("failed to read current gameweek: %w", err)
	}
	return gw, nil
}

func (r *postgresGameweekRepository) Set(ctx context.Context, gameweek int) error {
	query := `
		INSERT INTO game_state (id, current_gameweek, updated_at)
		VALUES (TRUE, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET current_gameweek = EXCLUDED.current_gameweek, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, gameweek); err != nil {
		return fmt.Errorf("failed to set current gameweek: %w", err)
	}
	return nil
}
