package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/botola-fantasy/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListAll(ctx context.Context) ([]models.Player, error)
	GetForUpdate(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error)
	UpdatePoints(ctx context.Context, exec SQLExecutor, id string, points int) error
	UpdateImageKey(ctx context.Context, id string, key *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, team, position, jersey_number, image_key, image_hint, price, points, updated_at`

// Upsert создаёт или обновляет карточку игрока. Очки и изображение не трогает:
// очки меняются только матчевыми событиями.
func (r *postgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, team, position, jersey_number, image_hint, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			jersey_number = EXCLUDED.jersey_number,
			image_hint = EXCLUDED.image_hint,
			price = EXCLUDED.price,
			updated_at = NOW()
		RETURNING image_key, points, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.Name,
		player.Team,
		player.Position,
		player.JerseyNumber,
		player.ImageHint,
		player.Price,
	).Scan(&player.ImageKey, &player.Points, &player.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1 FOR UPDATE`
	return scanPlayer(executorOr(exec, r.db).QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY team ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, id string, points int) error {
	query := `UPDATE players SET points = $1, updated_at = NOW() WHERE id = $2`
	result, err := executorOr(exec, r.db).ExecContext(ctx, query, points, id)
	if err != nil {
		return fmt.Errorf("failed to update points for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateImageKey(ctx context.Context, id string, key *string) error {
	query := `UPDATE players SET image_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("failed to update image for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Team,
		&p.Position,
		&p.JerseyNumber,
		&p.ImageKey,
		&p.ImageHint,
		&p.Price,
		&p.Points,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}
