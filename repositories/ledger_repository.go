package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/botola-fantasy/models"
	"github.com/lib/pq"
)

var ErrLedgerNotFound = errors.New("squad ledger not found")

type LedgerRepository interface {
	GetByUserID(ctx context.Context, exec SQLExecutor, userID string) (*models.SquadLedger, error)
	GetForUpdate(ctx context.Context, exec SQLExecutor, userID string) (*models.SquadLedger, error)
	// Save пишет только поля состава; прочие колонки строки сохраняются.
	Save(ctx context.Context, exec SQLExecutor, ledger *models.SquadLedger) error
}

type postgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) LedgerRepository {
	return &postgresLedgerRepository{db: db}
}

const ledgerColumns = `user_id, player_ids, captain_id, vice_captain_id, budget, current_gameweek,
	free_transfers, transfers_made_this_gameweek, points_deductions, updated_at`

func (r *postgresLedgerRepository) GetByUserID(ctx context.Context, exec SQLExecutor, userID string) (*models.SquadLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM squad_ledgers WHERE user_id = $1`
	return scanLedger(executorOr(exec, r.db).QueryRowContext(ctx, query, userID))
}

func (r *postgresLedgerRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, userID string) (*models.SquadLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM squad_ledgers WHERE user_id = $1 FOR UPDATE`
	return scanLedger(executorOr(exec, r.db).QueryRowContext(ctx, query, userID))
}

func (r *postgresLedgerRepository) Save(ctx context.Context, exec SQLExecutor, ledger *models.SquadLedger) error {
	query := `
		INSERT INTO squad_ledgers (
			user_id, player_ids, captain_id, vice_captain_id, budget, current_gameweek,
			free_transfers, transfers_made_this_gameweek, points_deductions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			player_ids = EXCLUDED.player_ids,
			captain_id = EXCLUDED.captain_id,
			vice_captain_id = EXCLUDED.vice_captain_id,
			budget = EXCLUDED.budget,
			current_gameweek = EXCLUDED.current_gameweek,
			free_transfers = EXCLUDED.free_transfers,
			transfers_made_this_gameweek = EXCLUDED.transfers_made_this_gameweek,
			points_deductions = EXCLUDED.points_deductions,
			updated_at = NOW()
		RETURNING updated_at`

	playerIDs := ledger.PlayerIDs
	if playerIDs == nil {
		playerIDs = []string{}
	}

	err := executorOr(exec, r.db).QueryRowContext(ctx, query,
		ledger.UserID,
		pq.Array(playerIDs),
		ledger.CaptainID,
		ledger.ViceCaptainID,
		ledger.Budget,
		ledger.CurrentGameweek,
		ledger.FreeTransfers,
		ledger.TransfersMadeThisGameweek,
		ledger.PointsDeductions,
	).Scan(&ledger.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to save ledger for user %s: %w", ledger.UserID, err)
	}
	return nil
}

func scanLedger(row rowScanner) (*models.SquadLedger, error) {
	var l models.SquadLedger
	playerIDs := pq.StringArray{}
	err := row.Scan(
		&l.UserID,
		&playerIDs,
		&l.CaptainID,
		&l.ViceCaptainID,
		&l.Budget,
		&l.CurrentGameweek,
		&l.FreeTransfers,
		&l.TransfersMadeThisGameweek,
		&l.PointsDeductions,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to scan ledger: %w", err)
	}
	l.PlayerIDs = []string(playerIDs)
	if l.PlayerIDs == nil {
		l.PlayerIDs = []string{}
	}
	return &l, nil
}
