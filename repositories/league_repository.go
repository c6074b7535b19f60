package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/botola-fantasy/models"
	"github.com/lib/pq"
)

var (
	ErrLeagueNotFound     = errors.New("league not found")
	ErrLeagueCodeConflict = errors.New("league code conflict")
	ErrAlreadyMember      = errors.New("user is already a league member")
)

type LeagueRepository interface {
	Create(ctx context.Context, league *models.League) error
	GetByID(ctx context.Context, id string) (*models.League, error)
	GetByCode(ctx context.Context, code string) (*models.League, error)
	ListByMember(ctx context.Context, userID string) ([]models.League, error)
	AddMember(ctx context.Context, leagueID string, userID string) (*models.League, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

const leagueColumns = `id, name, code, creator_id, members, created_at`

func (r *postgresLeagueRepository) Create(ctx context.Context, league *models.League) error {
	query := `
		INSERT INTO leagues (id, name, code, creator_id, members)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		league.ID,
		league.Name,
		league.Code,
		league.CreatorID,
		pq.Array(league.Members),
	).Scan(&league.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "leagues_code_key") {
			return ErrLeagueCodeConflict
		}
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to insert league: %w", err)
	}
	return nil
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id string) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`
	return scanLeague(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresLeagueRepository) GetByCode(ctx context.Context, code string) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE code = $1`
	return scanLeague(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresLeagueRepository) ListByMember(ctx context.Context, userID string) ([]models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE members @> ARRAY[$1]::text[] ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues for user %s: %w", userID, err)
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

// AddMember добавляет участника одной командой UPDATE; повторное вступление даёт ErrAlreadyMember.
func (r *postgresLeagueRepository) AddMember(ctx context.Context, leagueID string, userID string) (*models.League, error) {
	query := `
		UPDATE leagues
		SET members = array_append(members, $2)
		WHERE id = $1 AND NOT ($2 = ANY(members))
		RETURNING ` + leagueColumns

	league, err := scanLeague(r.db.QueryRowContext(ctx, query, leagueID, userID))
	if err == nil {
		return league, nil
	}
	if !errors.Is(err, ErrLeagueNotFound) {
		return nil, err
	}

	// Строка не обновилась: либо лиги нет, либо пользователь уже в ней.
	existing, getErr := r.GetByID(ctx, leagueID)
	if getErr != nil {
		return nil, getErr
	}
	if existing.IsMember(userID) {
		return nil, ErrAlreadyMember
	}
	return nil, ErrLeagueNotFound
}

func scanLeague(row rowScanner) (*models.League, error) {
	var l models.League
	members := pq.StringArray{}
	err := row.Scan(&l.ID, &l.Name, &l.Code, &l.CreatorID, &members, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to scan league: %w", err)
	}
	l.Members = []string(members)
	if l.Members == nil {
		l.Members = []string{}
	}
	return &l, nil
}
