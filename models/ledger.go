package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SquadLedger - состояние команды пользователя: состав, бюджет и счётчики трансферов.
type SquadLedger struct {
	UserID                    string          `json:"user_id" db:"user_id"`
	PlayerIDs                 []string        `json:"player_ids" db:"player_ids"`
	CaptainID                 *string         `json:"captain_id,omitempty" db:"captain_id"`
	ViceCaptainID             *string         `json:"vice_captain_id,omitempty" db:"vice_captain_id"`
	Budget                    decimal.Decimal `json:"budget" db:"budget"`
	CurrentGameweek           int             `json:"current_gameweek" db:"current_gameweek"`
	FreeTransfers             int             `json:"free_transfers" db:"free_transfers"`
	TransfersMadeThisGameweek int             `json:"transfers_made_this_gameweek" db:"transfers_made_this_gameweek"`
	PointsDeductions          int             `json:"points_deductions" db:"points_deductions"`
	UpdatedAt                 time.Time       `json:"updated_at" db:"updated_at"`
}

func (l *SquadLedger) Has(playerID string) bool {
	for _, id := range l.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// SquadView - ответ API для GET /squad.
type SquadView struct {
	Ledger         SquadLedger `json:"ledger"`
	Players        []Player    `json:"players"`
	Score          int         `json:"score"`
	Gameweek       int         `json:"gameweek"`
	NeedsReconcile bool        `json:"needs_reconcile"`
}
