package fantasy

import (
	"errors"

	"github.com/Dosada05/botola-fantasy/models"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyOwned       = errors.New("player is already in the squad")
	ErrSquadFull          = errors.New("squad is full")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrNotInSquad         = errors.New("player is not in the squad")
)

// Rules хранит параметры трансферной системы.
type Rules struct {
	MaxSquadSize             int
	StartingBudget           decimal.Decimal
	FreeTransfersPerGameweek int
	TransferPenalty          int
}

func DefaultRules() Rules {
	return Rules{
		MaxSquadSize:             15,
		StartingBudget:           decimal.NewFromInt(100),
		FreeTransfersPerGameweek: 1,
		TransferPenalty:          4,
	}
}

// NewLedger создаёт пустой состав с начальным бюджетом для указанного тура.
func (r Rules) NewLedger(userID string, gameweek int) models.SquadLedger {
	return models.SquadLedger{
		UserID:          userID,
		PlayerIDs:       []string{},
		Budget:          r.StartingBudget,
		CurrentGameweek: gameweek,
		FreeTransfers:   r.FreeTransfersPerGameweek,
	}
}
