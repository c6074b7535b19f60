package fantasy

import (
	"fmt"

	"github.com/Dosada05/botola-fantasy/models"
)

// AddPlayer покупает игрока в состав. Проверки идут строго по порядку:
// уже в составе, состав заполнен, не хватает бюджета.
func (r Rules) AddPlayer(ledger models.SquadLedger, player models.Player) (models.SquadLedger, error) {
	if ledger.Has(player.ID) {
		return ledger, fmt.Errorf("%w: %s", ErrAlreadyOwned, player.ID)
	}
	if len(ledger.PlayerIDs) >= r.MaxSquadSize {
		return ledger, fmt.Errorf("%w: max=%d", ErrSquadFull, r.MaxSquadSize)
	}
	if player.Price.GreaterThan(ledger.Budget) {
		return ledger, fmt.Errorf("%w: price=%s budget=%s", ErrInsufficientBudget, player.Price, ledger.Budget)
	}

	next := cloneLedger(ledger)
	next.PlayerIDs = append(next.PlayerIDs, player.ID)
	next.Budget = next.Budget.Sub(player.Price)
	r.consumeTransfer(&next)
	return next, nil
}

// SellPlayer продаёт игрока. Продажа тоже расходует трансфер.
func (r Rules) SellPlayer(ledger models.SquadLedger, player models.Player) (models.SquadLedger, error) {
	if !ledger.Has(player.ID) {
		return ledger, fmt.Errorf("%w: %s", ErrNotInSquad, player.ID)
	}

	next := cloneLedger(ledger)
	kept := make([]string, 0, len(next.PlayerIDs))
	for _, id := range next.PlayerIDs {
		if id != player.ID {
			kept = append(kept, id)
		}
	}
	next.PlayerIDs = kept
	next.Budget = next.Budget.Add(player.Price)

	if next.CaptainID != nil && *next.CaptainID == player.ID {
		next.CaptainID = nil
	}
	if next.ViceCaptainID != nil && *next.ViceCaptainID == player.ID {
		next.ViceCaptainID = nil
	}

	r.consumeTransfer(&next)
	return next, nil
}

func (r Rules) SetCaptain(ledger models.SquadLedger, playerID string) (models.SquadLedger, error) {
	if !ledger.Has(playerID) {
		return ledger, fmt.Errorf("%w: %s", ErrNotInSquad, playerID)
	}
	next := cloneLedger(ledger)
	id := playerID
	next.CaptainID = &id
	if next.ViceCaptainID != nil && *next.ViceCaptainID == playerID {
		next.ViceCaptainID = nil
	}
	return next, nil
}

func (r Rules) SetViceCaptain(ledger models.SquadLedger, playerID string) (models.SquadLedger, error) {
	if !ledger.Has(playerID) {
		return ledger, fmt.Errorf("%w: %s", ErrNotInSquad, playerID)
	}
	next := cloneLedger(ledger)
	id := playerID
	next.ViceCaptainID = &id
	if next.CaptainID != nil && *next.CaptainID == playerID {
		next.CaptainID = nil
	}
	return next, nil
}

// ReconcileGameweek переводит состав на тур gameweek: сбрасывает бесплатные
// трансферы, счётчик трансферов и штрафы. Повторный вызов с тем же туром ничего не меняет.
func (r Rules) ReconcileGameweek(ledger models.SquadLedger, gameweek int) (models.SquadLedger, bool) {
	if ledger.CurrentGameweek == gameweek {
		return ledger, false
	}
	next := cloneLedger(ledger)
	next.CurrentGameweek = gameweek
	next.FreeTransfers = r.FreeTransfersPerGameweek
	next.TransfersMadeThisGameweek = 0
	next.PointsDeductions = 0
	return next, true
}

func (r Rules) consumeTransfer(l *models.SquadLedger) {
	if l.FreeTransfers > 0 {
		l.FreeTransfers--
	} else {
		l.PointsDeductions += r.TransferPenalty
	}
	l.TransfersMadeThisGameweek++
}

func cloneLedger(l models.SquadLedger) models.SquadLedger {
	next := l
	next.PlayerIDs = append(make([]string, 0, len(l.PlayerIDs)+1), l.PlayerIDs...)
	if l.CaptainID != nil {
		c := *l.CaptainID
		next.CaptainID = &c
	}
	if l.ViceCaptainID != nil {
		v := *l.ViceCaptainID
		next.ViceCaptainID = &v
	}
	return next
}
