package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type squadFixture struct {
	tx        *MockTransactor
	ledgers   *MockLedgerRepository
	players   *MockPlayerRepository
	gameweeks *MockGameweekRepository
	service   SquadService
}

func newSquadFixture(catalog []models.Player) *squadFixture {
	f := &squadFixture{
		tx:        &MockTransactor{},
		ledgers:   new(MockLedgerRepository),
		players:   new(MockPlayerRepository),
		gameweeks: new(MockGameweekRepository),
	}
	f.service = NewSquadService(f.tx, f.ledgers, f.players, f.gameweeks, stubCatalog{players: catalog}, fantasy.DefaultRules(), testLogger())
	return f
}

func TestSquadService_AddPlayer(t *testing.T) {
	ctx := context.Background()
	p1 := models.Player{ID: "p1", Name: "Rahimi", Team: "Raja", Price: decimal.RequireFromString("9.5"), Points: 12}

	t.Run("reconciles stale ledger before applying the rule", func(t *testing.T) {
		f := newSquadFixture([]models.Player{p1})
		stale := fantasy.DefaultRules().NewLedger("u1", 2)
		stale.FreeTransfers = 0
		stale.PointsDeductions = 8

		f.gameweeks.On("Current", ctx).Return(3, nil)
		f.players.On("GetByID", ctx, "p1").Return(&p1, nil)
		f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&stale, nil)
		f.ledgers.On("Save", ctx, mock.Anything, mock.AnythingOfType("*models.SquadLedger")).Return(nil)

		ledger, err := f.service.AddPlayer(ctx, "u1", "p1")
		require.NoError(t, err)

		assert.Equal(t, 3, ledger.CurrentGameweek)
		assert.Equal(t, []string{"p1"}, ledger.PlayerIDs)
		assert.Equal(t, 0, ledger.FreeTransfers)
		assert.Equal(t, 0, ledger.PointsDeductions)
		assert.Equal(t, 1, ledger.TransfersMadeThisGameweek)
		assert.True(t, decimal.RequireFromString("90.5").Equal(ledger.Budget))
		assert.Equal(t, 1, f.tx.Calls)

		saved := f.ledgers.Calls[1].Arguments.Get(2).(*models.SquadLedger)
		assert.Equal(t, ledger.PlayerIDs, saved.PlayerIDs)
		f.ledgers.AssertExpectations(t)
	})

	t.Run("creates ledger with defaults on first access", func(t *testing.T) {
		f := newSquadFixture([]models.Player{p1})
		f.gameweeks.On("Current", ctx).Return(5, nil)
		f.players.On("GetByID", ctx, "p1").Return(&p1, nil)
		f.ledgers.On("GetForUpdate", ctx, mock.Anything, "new").Return(nil, repositories.ErrLedgerNotFound)
		f.ledgers.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)

		ledger, err := f.service.AddPlayer(ctx, "new", "p1")
		require.NoError(t, err)
		assert.Equal(t, "new", ledger.UserID)
		assert.Equal(t, 5, ledger.CurrentGameweek)
		assert.Equal(t, 0, ledger.FreeTransfers)
	})

	t.Run("rule rejection does not save", func(t *testing.T) {
		f := newSquadFixture([]models.Player{p1})
		owned := fantasy.DefaultRules().NewLedger("u1", 1)
		owned.PlayerIDs = []string{"p1"}

		f.gameweeks.On("Current", ctx).Return(1, nil)
		f.players.On("GetByID", ctx, "p1").Return(&p1, nil)
		f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&owned, nil)

		_, err := f.service.AddPlayer(ctx, "u1", "p1")
		assert.ErrorIs(t, err, ErrAlreadyOwned)
		f.ledgers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown player", func(t *testing.T) {
		f := newSquadFixture(nil)
		f.players.On("GetByID", ctx, "ghost").Return(nil, repositories.ErrPlayerNotFound)

		_, err := f.service.AddPlayer(ctx, "u1", "ghost")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Equal(t, 0, f.tx.Calls)
	})

	t.Run("empty player id", func(t *testing.T) {
		f := newSquadFixture(nil)
		_, err := f.service.AddPlayer(ctx, "u1", "")
		assert.ErrorIs(t, err, ErrPlayerIDRequired)
	})
}

func TestSquadService_SellPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("player removed from catalog can still be sold", func(t *testing.T) {
		f := newSquadFixture(nil)
		ledger := fantasy.DefaultRules().NewLedger("u1", 1)
		ledger.PlayerIDs = []string{"gone", "p2"}
		ledger.Budget = decimal.RequireFromString("10.0")

		f.gameweeks.On("Current", ctx).Return(1, nil)
		f.players.On("GetByID", ctx, "gone").Return(nil, repositories.ErrPlayerNotFound)
		f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&ledger, nil)
		f.ledgers.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)

		got, err := f.service.SellPlayer(ctx, "u1", "gone")
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, got.PlayerIDs)
		assert.True(t, decimal.RequireFromString("10.0").Equal(got.Budget))
	})

	t.Run("not in squad", func(t *testing.T) {
		f := newSquadFixture(nil)
		ledger := fantasy.DefaultRules().NewLedger("u1", 1)
		p := models.Player{ID: "p9", Price: decimal.NewFromInt(5)}

		f.gameweeks.On("Current", ctx).Return(1, nil)
		f.players.On("GetByID", ctx, "p9").Return(&p, nil)
		f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&ledger, nil)

		_, err := f.service.SellPlayer(ctx, "u1", "p9")
		assert.ErrorIs(t, err, ErrNotInSquad)
	})
}

func TestSquadService_GetSquadIsReadOnly(t *testing.T) {
	ctx := context.Background()
	catalog := []models.Player{
		{ID: "p1", Points: 10},
		{ID: "p2", Points: 4},
	}
	f := newSquadFixture(catalog)

	captain := "p1"
	ledger := fantasy.DefaultRules().NewLedger("u1", 1)
	ledger.PlayerIDs = []string{"p1", "p2", "stale"}
	ledger.CaptainID = &captain
	ledger.PointsDeductions = 4

	f.gameweeks.On("Current", ctx).Return(2, nil)
	f.ledgers.On("GetByUserID", ctx, mock.Anything, "u1").Return(&ledger, nil)

	view, err := f.service.GetSquad(ctx, "u1")
	require.NoError(t, err)

	assert.True(t, view.NeedsReconcile)
	assert.Equal(t, 1, view.Ledger.CurrentGameweek)
	assert.Equal(t, 4, view.Ledger.PointsDeductions)
	assert.Equal(t, 20, view.Score)
	assert.Len(t, view.Players, 2)
	assert.Equal(t, 0, f.tx.Calls)
	f.ledgers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSquadService_ReconcileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSquadFixture(nil)

	stored := fantasy.DefaultRules().NewLedger("u1", 1)
	stored.FreeTransfers = 0
	stored.TransfersMadeThisGameweek = 2
	stored.PointsDeductions = 4

	f.gameweeks.On("Current", ctx).Return(2, nil)
	f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&stored, nil).Once()
	f.ledgers.On("Save", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = *args.Get(2).(*models.SquadLedger)
	}).Return(nil)

	first, err := f.service.Reconcile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, first.CurrentGameweek)
	assert.Equal(t, 1, first.FreeTransfers)
	assert.Equal(t, 0, first.PointsDeductions)

	f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&stored, nil).Once()
	second, err := f.service.Reconcile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
}

func TestSquadService_CaptaincyAndScore(t *testing.T) {
	ctx := context.Background()
	f := newSquadFixture([]models.Player{{ID: "p1", Points: 10}, {ID: "p2", Points: 4}})

	ledger := fantasy.DefaultRules().NewLedger("u1", 1)
	ledger.PlayerIDs = []string{"p1", "p2"}

	f.gameweeks.On("Current", ctx).Return(1, nil)
	f.ledgers.On("GetForUpdate", ctx, mock.Anything, "u1").Return(&ledger, nil)
	f.ledgers.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)

	got, err := f.service.SetCaptain(ctx, "u1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", *got.CaptainID)

	got, err = f.service.SetViceCaptain(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", *got.ViceCaptainID)

	_, err = f.service.SetCaptain(ctx, "u1", "p9")
	assert.ErrorIs(t, err, ErrNotInSquad)

	captain := "p2"
	scored := ledger
	scored.CaptainID = &captain
	f.ledgers.On("GetByUserID", ctx, mock.Anything, "u1").Return(&scored, nil)
	score, err := f.service.Score(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 18, score)

	f.ledgers.On("GetByUserID", ctx, mock.Anything, "nobody").Return(nil, repositories.ErrLedgerNotFound)
	score, err = f.service.Score(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}
