package repositories

import (
	"context"
	"testing"

	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	users := NewPostgresUserRepository(testDB.DB)
	ledgers := NewPostgresLedgerRepository(testDB.DB)
	tx := NewPostgresTransactor(testDB.DB)

	user := testutil.CreateTestUser("ledger@botola.ma")
	require.NoError(t, users.Create(ctx, nil, user))

	t.Run("missing ledger", func(t *testing.T) {
		_, err := ledgers.GetByUserID(ctx, nil, user.ID)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		captain := "p1"
		ledger := &models.SquadLedger{
			UserID:                    user.ID,
			PlayerIDs:                 []string{"p1", "p2"},
			CaptainID:                 &captain,
			Budget:                    decimal.RequireFromString("91.5"),
			CurrentGameweek:           3,
			FreeTransfers:             0,
			TransfersMadeThisGameweek: 2,
			PointsDeductions:          4,
		}
		require.NoError(t, ledgers.Save(ctx, nil, ledger))
		assert.False(t, ledger.UpdatedAt.IsZero())

		got, err := ledgers.GetByUserID(ctx, nil, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, got.PlayerIDs)
		require.NotNil(t, got.CaptainID)
		assert.Equal(t, "p1", *got.CaptainID)
		assert.Nil(t, got.ViceCaptainID)
		assert.True(t, decimal.RequireFromString("91.5").Equal(got.Budget))
		assert.Equal(t, 3, got.CurrentGameweek)
		assert.Equal(t, 2, got.TransfersMadeThisGameweek)
		assert.Equal(t, 4, got.PointsDeductions)
	})

	t.Run("save inside transaction with lock", func(t *testing.T) {
		err := tx.WithinTx(ctx, func(exec SQLExecutor) error {
			l, err := ledgers.GetForUpdate(ctx, exec, user.ID)
			if err != nil {
				return err
			}
			l.PlayerIDs = []string{}
			l.CaptainID = nil
			return ledgers.Save(ctx, exec, l)
		})
		require.NoError(t, err)

		got, err := ledgers.GetByUserID(ctx, nil, user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PlayerIDs)
		assert.Nil(t, got.CaptainID)
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		err := ledgers.Save(ctx, nil, &models.SquadLedger{UserID: "nobody", Budget: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
