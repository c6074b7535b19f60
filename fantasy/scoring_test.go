package fantasy

import (
	"testing"

	"github.com/Dosada05/botola-fantasy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return NewCatalog([]models.Player{
		player("p1", "5.0", 10),
		player("p2", "3.0", 4),
		player("p3", "4.0", -2),
	})
}

func TestComputeScore(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name       string
		ids        []string
		captain    *string
		deductions int
		expected   int
	}{
		{name: "captain doubled minus deductions", ids: []string{"p1", "p2"}, captain: strPtr("p1"), deductions: 4, expected: 20},
		{name: "no captain", ids: []string{"p1", "p2"}, expected: 14},
		{name: "unknown ids contribute nothing", ids: []string{"p1", "gone"}, captain: strPtr("gone"), expected: 10},
		{name: "negative result", ids: []string{"p3"}, captain: strPtr("p3"), deductions: 8, expected: -12},
		{name: "empty squad", ids: nil, deductions: 4, expected: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeScore(tt.ids, tt.captain, tt.deductions, catalog))
		})
	}
}

func TestComputeScore_ViceCaptainNeverDoubled(t *testing.T) {
	rules := DefaultRules()
	catalog := testCatalog()
	ledger := rules.NewLedger("u1", 1)
	ledger.PlayerIDs = []string{"p1", "p2"}

	ledger, err := rules.SetViceCaptain(ledger, "p1")
	require.NoError(t, err)

	first := ComputeScore(ledger.PlayerIDs, ledger.CaptainID, ledger.PointsDeductions, catalog)
	second := ComputeScore(ledger.PlayerIDs, ledger.CaptainID, ledger.PointsDeductions, catalog)
	assert.Equal(t, 14, first)
	assert.Equal(t, first, second)
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog([]models.Player{
		{ID: "b", Name: "Zouhair", Team: "Wydad"},
		{ID: "a", Name: "Amine", Team: "Wydad"},
		{ID: "c", Name: "Yahya", Team: "AS FAR"},
	})

	assert.Equal(t, 3, catalog.Len())

	p, ok := catalog.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "Amine", p.Name)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)

	players := catalog.Players()
	require.Len(t, players, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{players[0].ID, players[1].ID, players[2].ID})

	resolved := catalog.Resolve([]string{"b", "missing", "c"})
	require.Len(t, resolved, 2)
	assert.Equal(t, "b", resolved[0].ID)
	assert.Equal(t, "c", resolved[1].ID)
}
