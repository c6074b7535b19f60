package fantasy

import (
	"sort"

	"github.com/Dosada05/botola-fantasy/models"
)

const UnknownLabel = "unknown"

// ComputeLeaderboard строит таблицу лиги. Участник без состава получает 0 очков
// и метку "unknown". При равенстве очков сохраняется порядок вступления, места не делятся.
func ComputeLeaderboard(league models.League, ledgers map[string]models.SquadLedger, labels map[string]string, catalog Catalog) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(league.Members))
	for _, memberID := range league.Members {
		ledger, ok := ledgers[memberID]
		if !ok {
			entries = append(entries, models.LeaderboardEntry{UserID: memberID, Label: UnknownLabel})
			continue
		}
		label, ok := labels[memberID]
		if !ok || label == "" {
			label = memberID
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID: memberID,
			Label:  label,
			Score:  ComputeScore(ledger.PlayerIDs, ledger.CaptainID, ledger.PointsDeductions, catalog),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
