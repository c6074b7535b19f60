package fantasy

// ComputeScore считает очки состава. Неизвестные каталогу игроки дают 0,
// очки капитана удваиваются, вице-капитан на счёт не влияет. Итог может быть отрицательным.
func ComputeScore(playerIDs []string, captainID *string, pointsDeductions int, catalog Catalog) int {
	total := 0
	for _, id := range playerIDs {
		p, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		if captainID != nil && *captainID == id {
			total += p.Points * 2
		} else {
			total += p.Points
		}
	}
	return total - pointsDeductions
}
