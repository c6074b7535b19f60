package fantasy

import (
	"sort"

	"github.com/Dosada05/botola-fantasy/models"
)

// Catalog - неизменяемый снимок всех игроков, доступных для выбора.
type Catalog struct {
	byID  map[string]models.Player
	order []string
}

func NewCatalog(players []models.Player) Catalog {
	c := Catalog{
		byID:  make(map[string]models.Player, len(players)),
		order: make([]string, 0, len(players)),
	}
	for _, p := range players {
		if _, dup := c.byID[p.ID]; !dup {
			c.order = append(c.order, p.ID)
		}
		c.byID[p.ID] = p
	}
	return c
}

func (c Catalog) Lookup(id string) (models.Player, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c Catalog) Len() int { return len(c.order) }

// Players возвращает игроков, отсортированных по команде и имени.
func (c Catalog) Players() []models.Player {
	out := make([]models.Player, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Resolve возвращает известных каталогу игроков из списка ids, сохраняя порядок.
func (c Catalog) Resolve(ids []string) []models.Player {
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
