package fantasy

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction   = errors.New("unknown action type")
	ErrActionNotScored = errors.New("action type has no point value")
)

// Action - тип матчевого события.
type Action string

const (
	ActionGoal           Action = "goal"
	ActionAssist         Action = "assist"
	ActionYellowCard     Action = "yellow_card"
	ActionRedCard        Action = "red_card"
	ActionAppearance     Action = "appearance"
	ActionCleanSheetHalf Action = "clean_sheet_half"
	ActionCleanSheetFull Action = "clean_sheet_full"
)

func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionGoal, ActionAssist, ActionYellowCard, ActionRedCard, ActionAppearance,
		ActionCleanSheetHalf, ActionCleanSheetFull:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, s)
	}
}

// Delta возвращает изменение очков игрока за событие.
// Сухие матчи принимаются, но очков пока не имеют.
func (a Action) Delta() (int, error) {
	switch a {
	case ActionGoal:
		return 5, nil
	case ActionAssist:
		return 3, nil
	case ActionYellowCard:
		return -1, nil
	case ActionRedCard:
		return -3, nil
	case ActionAppearance:
		return 1, nil
	case ActionCleanSheetHalf, ActionCleanSheetFull:
		return 0, fmt.Errorf("%w: %s", ErrActionNotScored, a)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
}
