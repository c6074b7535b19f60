package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Player struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Team         string          `json:"team" db:"team"`
	Position     *string         `json:"position,omitempty" db:"position"`
	JerseyNumber *int            `json:"jersey_number,omitempty" db:"jersey_number"`
	ImageHint    *string         `json:"image_hint,omitempty" db:"image_hint"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Points       int             `json:"points" db:"points"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"-"`
}
