package testutil

import (
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func CreateTestUser(email string) *models.User {
	name := "Manager " + email
	return &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  &name,
		Role:         models.RoleManager,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuu8e7sJ0cK3cGqf1m0m8o1yqZ1Z8Wq6fW",
	}
}

func CreateTestPlayer(id, team string, price string) *models.Player {
	return &models.Player{
		ID:    id,
		Name:  "Player " + id,
		Team:  team,
		Price: decimal.RequireFromString(price),
	}
}
