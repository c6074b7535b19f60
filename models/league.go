package models

import "time"

type League struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	CreatorID string    `json:"creator_id" db:"creator_id"`
	Members   []string  `json:"members" db:"members"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (l *League) IsMember(userID string) bool {
	for _, m := range l.Members {
		if m == userID {
			return true
		}
	}
	return false
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Label  string `json:"label"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

type Leaderboard struct {
	League  League             `json:"league"`
	Entries []LeaderboardEntry `json:"entries"`
}
