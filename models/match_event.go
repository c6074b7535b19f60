package models

// PointsUpdate рассылается по websocket после применения матчевого события.
type PointsUpdate struct {
	PlayerID    string `json:"player_id"`
	Action      string `json:"action"`
	PointsAdded int    `json:"points_added"`
	TotalPoints int    `json:"total_points"`
}
