package domain

import "time"

type Team struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	TotalBudget int64     `json:"total_budget"`
	TotalSpent  int64     `json:"total_spent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available is the budget still spendable by the team.
func (t Team) Available() int64 {
	return t.TotalBudget - t.TotalSpent
}

type Budget struct {
	TeamID      uint  `json:"team_id"`
	TotalBudget int64 `json:"total_budget"`
	TotalSpent  int64 `json:"total_spent"`
	Available   int64 `json:"available"`
}

type Sponsor struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
