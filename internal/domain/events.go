package domain

import "time"

// Contribution is an immutable sponsor funding event. It only ever increases
// a team's total budget.
type Contribution struct {
	ID          uint      `json:"id"`
	SponsorID   uint      `json:"sponsor_id"`
	TeamID      uint      `json:"team_id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PurchaseRecord is an immutable purchase event, priced at purchase time.
type PurchaseRecord struct {
	ID        uint      `json:"id"`
	TeamID    uint      `json:"team_id"`
	PartID    uint      `json:"part_id"`
	UserID    uint      `json:"user_id"`
	UnitPrice int64     `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseResult is what the purchase coordinator returns for client display.
type PurchaseResult struct {
	TeamID          uint  `json:"team_id"`
	PartID          uint  `json:"part_id"`
	AvailableBudget int64 `json:"available_budget"`
	StoreStock      int   `json:"store_stock"`
}
