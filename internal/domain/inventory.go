package domain

// InventoryEntry tracks how many units of a part a team owns and how many of
// those are currently installed on its cars.
// Invariant: QuantityOwned >= QuantityInstalled >= 0.
type InventoryEntry struct {
	TeamID            uint `json:"team_id"`
	PartID            uint `json:"part_id"`
	QuantityOwned     int  `json:"quantity_owned"`
	QuantityInstalled int  `json:"quantity_installed"`
}

func (e InventoryEntry) QuantityAvailable() int {
	return e.QuantityOwned - e.QuantityInstalled
}

// PartWithStock is the team inventory view: a catalog part together with the
// team's stock counts for it.
type PartWithStock struct {
	Part              Part `json:"part"`
	QuantityOwned     int  `json:"quantity_owned"`
	QuantityInstalled int  `json:"quantity_installed"`
	QuantityAvailable int  `json:"quantity_available"`
}
