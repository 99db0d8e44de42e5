package domain

import "time"

type Car struct {
	ID        uint      `json:"id"`
	TeamID    uint      `json:"team_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PartSummary is the view of an installed part returned with a car
// configuration.
type PartSummary struct {
	PartID   uint     `json:"part_id"`
	Category Category `json:"category"`
	Power    int      `json:"power"`
	Aero     int      `json:"aero"`
	Maneuver int      `json:"maneuver"`
}

// Configuration maps each occupied category to the part installed in it.
// Absent categories are empty.
type Configuration map[Category]PartSummary

// PerformanceStats is the snapshot consumed by the race simulation. Ready is
// derived, never stored: a car is ready once all five categories are
// installed.
type PerformanceStats struct {
	CarID          uint `json:"car_id"`
	Power          int  `json:"power"`
	Aero           int  `json:"aero"`
	Maneuver       int  `json:"maneuver"`
	Total          int  `json:"total"`
	InstalledCount int  `json:"installed_count"`
	Ready          bool `json:"ready"`
}

func (c Configuration) Stats(carID uint) PerformanceStats {
	stats := PerformanceStats{CarID: carID}
	for _, p := range c {
		stats.Power += p.Power
		stats.Aero += p.Aero
		stats.Maneuver += p.Maneuver
		stats.InstalledCount++
	}
	stats.Total = stats.Power + stats.Aero + stats.Maneuver
	stats.Ready = stats.InstalledCount == len(Categories())

	return stats
}
