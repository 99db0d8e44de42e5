package domain

// RaceEntry is one roster line fed to the external race simulation: a race
// ready car with its performance snapshot.
type RaceEntry struct {
	Car      Car              `json:"car"`
	TeamName string           `json:"team_name"`
	Stats    PerformanceStats `json:"stats"`
}
