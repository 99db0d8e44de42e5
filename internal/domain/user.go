package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEngineer = "engineer"
	RoleDriver   = "driver"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TeamID    *uint     `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanActFor reports whether the user may operate on the given team's
// resources. Admins bypass team ownership; everyone else is bound to their
// own team.
func (u User) CanActFor(teamID uint) bool {
	if u.Role == RoleAdmin {
		return true
	}

	return u.TeamID != nil && *u.TeamID == teamID
}
