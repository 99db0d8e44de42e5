package domain

// InstallCheck is the advisory result of a pre-install validation. It never
// reflects a reservation; installing can still fail if stock changes in
// between.
type InstallCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
