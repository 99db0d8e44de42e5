package domain

import (
	"errors"
	"time"
)

// Category is one of the five car subsystems a part can belong to. A car
// needs one part in every category before it is race ready.
type Category string

const (
	CategoryPowerUnit    Category = "power_unit"
	CategoryAerodynamics Category = "aerodynamics"
	CategoryWheels       Category = "wheels"
	CategorySuspension   Category = "suspension"
	CategoryGearbox      Category = "gearbox"
)

var ErrUnknownCategory = errors.New("unknown part category")

// Categories returns all five categories in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryPowerUnit,
		CategoryAerodynamics,
		CategoryWheels,
		CategorySuspension,
		CategoryGearbox,
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}

	return "", ErrUnknownCategory
}

type Part struct {
	ID         uint      `json:"id"`
	Category   Category  `json:"category"`
	Price      int64     `json:"price"`
	Power      int       `json:"power"`
	Aero       int       `json:"aero"`
	Maneuver   int       `json:"maneuver"`
	StoreStock int       `json:"store_stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks the catalog rules: positive price and stats within 0..9.
func (p Part) Validate() error {
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}
	if p.Price <= 0 {
		return errors.New("part price must be positive")
	}
	for _, stat := range []int{p.Power, p.Aero, p.Maneuver} {
		if stat < 0 || stat > 9 {
			return errors.New("part stats must be between 0 and 9")
		}
	}

	return nil
}
