package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCarNotFound      = errors.New("car not found")
	ErrCategoryOccupied = errors.New("category already holds a part")
	ErrPartNotInstalled = errors.New("part is not installed on the car")
)

type Car struct {
	ID        uint   `gorm:"primaryKey"`
	TeamID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

// CarPart holds at most one part per (car, category); the unique index backs
// the occupancy invariant even under concurrent installs.
type CarPart struct {
	ID       uint   `gorm:"primaryKey"`
	CarID    uint   `gorm:"not null;uniqueIndex:idx_car_category"`
	Category string `gorm:"not null;uniqueIndex:idx_car_category"`
	PartID   uint   `gorm:"not null;index"`
}

type CarDAO struct {
	db *gorm.DB
}

func NewCarDAO(db *gorm.DB) *CarDAO {
	return &CarDAO{
		db: db,
	}
}

func (d *CarDAO) FindByID(ctx context.Context, id uint) (Car, error) {
	var car Car

	result := d.db.WithContext(ctx).First(&car, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Car{}, ErrCarNotFound
		}

		return Car{}, result.Error
	}

	return car, nil
}

func (d *CarDAO) FindByTeamID(ctx context.Context, teamID uint) ([]Car, error) {
	var cars []Car

	result := d.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id").Find(&cars)
	if result.Error != nil {
		return nil, result.Error
	}

	return cars, nil
}

// InstalledPart is a configuration row joined with its catalog part.
type InstalledPart struct {
	CarPart CarPart
	Part    Part
}

func (d *CarDAO) FindConfiguration(ctx context.Context, carID uint) ([]InstalledPart, error) {
	return findConfiguration(d.db.WithContext(ctx), carID)
}

func findConfiguration(tx *gorm.DB, carID uint) ([]InstalledPart, error) {
	var carParts []CarPart
	if err := tx.Where("car_id = ?", carID).Find(&carParts).Error; err != nil {
		return nil, err
	}

	installed := make([]InstalledPart, 0, len(carParts))
	for _, cp := range carParts {
		var part Part
		if err := tx.First(&part, cp.PartID).Error; err != nil {
			return nil, err
		}
		installed = append(installed, InstalledPart{CarPart: cp, Part: part})
	}

	return installed, nil
}

// Install reserves one unit of the team's stock and occupies the category, as
// one transaction. The occupancy check runs before the reservation so a
// rejected install never touches the inventory.
func (d *CarDAO) Install(ctx context.Context, carID, teamID uint, part Part) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing CarPart
		err := tx.Where("car_id = ? AND category = ?", carID, part.Category).
			First(&existing).Error
		if err == nil {
			return ErrCategoryOccupied
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err = ReserveForInstall(tx, teamID, part.ID); err != nil {
			return err
		}

		return tx.Create(&CarPart{
			CarID:    carID,
			Category: part.Category,
			PartID:   part.ID,
		}).Error
	})
}

// Replace swaps the part in a category all-or-nothing: the new part is
// reserved before the old one is released, so a failed reservation leaves the
// old installation and its stock untouched.
func (d *CarDAO) Replace(ctx context.Context, carID, teamID uint, oldPart, newPart Part) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var installed CarPart
		err := tx.Where("car_id = ? AND category = ? AND part_id = ?",
			carID, oldPart.Category, oldPart.ID).
			First(&installed).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartNotInstalled
			}
			return err
		}

		if err = ReserveForInstall(tx, teamID, newPart.ID); err != nil {
			return err
		}

		if err = Release(tx, teamID, oldPart.ID); err != nil {
			return err
		}

		return tx.Model(&CarPart{}).
			Where("id = ?", installed.ID).
			UpdateColumn("part_id", newPart.ID).Error
	})
}

// Uninstall empties the category and returns the unit to the team's stock.
func (d *CarDAO) Uninstall(ctx context.Context, carID, teamID uint, part Part) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("car_id = ? AND category = ? AND part_id = ?",
			carID, part.Category, part.ID).
			Delete(&CarPart{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPartNotInstalled
		}

		return Release(tx, teamID, part.ID)
	})
}

// ReadyCar is a fully configured car with its installed parts.
type ReadyCar struct {
	Car       Car
	Installed []InstalledPart
}

// FindReadyCars returns every car with all five categories installed,
// together with its configuration.
func (d *CarDAO) FindReadyCars(ctx context.Context, categoryCount int) ([]ReadyCar, error) {
	var cars []Car
	if err := d.db.WithContext(ctx).Order("id").Find(&cars).Error; err != nil {
		return nil, err
	}

	ready := make([]ReadyCar, 0)
	for _, car := range cars {
		installed, err := d.FindConfiguration(ctx, car.ID)
		if err != nil {
			return nil, err
		}
		if len(installed) == categoryCount {
			ready = append(ready, ReadyCar{Car: car, Installed: installed})
		}
	}

	return ready, nil
}
