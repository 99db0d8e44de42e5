package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryEntry tracks per-(team, part) stock. quantity_owned grows with
// purchases; quantity_installed grows when units go onto cars. Both columns
// are mutated only through guarded updates, keeping
// quantity_owned >= quantity_installed >= 0.
type InventoryEntry struct {
	ID                uint `gorm:"primaryKey"`
	TeamID            uint `gorm:"not null;uniqueIndex:idx_team_part"`
	PartID            uint `gorm:"not null;uniqueIndex:idx_team_part"`
	QuantityOwned     int  `gorm:"not null;default:0"`
	QuantityInstalled int  `gorm:"not null;default:0"`
}

type InventoryDAO struct {
	db *gorm.DB
}

func NewInventoryDAO(db *gorm.DB) *InventoryDAO {
	return &InventoryDAO{
		db: db,
	}
}

// PartWithStock joins an inventory entry with its catalog part.
type PartWithStock struct {
	Part              Part
	QuantityOwned     int
	QuantityInstalled int
}

func (d *InventoryDAO) FindByTeamID(ctx context.Context, teamID uint) ([]PartWithStock, error) {
	var entries []InventoryEntry

	result := d.db.WithContext(ctx).
		Where("team_id = ? AND quantity_owned > 0", teamID).
		Order("part_id").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	stocks := make([]PartWithStock, 0, len(entries))
	for _, entry := range entries {
		var part Part
		if err := d.db.WithContext(ctx).First(&part, entry.PartID).Error; err != nil {
			return nil, err
		}
		stocks = append(stocks, PartWithStock{
			Part:              part,
			QuantityOwned:     entry.QuantityOwned,
			QuantityInstalled: entry.QuantityInstalled,
		})
	}

	return stocks, nil
}

func (d *InventoryDAO) FindEntry(ctx context.Context, teamID, partID uint) (InventoryEntry, error) {
	var entry InventoryEntry

	result := d.db.WithContext(ctx).
		Where("team_id = ? AND part_id = ?", teamID, partID).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// A team that never bought the part owns zero of it.
			return InventoryEntry{TeamID: teamID, PartID: partID}, nil
		}

		return InventoryEntry{}, result.Error
	}

	return entry, nil
}

// CreditInventory adds one owned unit for (team, part), creating the entry on
// first purchase. tx is the enclosing purchase transaction handle.
func CreditInventory(tx *gorm.DB, teamID, partID uint) error {
	entry := InventoryEntry{TeamID: teamID, PartID: partID}
	if err := tx.Where(InventoryEntry{TeamID: teamID, PartID: partID}).
		FirstOrCreate(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&InventoryEntry{}).
		Where("id = ?", entry.ID).
		UpdateColumn("quantity_owned", gorm.Expr("quantity_owned + 1")).Error
}

// ReserveForInstall moves one unit from available to installed, guarded so it
// fails instead of overdrawing the team's stock.
func ReserveForInstall(tx *gorm.DB, teamID, partID uint) error {
	result := tx.Model(&InventoryEntry{}).
		Where("team_id = ? AND part_id = ? AND quantity_owned - quantity_installed > 0", teamID, partID).
		UpdateColumn("quantity_installed", gorm.Expr("quantity_installed + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}

// Release returns one installed unit to the team's available stock.
func Release(tx *gorm.DB, teamID, partID uint) error {
	result := tx.Model(&InventoryEntry{}).
		Where("team_id = ? AND part_id = ? AND quantity_installed > 0", teamID, partID).
		UpdateColumn("quantity_installed", gorm.Expr("quantity_installed - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
