package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPartNotFound = errors.New("part not found")
	ErrPartInUse    = errors.New("part is referenced by an inventory or a car")
	ErrOutOfStock   = errors.New("part is out of stock")
)

// Part is a catalog entry. StoreStock is the catalog-wide counter of units
// still purchasable by any team; it is distinct from per-team inventory and
// only linked to it by the purchase transaction.
type Part struct {
	ID         uint   `gorm:"primaryKey"`
	Category   string `gorm:"not null;index"`
	Price      int64  `gorm:"not null"`
	Power      int    `gorm:"not null"`
	Aero       int    `gorm:"not null"`
	Maneuver   int    `gorm:"not null"`
	StoreStock int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type PartDAO struct {
	db *gorm.DB
}

func NewPartDAO(db *gorm.DB) *PartDAO {
	return &PartDAO{
		db: db,
	}
}

func (d *PartDAO) Insert(ctx context.Context, part Part) (Part, error) {
	result := d.db.WithContext(ctx).Create(&part)
	if result.Error != nil {
		return Part{}, result.Error
	}

	return part, nil
}

func (d *PartDAO) FindByID(ctx context.Context, id uint) (Part, error) {
	var part Part

	result := d.db.WithContext(ctx).First(&part, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Part{}, ErrPartNotFound
		}

		return Part{}, result.Error
	}

	return part, nil
}

func (d *PartDAO) FindAll(ctx context.Context) ([]Part, error) {
	var parts []Part

	result := d.db.WithContext(ctx).Order("id").Find(&parts)
	if result.Error != nil {
		return nil, result.Error
	}

	return parts, nil
}

// Update applies administrative price/stat edits. Category is immutable after
// creation.
func (d *PartDAO) Update(ctx context.Context, part Part) (Part, error) {
	result := d.db.WithContext(ctx).Model(&Part{}).
		Where("id = ?", part.ID).
		Updates(map[string]interface{}{
			"price":    part.Price,
			"power":    part.Power,
			"aero":     part.Aero,
			"maneuver": part.Maneuver,
		})
	if result.Error != nil {
		return Part{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Part{}, ErrPartNotFound
	}

	return d.FindByID(ctx, part.ID)
}

// Restock adds units to the store-wide stock counter.
func (d *PartDAO) Restock(ctx context.Context, partID uint, quantity int) (Part, error) {
	result := d.db.WithContext(ctx).Model(&Part{}).
		Where("id = ?", partID).
		UpdateColumn("store_stock", gorm.Expr("store_stock + ?", quantity))
	if result.Error != nil {
		return Part{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Part{}, ErrPartNotFound
	}

	return d.FindByID(ctx, partID)
}

// Delete removes a catalog part, but only when nothing references it. The
// reference checks run in the delete transaction so a concurrent purchase or
// install cannot slip in between check and delete.
func (d *PartDAO) Delete(ctx context.Context, partID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&InventoryEntry{}).
			Where("part_id = ? AND quantity_owned > 0", partID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPartInUse
		}

		if err := tx.Model(&CarPart{}).
			Where("part_id = ?", partID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPartInUse
		}

		result := tx.Delete(&Part{}, partID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPartNotFound
		}

		return nil
	})
}

// TakeFromStore is the strict store-stock decrement: it only succeeds while
// stock remains, so two concurrent purchases of the last unit cannot both
// pass. tx is the enclosing purchase transaction handle.
func TakeFromStore(tx *gorm.DB, partID uint) error {
	result := tx.Model(&Part{}).
		Where("id = ? AND store_stock > 0", partID).
		UpdateColumn("store_stock", gorm.Expr("store_stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOutOfStock
	}

	return nil
}
