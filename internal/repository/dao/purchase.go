package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PurchaseRecord rows are append-only; they are never updated or deleted.
type PurchaseRecord struct {
	ID        uint  `gorm:"primaryKey"`
	TeamID    uint  `gorm:"not null;index"`
	PartID    uint  `gorm:"not null;index"`
	UserID    uint  `gorm:"not null"`
	UnitPrice int64 `gorm:"not null"`
	CreatedAt time.Time
}

type PurchaseDAO struct {
	db *gorm.DB
}

func NewPurchaseDAO(db *gorm.DB) *PurchaseDAO {
	return &PurchaseDAO{
		db: db,
	}
}

// PurchaseOutcome is read back at the end of the purchase transaction for
// client display.
type PurchaseOutcome struct {
	AvailableBudget int64
	StoreStock      int
}

// Execute runs the whole purchase as one transaction: strict store-stock
// decrement, guarded budget debit, inventory credit and the purchase record.
// Any rejected step rolls the others back, so a failed purchase leaves
// ledger and inventory unchanged.
func (d *PurchaseDAO) Execute(ctx context.Context, teamID, partID, userID uint) (PurchaseOutcome, error) {
	var outcome PurchaseOutcome

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var part Part
		if err := tx.First(&part, partID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartNotFound
			}
			return err
		}

		if err := TakeFromStore(tx, partID); err != nil {
			return err
		}

		if err := DebitPurchase(tx, teamID, part.Price); err != nil {
			return err
		}

		if err := CreditInventory(tx, teamID, partID); err != nil {
			return err
		}

		record := PurchaseRecord{
			TeamID:    teamID,
			PartID:    partID,
			UserID:    userID,
			UnitPrice: part.Price,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		var team Team
		if err := tx.First(&team, teamID).Error; err != nil {
			return err
		}
		var updated Part
		if err := tx.First(&updated, partID).Error; err != nil {
			return err
		}

		outcome = PurchaseOutcome{
			AvailableBudget: team.TotalBudget - team.TotalSpent,
			StoreStock:      updated.StoreStock,
		}

		return nil
	})
	if err != nil {
		return PurchaseOutcome{}, err
	}

	return outcome, nil
}

func (d *PurchaseDAO) FindByTeamID(ctx context.Context, teamID uint) ([]PurchaseRecord, error) {
	var records []PurchaseRecord

	result := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}
