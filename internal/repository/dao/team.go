package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrSponsorNotFound   = errors.New("sponsor not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Team carries the ledger columns directly: total_budget only grows through
// contributions, total_spent only grows through purchases, and
// available = total_budget - total_spent is derived.
type Team struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	TotalBudget int64  `gorm:"not null;default:0"`
	TotalSpent  int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Sponsor struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"unique;not null"`
	CreatedAt time.Time
}

// Contribution rows are append-only; they are never updated or deleted.
type Contribution struct {
	ID          uint  `gorm:"primaryKey"`
	SponsorID   uint  `gorm:"not null;index"`
	TeamID      uint  `gorm:"not null;index"`
	Amount      int64 `gorm:"not null"`
	Description string
	CreatedAt   time.Time
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

// Insert creates the team together with its initial cars in one transaction.
func (d *TeamDAO) Insert(ctx context.Context, team Team, carNames []string) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		for _, name := range carNames {
			car := Car{TeamID: team.ID, Name: name}
			if err := tx.Create(&car).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Team{}, err
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) InsertSponsor(ctx context.Context, sponsor Sponsor) (Sponsor, error) {
	result := d.db.WithContext(ctx).Create(&sponsor)
	if result.Error != nil {
		return Sponsor{}, result.Error
	}

	return sponsor, nil
}

func (d *TeamDAO) FindSponsorByID(ctx context.Context, id uint) (Sponsor, error) {
	var sponsor Sponsor

	result := d.db.WithContext(ctx).First(&sponsor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sponsor{}, ErrSponsorNotFound
		}

		return Sponsor{}, result.Error
	}

	return sponsor, nil
}

// InsertContribution persists the contribution event and credits the team's
// budget in the same transaction. Returns the team as of after the credit.
func (d *TeamDAO) InsertContribution(ctx context.Context, contribution Contribution) (Team, error) {
	var team Team

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&Sponsor{}, contribution.SponsorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSponsorNotFound
			}
			return err
		}

		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		result := tx.Model(&Team{}).
			Where("id = ?", contribution.TeamID).
			UpdateColumn("total_budget", gorm.Expr("total_budget + ?", contribution.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTeamNotFound
		}

		return tx.First(&team, contribution.TeamID).Error
	})
	if err != nil {
		return Team{}, err
	}

	return team, nil
}

// DebitPurchase increases total_spent by amount, guarded so the available
// budget can never go negative. Must only run inside the purchase
// transaction; tx is the enclosing transaction handle.
func DebitPurchase(tx *gorm.DB, teamID uint, amount int64) error {
	result := tx.Model(&Team{}).
		Where("id = ? AND total_budget - total_spent >= ?", teamID, amount).
		UpdateColumn("total_spent", gorm.Expr("total_spent + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var team Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("tx.First team -> %w", err)
		}
		return ErrInsufficientFunds
	}

	return nil
}

func (d *TeamDAO) FindContributionsByTeamID(ctx context.Context, teamID uint) ([]Contribution, error) {
	var contributions []Contribution

	result := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}

	return contributions, nil
}
