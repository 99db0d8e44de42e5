package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
)

type PurchaseDAO interface {
	Execute(ctx context.Context, teamID, partID, userID uint) (dao.PurchaseOutcome, error)
	FindByTeamID(ctx context.Context, teamID uint) ([]dao.PurchaseRecord, error)
}

type PurchaseRepository struct {
	dao PurchaseDAO
}

func NewPurchaseRepository(dao PurchaseDAO) *PurchaseRepository {
	return &PurchaseRepository{
		dao: dao,
	}
}

// Execute runs the atomic purchase transaction and maps its outcome.
func (r *PurchaseRepository) Execute(ctx context.Context, teamID, partID, userID uint) (domain.PurchaseResult, error) {
	outcome, err := r.dao.Execute(ctx, teamID, partID, userID)
	if err != nil {
		return domain.PurchaseResult{}, fmt.Errorf("r.dao.Execute -> %w", err)
	}

	return domain.PurchaseResult{
		TeamID:          teamID,
		PartID:          partID,
		AvailableBudget: outcome.AvailableBudget,
		StoreStock:      outcome.StoreStock,
	}, nil
}

func (r *PurchaseRepository) GetTeamPurchases(ctx context.Context, teamID uint) ([]domain.PurchaseRecord, error) {
	recordDAOs, err := r.dao.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeamID -> %w", err)
	}

	records := make([]domain.PurchaseRecord, len(recordDAOs))
	for i, rec := range recordDAOs {
		records[i] = domain.PurchaseRecord{
			ID:        rec.ID,
			TeamID:    rec.TeamID,
			PartID:    rec.PartID,
			UserID:    rec.UserID,
			UnitPrice: rec.UnitPrice,
			CreatedAt: rec.CreatedAt,
		}
	}

	return records, nil
}
