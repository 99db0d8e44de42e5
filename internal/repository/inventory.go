package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
)

var ErrInsufficientStock = dao.ErrInsufficientStock

type InventoryDAO interface {
	FindByTeamID(ctx context.Context, teamID uint) ([]dao.PartWithStock, error)
	FindEntry(ctx context.Context, teamID, partID uint) (dao.InventoryEntry, error)
}

type InventoryRepository struct {
	dao InventoryDAO
}

func NewInventoryRepository(dao InventoryDAO) *InventoryRepository {
	return &InventoryRepository{
		dao: dao,
	}
}

func (r *InventoryRepository) GetTeamInventory(ctx context.Context, teamID uint) ([]domain.PartWithStock, error) {
	stockDAOs, err := r.dao.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeamID -> %w", err)
	}

	stocks := make([]domain.PartWithStock, len(stockDAOs))
	for i, s := range stockDAOs {
		stocks[i] = domain.PartWithStock{
			Part:              partDaoToDomain(s.Part),
			QuantityOwned:     s.QuantityOwned,
			QuantityInstalled: s.QuantityInstalled,
			QuantityAvailable: s.QuantityOwned - s.QuantityInstalled,
		}
	}

	return stocks, nil
}

func (r *InventoryRepository) GetEntry(ctx context.Context, teamID, partID uint) (domain.InventoryEntry, error) {
	entry, err := r.dao.FindEntry(ctx, teamID, partID)
	if err != nil {
		return domain.InventoryEntry{}, fmt.Errorf("r.dao.FindEntry -> %w", err)
	}

	return domain.InventoryEntry{
		TeamID:            entry.TeamID,
		PartID:            entry.PartID,
		QuantityOwned:     entry.QuantityOwned,
		QuantityInstalled: entry.QuantityInstalled,
	}, nil
}
