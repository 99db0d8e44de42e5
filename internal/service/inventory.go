package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

var ErrInsufficientStock = repository.ErrInsufficientStock

type InventoryRepository interface {
	GetTeamInventory(ctx context.Context, teamID uint) ([]domain.PartWithStock, error)
	GetEntry(ctx context.Context, teamID, partID uint) (domain.InventoryEntry, error)
}

type InventoryService struct {
	repo InventoryRepository
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// GetAvailableParts lists the team's owned parts with their stock counts.
func (s *InventoryService) GetAvailableParts(ctx context.Context, user domain.User, teamID uint) ([]domain.PartWithStock, error) {
	if !user.CanActFor(teamID) {
		return nil, ErrWrongTeam
	}

	stocks, err := s.repo.GetTeamInventory(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetTeamInventory -> %w", err)
	}

	return stocks, nil
}
