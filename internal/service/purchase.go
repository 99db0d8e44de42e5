package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

type PurchaseRepository interface {
	Execute(ctx context.Context, teamID, partID, userID uint) (domain.PurchaseResult, error)
	GetTeamPurchases(ctx context.Context, teamID uint) ([]domain.PurchaseRecord, error)
}

// PurchaseService coordinates a single purchase: it validates funds and
// store stock up front, then delegates to the one-transaction execution where
// the same checks are enforced again under the row guards.
type PurchaseService struct {
	repo        PurchaseRepository
	catalogRepo CatalogRepository
	ledgerRepo  LedgerRepository
}

func NewPurchaseService(repo PurchaseRepository, catalogRepo CatalogRepository, ledgerRepo LedgerRepository) *PurchaseService {
	return &PurchaseService{
		repo:        repo,
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *PurchaseService) Purchase(ctx context.Context, user domain.User, teamID, partID uint) (domain.PurchaseResult, error) {
	if !user.CanActFor(teamID) {
		return domain.PurchaseResult{}, ErrWrongTeam
	}

	part, err := s.catalogRepo.GetByID(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return domain.PurchaseResult{}, ErrPartNotFound
		}

		return domain.PurchaseResult{}, fmt.Errorf("s.catalogRepo.GetByID -> %w", err)
	}

	if part.StoreStock <= 0 {
		return domain.PurchaseResult{}, ErrOutOfStock
	}

	team, err := s.ledgerRepo.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return domain.PurchaseResult{}, ErrTeamNotFound
		}

		return domain.PurchaseResult{}, fmt.Errorf("s.ledgerRepo.GetTeam -> %w", err)
	}

	if part.Price > team.Available() {
		return domain.PurchaseResult{}, ErrInsufficientFunds
	}

	result, err := s.repo.Execute(ctx, teamID, partID, user.ID)
	if err != nil {
		// The transaction re-checks under row guards; map its rejections the
		// same way the pre-checks do.
		switch {
		case errors.Is(err, repository.ErrOutOfStock):
			return domain.PurchaseResult{}, ErrOutOfStock
		case errors.Is(err, repository.ErrInsufficientFunds):
			return domain.PurchaseResult{}, ErrInsufficientFunds
		case errors.Is(err, repository.ErrPartNotFound):
			return domain.PurchaseResult{}, ErrPartNotFound
		case errors.Is(err, repository.ErrTeamNotFound):
			return domain.PurchaseResult{}, ErrTeamNotFound
		}

		return domain.PurchaseResult{}, fmt.Errorf("s.repo.Execute -> %w", err)
	}

	return result, nil
}

func (s *PurchaseService) GetTeamPurchases(ctx context.Context, user domain.User, teamID uint) ([]domain.PurchaseRecord, error) {
	if !user.CanActFor(teamID) {
		return nil, ErrWrongTeam
	}

	records, err := s.repo.GetTeamPurchases(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetTeamPurchases -> %w", err)
	}

	return records, nil
}
