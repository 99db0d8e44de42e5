package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

var (
	ErrPartNotFound = repository.ErrPartNotFound
	ErrPartInUse    = repository.ErrPartInUse
	ErrOutOfStock   = repository.ErrOutOfStock
	ErrValidation   = errors.New("validation failed")
)

type CatalogRepository interface {
	Create(ctx context.Context, part domain.Part) (domain.Part, error)
	GetByID(ctx context.Context, partID uint) (domain.Part, error)
	GetAll(ctx context.Context) ([]domain.Part, error)
	Update(ctx context.Context, part domain.Part) (domain.Part, error)
	Restock(ctx context.Context, partID uint, quantity int) (domain.Part, error)
	Delete(ctx context.Context, partID uint) error
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) GetPart(ctx context.Context, partID uint) (domain.Part, error) {
	part, err := s.repo.GetByID(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return domain.Part{}, ErrPartNotFound
		}

		return domain.Part{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return part, nil
}

func (s *CatalogService) ListParts(ctx context.Context) ([]domain.Part, error) {
	parts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return parts, nil
}

func (s *CatalogService) CreatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	if err := part.Validate(); err != nil {
		return domain.Part{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	created, err := s.repo.Create(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdatePart applies administrative price/stat edits; the category stays as
// created.
func (s *CatalogService) UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error) {
	existing, err := s.GetPart(ctx, part.ID)
	if err != nil {
		return domain.Part{}, err
	}

	part.Category = existing.Category
	if err = part.Validate(); err != nil {
		return domain.Part{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	updated, err := s.repo.Update(ctx, part)
	if err != nil {
		return domain.Part{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) RestockPart(ctx context.Context, partID uint, quantity int) (domain.Part, error) {
	if quantity <= 0 {
		return domain.Part{}, fmt.Errorf("%w: restock quantity must be positive", ErrValidation)
	}

	restocked, err := s.repo.Restock(ctx, partID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return domain.Part{}, ErrPartNotFound
		}

		return domain.Part{}, fmt.Errorf("s.repo.Restock -> %w", err)
	}

	return restocked, nil
}

func (s *CatalogService) DeletePart(ctx context.Context, partID uint) error {
	err := s.repo.Delete(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrPartInUse) {
			return ErrPartInUse
		}
		if errors.Is(err, repository.ErrPartNotFound) {
			return ErrPartNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
