package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
)

var (
	ErrPartNotFound = dao.ErrPartNotFound
	ErrPartInUse    = dao.ErrPartInUse
	ErrOutOfStock   = dao.ErrOutOfStock
)

type PartDAO interface {
	Insert(ctx context.Context, part dao.Part) (dao.Part, error)
	FindByID(ctx context.Context, id uint) (dao.Part, error)
	FindAll(ctx context.Context) ([]dao.Part, error)
	Update(ctx context.Context, part dao.Part) (dao.Part, error)
	Restock(ctx context.Context, partID uint, quantity int) (dao.Part, error)
	Delete(ctx context.Context, partID uint) error
}

type CatalogRepository struct {
	dao PartDAO
}

func NewCatalogRepository(dao PartDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func partDomainToDao(p domain.Part) dao.Part {
	return dao.Part{
		ID:         p.ID,
		Category:   string(p.Category),
		Price:      p.Price,
		Power:      p.Power,
		Aero:       p.Aero,
		Maneuver:   p.Maneuver,
		StoreStock: p.StoreStock,
	}
}

func partDaoToDomain(p dao.Part) domain.Part {
	return domain.Part{
		ID:         p.ID,
		Category:   domain.Category(p.Category),
		Price:      p.Price,
		Power:      p.Power,
		Aero:       p.Aero,
		Maneuver:   p.Maneuver,
		StoreStock: p.StoreStock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *CatalogRepository) Create(ctx context.Context, part domain.Part) (domain.Part, error) {
	created, err := r.dao.Insert(ctx, partDomainToDao(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return partDaoToDomain(created), nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, partID uint) (domain.Part, error) {
	part, err := r.dao.FindByID(ctx, partID)
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return partDaoToDomain(part), nil
}

func (r *CatalogRepository) GetAll(ctx context.Context) ([]domain.Part, error) {
	partDAOs, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	parts := make([]domain.Part, len(partDAOs))
	for i, p := range partDAOs {
		parts[i] = partDaoToDomain(p)
	}

	return parts, nil
}

func (r *CatalogRepository) Update(ctx context.Context, part domain.Part) (domain.Part, error) {
	updated, err := r.dao.Update(ctx, partDomainToDao(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return partDaoToDomain(updated), nil
}

func (r *CatalogRepository) Restock(ctx context.Context, partID uint, quantity int) (domain.Part, error) {
	restocked, err := r.dao.Restock(ctx, partID, quantity)
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.Restock -> %w", err)
	}

	return partDaoToDomain(restocked), nil
}

func (r *CatalogRepository) Delete(ctx context.Context, partID uint) error {
	if err := r.dao.Delete(ctx, partID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
