package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
)

var (
	ErrCarNotFound      = dao.ErrCarNotFound
	ErrCategoryOccupied = dao.ErrCategoryOccupied
	ErrPartNotInstalled = dao.ErrPartNotInstalled
)

type CarDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Car, error)
	FindByTeamID(ctx context.Context, teamID uint) ([]dao.Car, error)
	FindConfiguration(ctx context.Context, carID uint) ([]dao.InstalledPart, error)
	Install(ctx context.Context, carID, teamID uint, part dao.Part) error
	Replace(ctx context.Context, carID, teamID uint, oldPart, newPart dao.Part) error
	Uninstall(ctx context.Context, carID, teamID uint, part dao.Part) error
	FindReadyCars(ctx context.Context, categoryCount int) ([]dao.ReadyCar, error)
}

type AssemblyRepository struct {
	dao CarDAO
}

func NewAssemblyRepository(dao CarDAO) *AssemblyRepository {
	return &AssemblyRepository{
		dao: dao,
	}
}

func carDaoToDomain(c dao.Car) domain.Car {
	return domain.Car{
		ID:        c.ID,
		TeamID:    c.TeamID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func configurationDaoToDomain(installed []dao.InstalledPart) domain.Configuration {
	configuration := make(domain.Configuration, len(installed))
	for _, ip := range installed {
		configuration[domain.Category(ip.CarPart.Category)] = domain.PartSummary{
			PartID:   ip.Part.ID,
			Category: domain.Category(ip.Part.Category),
			Power:    ip.Part.Power,
			Aero:     ip.Part.Aero,
			Maneuver: ip.Part.Maneuver,
		}
	}

	return configuration
}

func (r *AssemblyRepository) GetCar(ctx context.Context, carID uint) (domain.Car, error) {
	car, err := r.dao.FindByID(ctx, carID)
	if err != nil {
		return domain.Car{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return carDaoToDomain(car), nil
}

func (r *AssemblyRepository) GetTeamCars(ctx context.Context, teamID uint) ([]domain.Car, error) {
	carDAOs, err := r.dao.FindByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeamID -> %w", err)
	}

	cars := make([]domain.Car, len(carDAOs))
	for i, c := range carDAOs {
		cars[i] = carDaoToDomain(c)
	}

	return cars, nil
}

func (r *AssemblyRepository) GetConfiguration(ctx context.Context, carID uint) (domain.Configuration, error) {
	installed, err := r.dao.FindConfiguration(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindConfiguration -> %w", err)
	}

	return configurationDaoToDomain(installed), nil
}

func (r *AssemblyRepository) Install(ctx context.Context, carID, teamID uint, part domain.Part) error {
	if err := r.dao.Install(ctx, carID, teamID, partDomainToDao(part)); err != nil {
		return fmt.Errorf("r.dao.Install -> %w", err)
	}

	return nil
}

func (r *AssemblyRepository) Replace(ctx context.Context, carID, teamID uint, oldPart, newPart domain.Part) error {
	if err := r.dao.Replace(ctx, carID, teamID, partDomainToDao(oldPart), partDomainToDao(newPart)); err != nil {
		return fmt.Errorf("r.dao.Replace -> %w", err)
	}

	return nil
}

func (r *AssemblyRepository) Uninstall(ctx context.Context, carID, teamID uint, part domain.Part) error {
	if err := r.dao.Uninstall(ctx, carID, teamID, partDomainToDao(part)); err != nil {
		return fmt.Errorf("r.dao.Uninstall -> %w", err)
	}

	return nil
}

func (r *AssemblyRepository) GetReadyCars(ctx context.Context) ([]domain.Car, []domain.Configuration, error) {
	ready, err := r.dao.FindReadyCars(ctx, len(domain.Categories()))
	if err != nil {
		return nil, nil, fmt.Errorf("r.dao.FindReadyCars -> %w", err)
	}

	cars := make([]domain.Car, len(ready))
	configurations := make([]domain.Configuration, len(ready))
	for i, rc := range ready {
		cars[i] = carDaoToDomain(rc.Car)
		configurations[i] = configurationDaoToDomain(rc.Installed)
	}

	return cars, configurations, nil
}
