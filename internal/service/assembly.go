package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

var (
	ErrCarNotFound      = repository.ErrCarNotFound
	ErrCategoryOccupied = repository.ErrCategoryOccupied
	ErrPartNotInstalled = repository.ErrPartNotInstalled
	ErrCategoryMismatch = errors.New("replacement part belongs to a different category")
)

type AssemblyRepository interface {
	GetCar(ctx context.Context, carID uint) (domain.Car, error)
	GetTeamCars(ctx context.Context, teamID uint) ([]domain.Car, error)
	GetConfiguration(ctx context.Context, carID uint) (domain.Configuration, error)
	Install(ctx context.Context, carID, teamID uint, part domain.Part) error
	Replace(ctx context.Context, carID, teamID uint, oldPart, newPart domain.Part) error
	Uninstall(ctx context.Context, carID, teamID uint, part domain.Part) error
}

// AssemblyService drives the car configuration state machine: each of the
// five categories is either empty or holds exactly one part, and readiness is
// recomputed from the configuration, never stored.
type AssemblyService struct {
	repo          AssemblyRepository
	catalogRepo   CatalogRepository
	inventoryRepo InventoryRepository
}

func NewAssemblyService(repo AssemblyRepository, catalogRepo CatalogRepository, inventoryRepo InventoryRepository) *AssemblyService {
	return &AssemblyService{
		repo:          repo,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
	}
}

// loadCarForTeam resolves the car and enforces ownership: the car must belong
// to teamID and the caller must be allowed to act for that team.
func (s *AssemblyService) loadCarForTeam(ctx context.Context, user domain.User, carID, teamID uint) (domain.Car, error) {
	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return domain.Car{}, ErrCarNotFound
		}

		return domain.Car{}, fmt.Errorf("s.repo.GetCar -> %w", err)
	}

	if car.TeamID != teamID || !user.CanActFor(car.TeamID) {
		return domain.Car{}, ErrWrongTeam
	}

	return car, nil
}

func (s *AssemblyService) loadPart(ctx context.Context, partID uint) (domain.Part, error) {
	part, err := s.catalogRepo.GetByID(ctx, partID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return domain.Part{}, ErrPartNotFound
		}

		return domain.Part{}, fmt.Errorf("s.catalogRepo.GetByID -> %w", err)
	}

	return part, nil
}

func (s *AssemblyService) Install(ctx context.Context, user domain.User, carID, partID, teamID uint) error {
	car, err := s.loadCarForTeam(ctx, user, carID, teamID)
	if err != nil {
		return err
	}

	part, err := s.loadPart(ctx, partID)
	if err != nil {
		return err
	}

	if err = s.repo.Install(ctx, car.ID, car.TeamID, part); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryOccupied):
			return ErrCategoryOccupied
		case errors.Is(err, repository.ErrInsufficientStock):
			return ErrInsufficientStock
		}

		return fmt.Errorf("s.repo.Install -> %w", err)
	}

	return nil
}

// Replace swaps the installed part of a category for another part of the
// same category, all-or-nothing.
func (s *AssemblyService) Replace(ctx context.Context, user domain.User, carID, oldPartID, newPartID, teamID uint) error {
	car, err := s.loadCarForTeam(ctx, user, carID, teamID)
	if err != nil {
		return err
	}

	oldPart, err := s.loadPart(ctx, oldPartID)
	if err != nil {
		return err
	}

	if oldPartID == newPartID {
		// Swapping a part for itself changes nothing; still verify it is
		// installed so the caller learns about a bogus request.
		configuration, err := s.repo.GetConfiguration(ctx, car.ID)
		if err != nil {
			return fmt.Errorf("s.repo.GetConfiguration -> %w", err)
		}
		if installed, ok := configuration[oldPart.Category]; !ok || installed.PartID != oldPartID {
			return ErrPartNotInstalled
		}

		return nil
	}

	newPart, err := s.loadPart(ctx, newPartID)
	if err != nil {
		return err
	}

	if oldPart.Category != newPart.Category {
		return ErrCategoryMismatch
	}

	if err = s.repo.Replace(ctx, car.ID, car.TeamID, oldPart, newPart); err != nil {
		switch {
		case errors.Is(err, repository.ErrPartNotInstalled):
			return ErrPartNotInstalled
		case errors.Is(err, repository.ErrInsufficientStock):
			return ErrInsufficientStock
		}

		return fmt.Errorf("s.repo.Replace -> %w", err)
	}

	return nil
}

func (s *AssemblyService) Uninstall(ctx context.Context, user domain.User, carID, partID, teamID uint) error {
	car, err := s.loadCarForTeam(ctx, user, carID, teamID)
	if err != nil {
		return err
	}

	part, err := s.loadPart(ctx, partID)
	if err != nil {
		return err
	}

	if err = s.repo.Uninstall(ctx, car.ID, car.TeamID, part); err != nil {
		if errors.Is(err, repository.ErrPartNotInstalled) {
			return ErrPartNotInstalled
		}

		return fmt.Errorf("s.repo.Uninstall -> %w", err)
	}

	return nil
}

// Validate is the advisory pre-install check used by the UI. It mutates
// nothing and holds no reservation.
func (s *AssemblyService) Validate(ctx context.Context, user domain.User, carID, candidatePartID uint) (domain.InstallCheck, error) {
	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return domain.InstallCheck{}, ErrCarNotFound
		}

		return domain.InstallCheck{}, fmt.Errorf("s.repo.GetCar -> %w", err)
	}
	if !user.CanActFor(car.TeamID) {
		return domain.InstallCheck{}, ErrWrongTeam
	}

	part, err := s.catalogRepo.GetByID(ctx, candidatePartID)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return domain.InstallCheck{Valid: false, Message: "part does not exist"}, nil
		}

		return domain.InstallCheck{}, fmt.Errorf("s.catalogRepo.GetByID -> %w", err)
	}

	configuration, err := s.repo.GetConfiguration(ctx, car.ID)
	if err != nil {
		return domain.InstallCheck{}, fmt.Errorf("s.repo.GetConfiguration -> %w", err)
	}
	if _, occupied := configuration[part.Category]; occupied {
		return domain.InstallCheck{
			Valid:   false,
			Message: fmt.Sprintf("category %v already holds a part, use replace", part.Category),
		}, nil
	}

	entry, err := s.inventoryRepo.GetEntry(ctx, car.TeamID, part.ID)
	if err != nil {
		return domain.InstallCheck{}, fmt.Errorf("s.inventoryRepo.GetEntry -> %w", err)
	}
	if entry.QuantityAvailable() <= 0 {
		return domain.InstallCheck{Valid: false, Message: "no available stock for this part"}, nil
	}

	return domain.InstallCheck{Valid: true}, nil
}

func (s *AssemblyService) GetTeamCars(ctx context.Context, user domain.User, teamID uint) ([]domain.Car, error) {
	if !user.CanActFor(teamID) {
		return nil, ErrWrongTeam
	}

	cars, err := s.repo.GetTeamCars(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetTeamCars -> %w", err)
	}

	return cars, nil
}

func (s *AssemblyService) GetConfiguration(ctx context.Context, user domain.User, carID uint) (domain.Configuration, error) {
	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return nil, ErrCarNotFound
		}

		return nil, fmt.Errorf("s.repo.GetCar -> %w", err)
	}
	if !user.CanActFor(car.TeamID) {
		return nil, ErrWrongTeam
	}

	configuration, err := s.repo.GetConfiguration(ctx, car.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetConfiguration -> %w", err)
	}

	return configuration, nil
}

func (s *AssemblyService) GetPerformanceStats(ctx context.Context, user domain.User, carID uint) (domain.PerformanceStats, error) {
	configuration, err := s.GetConfiguration(ctx, user, carID)
	if err != nil {
		return domain.PerformanceStats{}, err
	}

	return configuration.Stats(carID), nil
}
