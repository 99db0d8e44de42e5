package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/vietanh2810/garage-api/internal/domain"
)

type RosterRepository interface {
	GetReadyCars(ctx context.Context) ([]domain.Car, []domain.Configuration, error)
}

// SimulationService feeds the external race simulation: it builds the roster
// of race-ready cars with their performance snapshots. The scoring formula
// itself lives outside this service.
type SimulationService struct {
	repo       RosterRepository
	ledgerRepo LedgerRepository
}

func NewSimulationService(repo RosterRepository, ledgerRepo LedgerRepository) *SimulationService {
	return &SimulationService{
		repo:       repo,
		ledgerRepo: ledgerRepo,
	}
}

// GetRoster returns every race-ready car ordered by total performance
// descending, ties broken by car ID for determinism.
func (s *SimulationService) GetRoster(ctx context.Context) ([]domain.RaceEntry, error) {
	cars, configurations, err := s.repo.GetReadyCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetReadyCars -> %w", err)
	}

	entries := make([]domain.RaceEntry, 0, len(cars))
	for i, car := range cars {
		stats := configurations[i].Stats(car.ID)
		if !stats.Ready {
			continue
		}

		team, err := s.ledgerRepo.GetTeam(ctx, car.TeamID)
		if err != nil {
			return nil, fmt.Errorf("s.ledgerRepo.GetTeam -> %w", err)
		}

		entries = append(entries, domain.RaceEntry{
			Car:      car,
			TeamName: team.Name,
			Stats:    stats,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Total != entries[j].Stats.Total {
			return entries[i].Stats.Total > entries[j].Stats.Total
		}
		return entries[i].Car.ID < entries[j].Car.ID
	})

	return entries, nil
}
