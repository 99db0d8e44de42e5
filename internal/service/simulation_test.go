package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/garage-api/internal/domain"
)

func TestSimulationService_GetRoster(t *testing.T) {
	fullConfig := func(power, aero, maneuver int) domain.Configuration {
		configuration := domain.Configuration{}
		for i, category := range domain.Categories() {
			summary := domain.PartSummary{PartID: uint(i + 1), Category: category}
			if i == 0 {
				summary.Power = power
				summary.Aero = aero
				summary.Maneuver = maneuver
			}
			configuration[category] = summary
		}

		return configuration
	}

	repo := newFakeAssemblyRepo(
		domain.Car{ID: 1, TeamID: 1, Name: "Nova #1"},
		domain.Car{ID: 2, TeamID: 1, Name: "Nova #2"},
		domain.Car{ID: 3, TeamID: 2, Name: "Vortex #1"},
		domain.Car{ID: 4, TeamID: 2, Name: "Vortex #2"},
	)
	repo.configs[1] = fullConfig(3, 3, 3)
	repo.configs[3] = fullConfig(9, 8, 7)
	repo.configs[4] = fullConfig(3, 3, 3)
	// Car 2 misses a category and must not race.
	repo.configs[2] = fullConfig(9, 9, 9)
	delete(repo.configs[2], domain.CategoryGearbox)

	ledger := newFakeLedgerRepo(
		domain.Team{ID: 1, Name: "Scuderia Nova"},
		domain.Team{ID: 2, Name: "Vortex Racing"},
	)

	svc := NewSimulationService(repo, ledger)

	entries, err := svc.GetRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ordered by total descending, ties broken by car ID.
	assert.Equal(t, uint(3), entries[0].Car.ID)
	assert.Equal(t, "Vortex Racing", entries[0].TeamName)
	assert.Equal(t, 24, entries[0].Stats.Total)

	assert.Equal(t, uint(1), entries[1].Car.ID)
	assert.Equal(t, uint(4), entries[2].Car.ID)
	assert.Equal(t, entries[1].Stats.Total, entries[2].Stats.Total)

	for _, entry := range entries {
		assert.True(t, entry.Stats.Ready)
		assert.Equal(t, len(domain.Categories()), entry.Stats.InstalledCount)
	}
}

func TestSimulationService_GetRosterEmpty(t *testing.T) {
	repo := newFakeAssemblyRepo(domain.Car{ID: 1, TeamID: 1})
	ledger := newFakeLedgerRepo(domain.Team{ID: 1, Name: "Scuderia Nova"})
	svc := NewSimulationService(repo, ledger)

	entries, err := svc.GetRoster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
