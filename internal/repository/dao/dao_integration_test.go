package dao

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB spins up a throwaway postgres container. Tests are skipped when
// no docker daemon is reachable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping, docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("skipping, docker is not available: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=garage",
		"POSTGRES_PASSWORD=garage",
		"POSTGRES_DB=garage_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=garage password=garage dbname=garage_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func TestPurchaseDAO_Execute(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	teamDAO := NewTeamDAO(db)
	partDAO := NewPartDAO(db)
	purchaseDAO := NewPurchaseDAO(db)
	inventoryDAO := NewInventoryDAO(db)

	team, err := teamDAO.Insert(ctx, Team{Name: "Scuderia Nova", TotalBudget: 1000}, []string{"Nova #1", "Nova #2"})
	require.NoError(t, err)

	part, err := partDAO.Insert(ctx, Part{Category: "wheels", Price: 300, Maneuver: 4, StoreStock: 2})
	require.NoError(t, err)

	t.Run("purchase moves one unit and debits the budget", func(t *testing.T) {
		outcome, err := purchaseDAO.Execute(ctx, team.ID, part.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(700), outcome.AvailableBudget)
		assert.Equal(t, 1, outcome.StoreStock)

		entry, err := inventoryDAO.FindEntry(ctx, team.ID, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, entry.QuantityOwned)

		records, err := purchaseDAO.FindByTeamID(ctx, team.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(300), records[0].UnitPrice)
	})

	t.Run("insufficient funds rolls everything back", func(t *testing.T) {
		poor, err := teamDAO.Insert(ctx, Team{Name: "Backmarkers", TotalBudget: 100}, []string{"BM #1", "BM #2"})
		require.NoError(t, err)

		_, err = purchaseDAO.Execute(ctx, poor.ID, part.ID, 1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		reloaded, err := partDAO.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, reloaded.StoreStock)

		entry, err := inventoryDAO.FindEntry(ctx, poor.ID, part.ID)
		require.NoError(t, err)
		assert.Zero(t, entry.QuantityOwned)
	})

	t.Run("concurrent purchases of the last unit admit exactly one", func(t *testing.T) {
		rival, err := teamDAO.Insert(ctx, Team{Name: "Vortex Racing", TotalBudget: 1000}, []string{"V #1", "V #2"})
		require.NoError(t, err)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = purchaseDAO.Execute(ctx, rival.ID, part.ID, 1)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, ErrOutOfStock)
			}
		}
		assert.Equal(t, 1, succeeded)

		reloaded, err := partDAO.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Zero(t, reloaded.StoreStock)

		entry, err := inventoryDAO.FindEntry(ctx, rival.ID, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, entry.QuantityOwned)
	})
}

func TestCarDAO_InstallReplaceUninstall(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	teamDAO := NewTeamDAO(db)
	partDAO := NewPartDAO(db)
	purchaseDAO := NewPurchaseDAO(db)
	carDAO := NewCarDAO(db)
	inventoryDAO := NewInventoryDAO(db)

	team, err := teamDAO.Insert(ctx, Team{Name: "Scuderia Nova", TotalBudget: 10000}, []string{"Nova #1", "Nova #2"})
	require.NoError(t, err)

	cars, err := carDAO.FindByTeamID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, cars, 2)
	car := cars[0]

	wheels, err := partDAO.Insert(ctx, Part{Category: "wheels", Price: 300, Maneuver: 4, StoreStock: 5})
	require.NoError(t, err)
	betterWheels, err := partDAO.Insert(ctx, Part{Category: "wheels", Price: 600, Maneuver: 8, StoreStock: 5})
	require.NoError(t, err)

	_, err = purchaseDAO.Execute(ctx, team.ID, wheels.ID, 1)
	require.NoError(t, err)

	t.Run("install reserves the unit", func(t *testing.T) {
		require.NoError(t, carDAO.Install(ctx, car.ID, team.ID, wheels))

		entry, err := inventoryDAO.FindEntry(ctx, team.ID, wheels.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, entry.QuantityInstalled)

		configuration, err := carDAO.FindConfiguration(ctx, car.ID)
		require.NoError(t, err)
		require.Len(t, configuration, 1)
		assert.Equal(t, wheels.ID, configuration[0].CarPart.PartID)
	})

	t.Run("second part in the category is rejected", func(t *testing.T) {
		_, err := purchaseDAO.Execute(ctx, team.ID, betterWheels.ID, 1)
		require.NoError(t, err)

		err = carDAO.Install(ctx, car.ID, team.ID, betterWheels)
		assert.ErrorIs(t, err, ErrCategoryOccupied)

		// The rejected install must not reserve the unit.
		entry, err := inventoryDAO.FindEntry(ctx, team.ID, betterWheels.ID)
		require.NoError(t, err)
		assert.Zero(t, entry.QuantityInstalled)
	})

	t.Run("replace swaps within the category", func(t *testing.T) {
		require.NoError(t, carDAO.Replace(ctx, car.ID, team.ID, wheels, betterWheels))

		oldEntry, err := inventoryDAO.FindEntry(ctx, team.ID, wheels.ID)
		require.NoError(t, err)
		assert.Zero(t, oldEntry.QuantityInstalled)

		newEntry, err := inventoryDAO.FindEntry(ctx, team.ID, betterWheels.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, newEntry.QuantityInstalled)
	})

	t.Run("uninstall frees the unit", func(t *testing.T) {
		require.NoError(t, carDAO.Uninstall(ctx, car.ID, team.ID, betterWheels))

		entry, err := inventoryDAO.FindEntry(ctx, team.ID, betterWheels.ID)
		require.NoError(t, err)
		assert.Zero(t, entry.QuantityInstalled)
		assert.Equal(t, 1, entry.QuantityOwned)

		err = carDAO.Uninstall(ctx, car.ID, team.ID, betterWheels)
		assert.ErrorIs(t, err, ErrPartNotInstalled)
	})
}

func TestTeamDAO_Contributions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	teamDAO := NewTeamDAO(db)

	team, err := teamDAO.Insert(ctx, Team{Name: "Scuderia Nova"}, []string{"Nova #1", "Nova #2"})
	require.NoError(t, err)

	sponsor, err := teamDAO.InsertSponsor(ctx, Sponsor{Name: "Apex Fuels"})
	require.NoError(t, err)

	updated, err := teamDAO.InsertContribution(ctx, Contribution{
		SponsorID: sponsor.ID,
		TeamID:    team.ID,
		Amount:    500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.TotalBudget)

	_, err = teamDAO.InsertContribution(ctx, Contribution{SponsorID: 999, TeamID: team.ID, Amount: 100})
	assert.ErrorIs(t, err, ErrSponsorNotFound)

	_, err = teamDAO.InsertContribution(ctx, Contribution{SponsorID: sponsor.ID, TeamID: 999, Amount: 100})
	assert.ErrorIs(t, err, ErrTeamNotFound)

	contributions, err := teamDAO.FindContributionsByTeamID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Equal(t, int64(500), contributions[0].Amount)
}
