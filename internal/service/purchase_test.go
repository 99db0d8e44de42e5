package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/garage-api/internal/domain"
)

func TestPurchaseService_Purchase(t *testing.T) {
	teamID := uint(1)
	engineer := domain.User{ID: 10, Role: domain.RoleEngineer, TeamID: &teamID}

	newSvc := func(team domain.Team, parts ...domain.Part) (*PurchaseService, *fakePurchaseRepo) {
		catalog := newFakeCatalogRepo(parts...)
		ledger := newFakeLedgerRepo(team)
		repo := newFakePurchaseRepo(catalog, ledger)
		svc := NewPurchaseService(repo, catalog, ledger)

		return svc, repo
	}

	t.Run("debits budget, decrements stock and credits inventory", func(t *testing.T) {
		svc, repo := newSvc(
			domain.Team{ID: 1, TotalBudget: 1000},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 2},
		)

		result, err := svc.Purchase(context.Background(), engineer, 1, 5)
		require.NoError(t, err)

		assert.Equal(t, int64(700), result.AvailableBudget)
		assert.Equal(t, 1, result.StoreStock)

		entry := repo.inventory[inventoryKey{teamID: 1, partID: 5}]
		require.NotNil(t, entry)
		assert.Equal(t, 1, entry.QuantityOwned)
		assert.Zero(t, entry.QuantityInstalled)

		require.Len(t, repo.records, 1)
		assert.Equal(t, int64(300), repo.records[0].UnitPrice)
		assert.Equal(t, engineer.ID, repo.records[0].UserID)
	})

	t.Run("exact price succeeds and leaves zero available", func(t *testing.T) {
		svc, _ := newSvc(
			domain.Team{ID: 1, TotalBudget: 300},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 1},
		)

		result, err := svc.Purchase(context.Background(), engineer, 1, 5)
		require.NoError(t, err)
		assert.Zero(t, result.AvailableBudget)
		assert.Zero(t, result.StoreStock)
	})

	t.Run("insufficient funds leaves everything untouched", func(t *testing.T) {
		svc, repo := newSvc(
			domain.Team{ID: 1, TotalBudget: 100},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 2},
		)

		_, err := svc.Purchase(context.Background(), engineer, 1, 5)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		assert.Equal(t, 2, repo.catalog.parts[5].StoreStock)
		assert.Zero(t, repo.ledger.teams[1].TotalSpent)
		assert.Empty(t, repo.inventory)
		assert.Empty(t, repo.records)
	})

	t.Run("out of stock leaves everything untouched", func(t *testing.T) {
		svc, repo := newSvc(
			domain.Team{ID: 1, TotalBudget: 1000},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 0},
		)

		_, err := svc.Purchase(context.Background(), engineer, 1, 5)
		assert.ErrorIs(t, err, ErrOutOfStock)

		assert.Zero(t, repo.ledger.teams[1].TotalSpent)
		assert.Empty(t, repo.inventory)
	})

	t.Run("repeat purchases stack the inventory entry", func(t *testing.T) {
		svc, repo := newSvc(
			domain.Team{ID: 1, TotalBudget: 1000},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 3},
		)

		for i := 0; i < 3; i++ {
			_, err := svc.Purchase(context.Background(), engineer, 1, 5)
			require.NoError(t, err)
		}

		entry := repo.inventory[inventoryKey{teamID: 1, partID: 5}]
		assert.Equal(t, 3, entry.QuantityOwned)
		assert.Zero(t, repo.catalog.parts[5].StoreStock)
		assert.Equal(t, int64(900), repo.ledger.teams[1].TotalSpent)
	})

	t.Run("unknown part", func(t *testing.T) {
		svc, _ := newSvc(domain.Team{ID: 1, TotalBudget: 1000})

		_, err := svc.Purchase(context.Background(), engineer, 1, 99)
		assert.ErrorIs(t, err, ErrPartNotFound)
	})

	t.Run("other team's budget is off limits", func(t *testing.T) {
		svc, _ := newSvc(
			domain.Team{ID: 1, TotalBudget: 1000},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 1},
		)

		otherTeam := uint(2)
		rival := domain.User{ID: 11, Role: domain.RoleEngineer, TeamID: &otherTeam}

		_, err := svc.Purchase(context.Background(), rival, 1, 5)
		assert.ErrorIs(t, err, ErrWrongTeam)
	})

	t.Run("admin may purchase for any team", func(t *testing.T) {
		svc, _ := newSvc(
			domain.Team{ID: 1, TotalBudget: 1000},
			domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 300, StoreStock: 1},
		)

		admin := domain.User{ID: 12, Role: domain.RoleAdmin}

		_, err := svc.Purchase(context.Background(), admin, 1, 5)
		assert.NoError(t, err)
	})
}

func TestPurchaseService_GetTeamPurchases(t *testing.T) {
	teamID := uint(1)
	engineer := domain.User{ID: 10, Role: domain.RoleEngineer, TeamID: &teamID}

	catalog := newFakeCatalogRepo(domain.Part{ID: 5, Category: domain.CategoryGearbox, Price: 100, StoreStock: 5})
	ledger := newFakeLedgerRepo(domain.Team{ID: 1, TotalBudget: 500}, domain.Team{ID: 2, TotalBudget: 500})
	repo := newFakePurchaseRepo(catalog, ledger)
	svc := NewPurchaseService(repo, catalog, ledger)

	_, err := svc.Purchase(context.Background(), engineer, 1, 5)
	require.NoError(t, err)

	records, err := svc.GetTeamPurchases(context.Background(), engineer, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint(5), records[0].PartID)

	_, err = svc.GetTeamPurchases(context.Background(), engineer, 2)
	assert.ErrorIs(t, err, ErrWrongTeam)
}
