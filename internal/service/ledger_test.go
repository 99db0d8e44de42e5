package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/garage-api/internal/domain"
)

func TestLedgerService_CreateTeam(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := NewLedgerService(repo)

	team, err := svc.CreateTeam(context.Background(), domain.Team{Name: "Scuderia Nova"})
	require.NoError(t, err)
	assert.NotZero(t, team.ID)
	assert.Zero(t, team.TotalBudget)

	// Every team is provisioned with its cars up front.
	assert.Equal(t, []string{"Scuderia Nova #1", "Scuderia Nova #2"}, repo.carNames[team.ID])
}

func TestLedgerService_GetBudget(t *testing.T) {
	teamID := uint(1)
	engineer := domain.User{ID: 10, Role: domain.RoleEngineer, TeamID: &teamID}

	repo := newFakeLedgerRepo(domain.Team{ID: 1, TotalBudget: 1000, TotalSpent: 400})
	svc := NewLedgerService(repo)

	budget, err := svc.GetBudget(context.Background(), engineer, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), budget.TotalBudget)
	assert.Equal(t, int64(400), budget.TotalSpent)
	assert.Equal(t, int64(600), budget.Available)

	_, err = svc.GetBudget(context.Background(), engineer, 2)
	assert.ErrorIs(t, err, ErrWrongTeam)

	admin := domain.User{ID: 11, Role: domain.RoleAdmin}
	_, err = svc.GetBudget(context.Background(), admin, 42)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestLedgerService_ApplyContribution(t *testing.T) {
	newSvc := func() (*LedgerService, *fakeLedgerRepo) {
		repo := newFakeLedgerRepo(domain.Team{ID: 1, TotalBudget: 500, TotalSpent: 200})
		repo.sponsors[7] = domain.Sponsor{ID: 7, Name: "Apex Fuels"}
		svc := NewLedgerService(repo)

		return svc, repo
	}

	t.Run("credits the budget and keeps spending intact", func(t *testing.T) {
		svc, repo := newSvc()

		available, err := svc.ApplyContribution(context.Background(), domain.Contribution{
			SponsorID: 7,
			TeamID:    1,
			Amount:    300,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(600), available)
		assert.Equal(t, int64(800), repo.teams[1].TotalBudget)
		assert.Equal(t, int64(200), repo.teams[1].TotalSpent)
		require.Len(t, repo.contributions, 1)
	})

	t.Run("contributions accumulate", func(t *testing.T) {
		svc, repo := newSvc()

		for i := 0; i < 3; i++ {
			_, err := svc.ApplyContribution(context.Background(), domain.Contribution{
				SponsorID: 7,
				TeamID:    1,
				Amount:    100,
			})
			require.NoError(t, err)
		}

		assert.Equal(t, int64(800), repo.teams[1].TotalBudget)
		assert.Len(t, repo.contributions, 3)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, repo := newSvc()

		_, err := svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 7, TeamID: 1, Amount: 0})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 7, TeamID: 1, Amount: -50})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		assert.Empty(t, repo.contributions)
	})

	t.Run("unknown sponsor", func(t *testing.T) {
		svc, _ := newSvc()

		_, err := svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 99, TeamID: 1, Amount: 100})
		assert.ErrorIs(t, err, ErrSponsorNotFound)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _ := newSvc()

		_, err := svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 7, TeamID: 99, Amount: 100})
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})
}

// A contribution arriving between two purchases must raise the available
// budget exactly once, and spending history stays untouched.
func TestLedger_ContributionBetweenPurchases(t *testing.T) {
	teamID := uint(1)
	engineer := domain.User{ID: 10, Role: domain.RoleEngineer, TeamID: &teamID}

	catalog := newFakeCatalogRepo(domain.Part{ID: 5, Category: domain.CategoryWheels, Price: 400, StoreStock: 5})
	ledger := newFakeLedgerRepo(domain.Team{ID: 1, TotalBudget: 500})
	ledger.sponsors[7] = domain.Sponsor{ID: 7, Name: "Apex Fuels"}

	purchaseSvc := NewPurchaseService(newFakePurchaseRepo(catalog, ledger), catalog, ledger)
	ledgerSvc := NewLedgerService(ledger)

	result, err := purchaseSvc.Purchase(context.Background(), engineer, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.AvailableBudget)

	// Too expensive now.
	_, err = purchaseSvc.Purchase(context.Background(), engineer, 1, 5)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	available, err := ledgerSvc.ApplyContribution(context.Background(), domain.Contribution{
		SponsorID: 7,
		TeamID:    1,
		Amount:    350,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(450), available)

	result, err = purchaseSvc.Purchase(context.Background(), engineer, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.AvailableBudget)
	assert.Equal(t, int64(800), ledger.teams[1].TotalSpent)
}

func TestLedgerService_GetContributions(t *testing.T) {
	teamID := uint(1)
	engineer := domain.User{ID: 10, Role: domain.RoleEngineer, TeamID: &teamID}

	repo := newFakeLedgerRepo(domain.Team{ID: 1}, domain.Team{ID: 2})
	repo.sponsors[7] = domain.Sponsor{ID: 7}
	svc := NewLedgerService(repo)

	_, err := svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 7, TeamID: 1, Amount: 100})
	require.NoError(t, err)
	_, err = svc.ApplyContribution(context.Background(), domain.Contribution{SponsorID: 7, TeamID: 2, Amount: 200})
	require.NoError(t, err)

	contributions, err := svc.GetContributions(context.Background(), engineer, 1)
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Equal(t, int64(100), contributions[0].Amount)

	_, err = svc.GetContributions(context.Background(), engineer, 2)
	assert.ErrorIs(t, err, ErrWrongTeam)
}
