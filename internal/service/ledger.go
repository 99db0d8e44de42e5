package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

var (
	ErrTeamNotFound      = repository.ErrTeamNotFound
	ErrSponsorNotFound   = repository.ErrSponsorNotFound
	ErrInsufficientFunds = repository.ErrInsufficientFunds
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrWrongTeam         = errors.New("resource does not belong to the user's team")
)

// carsPerTeam is how many cars a team is provisioned with at creation.
const carsPerTeam = 2

type LedgerRepository interface {
	CreateTeam(ctx context.Context, team domain.Team, carNames []string) (domain.Team, error)
	GetTeam(ctx context.Context, teamID uint) (domain.Team, error)
	CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error)
	ApplyContribution(ctx context.Context, contribution domain.Contribution) (domain.Team, error)
	GetContributions(ctx context.Context, teamID uint) ([]domain.Contribution, error)
}

type LedgerService struct {
	repo LedgerRepository
}

func NewLedgerService(repo LedgerRepository) *LedgerService {
	return &LedgerService{
		repo: repo,
	}
}

func (s *LedgerService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	carNames := make([]string, carsPerTeam)
	for i := range carNames {
		carNames[i] = fmt.Sprintf("%s #%d", team.Name, i+1)
	}

	created, err := s.repo.CreateTeam(ctx, team, carNames)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.CreateTeam -> %w", err)
	}

	return created, nil
}

func (s *LedgerService) CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error) {
	created, err := s.repo.CreateSponsor(ctx, sponsor)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("s.repo.CreateSponsor -> %w", err)
	}

	return created, nil
}

// GetBudget returns the team's ledger snapshot. Non-admin callers can only
// read their own team's budget.
func (s *LedgerService) GetBudget(ctx context.Context, user domain.User, teamID uint) (domain.Budget, error) {
	if !user.CanActFor(teamID) {
		return domain.Budget{}, ErrWrongTeam
	}

	team, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return domain.Budget{}, ErrTeamNotFound
		}

		return domain.Budget{}, fmt.Errorf("s.repo.GetTeam -> %w", err)
	}

	return domain.Budget{
		TeamID:      team.ID,
		TotalBudget: team.TotalBudget,
		TotalSpent:  team.TotalSpent,
		Available:   team.Available(),
	}, nil
}

// ApplyContribution records an immutable sponsor contribution and credits
// the team's budget. Returns the new available balance.
func (s *LedgerService) ApplyContribution(ctx context.Context, contribution domain.Contribution) (int64, error) {
	if contribution.Amount <= 0 {
		return 0, ErrInvalidAmount
	}

	team, err := s.repo.ApplyContribution(ctx, contribution)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return 0, ErrTeamNotFound
		}
		if errors.Is(err, repository.ErrSponsorNotFound) {
			return 0, ErrSponsorNotFound
		}

		return 0, fmt.Errorf("s.repo.ApplyContribution -> %w", err)
	}

	return team.Available(), nil
}

func (s *LedgerService) GetContributions(ctx context.Context, user domain.User, teamID uint) ([]domain.Contribution, error) {
	if !user.CanActFor(teamID) {
		return nil, ErrWrongTeam
	}

	contributions, err := s.repo.GetContributions(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetContributions -> %w", err)
	}

	return contributions, nil
}
