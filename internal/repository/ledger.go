package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
)

var (
	ErrTeamNotFound      = dao.ErrTeamNotFound
	ErrSponsorNotFound   = dao.ErrSponsorNotFound
	ErrInsufficientFunds = dao.ErrInsufficientFunds
)

type TeamDAO interface {
	Insert(ctx context.Context, team dao.Team, carNames []string) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	InsertSponsor(ctx context.Context, sponsor dao.Sponsor) (dao.Sponsor, error)
	FindSponsorByID(ctx context.Context, id uint) (dao.Sponsor, error)
	InsertContribution(ctx context.Context, contribution dao.Contribution) (dao.Team, error)
	FindContributionsByTeamID(ctx context.Context, teamID uint) ([]dao.Contribution, error)
}

// LedgerRepository owns the monetary state of teams: budgets, sponsor
// contributions and their read-back.
type LedgerRepository struct {
	dao TeamDAO
}

func NewLedgerRepository(dao TeamDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

func (r *LedgerRepository) teamDaoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:          t.ID,
		Name:        t.Name,
		TotalBudget: t.TotalBudget,
		TotalSpent:  t.TotalSpent,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *LedgerRepository) contributionDaoToDomain(c dao.Contribution) domain.Contribution {
	return domain.Contribution{
		ID:          c.ID,
		SponsorID:   c.SponsorID,
		TeamID:      c.TeamID,
		Amount:      c.Amount,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *LedgerRepository) CreateTeam(ctx context.Context, team domain.Team, carNames []string) (domain.Team, error) {
	created, err := r.dao.Insert(ctx, dao.Team{Name: team.Name}, carNames)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.teamDaoToDomain(created), nil
}

func (r *LedgerRepository) GetTeam(ctx context.Context, teamID uint) (domain.Team, error) {
	team, err := r.dao.FindByID(ctx, teamID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.teamDaoToDomain(team), nil
}

func (r *LedgerRepository) CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error) {
	created, err := r.dao.InsertSponsor(ctx, dao.Sponsor{Name: sponsor.Name})
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("r.dao.InsertSponsor -> %w", err)
	}

	return domain.Sponsor{ID: created.ID, Name: created.Name, CreatedAt: created.CreatedAt}, nil
}

// ApplyContribution persists the contribution and credits the team's budget
// atomically, returning the team as of after the credit.
func (r *LedgerRepository) ApplyContribution(ctx context.Context, contribution domain.Contribution) (domain.Team, error) {
	team, err := r.dao.InsertContribution(ctx, dao.Contribution{
		SponsorID:   contribution.SponsorID,
		TeamID:      contribution.TeamID,
		Amount:      contribution.Amount,
		Description: contribution.Description,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.InsertContribution -> %w", err)
	}

	return r.teamDaoToDomain(team), nil
}

func (r *LedgerRepository) GetContributions(ctx context.Context, teamID uint) ([]domain.Contribution, error) {
	contributionDAOs, err := r.dao.FindContributionsByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindContributionsByTeamID -> %w", err)
	}

	contributions := make([]domain.Contribution, len(contributionDAOs))
	for i, c := range contributionDAOs {
		contributions[i] = r.contributionDaoToDomain(c)
	}

	return contributions, nil
}
