package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/garage-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/garage-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/service"
)

type LedgerService interface {
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error)
	GetBudget(ctx context.Context, user domain.User, teamID uint) (domain.Budget, error)
	ApplyContribution(ctx context.Context, contribution domain.Contribution) (int64, error)
	GetContributions(ctx context.Context, user domain.User, teamID uint) ([]domain.Contribution, error)
}

type InventoryService interface {
	GetAvailableParts(ctx context.Context, user domain.User, teamID uint) ([]domain.PartWithStock, error)
}

type TeamHandler struct {
	svc          LedgerService
	inventorySvc InventoryService
	purchaseSvc  PurchaseService
	uSvc         UserService
}

func NewTeamHandler(svc LedgerService, inventorySvc InventoryService, purchaseSvc PurchaseService, uSvc UserService) *TeamHandler {
	return &TeamHandler{
		svc:          svc,
		inventorySvc: inventorySvc,
		purchaseSvc:  purchaseSvc,
		uSvc:         uSvc,
	}
}

// HandleCreateTeam godoc
// @Summary      Create a team with its initial cars
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTeamRequest  true  "request body"
// @Success      201      {object}  domain.Team
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), domain.Team{Name: req.Name})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleCreateSponsor godoc
// @Summary      Register a sponsor
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSponsorRequest  true  "request body"
// @Success      201      {object}  domain.Sponsor
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sponsors [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleCreateSponsor(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	var req request.CreateSponsorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sponsor, err := h.svc.CreateSponsor(ctx.Request.Context(), domain.Sponsor{Name: req.Name})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSponsor -> h.svc.CreateSponsor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, sponsor)
}

// HandleGetBudget godoc
// @Summary      Get a team's budget
// @Description  Returns total budget, total spent and the available balance.
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "Team ID"
// @Success      200     {object}  domain.Budget
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/budget [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetBudget(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	budget, err := h.svc.GetBudget(ctx.Request.Context(), user, teamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrWrongTeam):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetBudget -> h.svc.GetBudget -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, budget)
}

// HandleCreateContribution godoc
// @Summary      Record a sponsor contribution
// @Description  Appends an immutable contribution event and credits the team's budget.
// @Tags         contributions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateContributionRequest  true  "request body"
// @Success      201      {object}  map[string]int64
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /contributions [post]
// @Security     BearerAuth
func (h *TeamHandler) HandleCreateContribution(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	var req request.CreateContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	newAvailable, err := h.svc.ApplyContribution(ctx.Request.Context(), domain.Contribution{
		SponsorID:   req.SponsorID,
		TeamID:      req.TeamID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", req.TeamID))
		case errors.Is(err, service.ErrSponsorNotFound):
			response.RenderErr(ctx, response.ErrNotFound("sponsor", "ID", req.SponsorID))
		default:
			err = fmt.Errorf("v1.HandleCreateContribution -> h.svc.ApplyContribution -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"available": newAvailable})
}

// HandleGetContributions godoc
// @Summary      List a team's contributions
// @Tags         contributions
// @Produce      json
// @Param        teamID  path      int  true  "Team ID"
// @Success      200     {array}   domain.Contribution
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/contributions [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetContributions(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	contributions, err := h.svc.GetContributions(ctx.Request.Context(), user, teamID)
	if err != nil {
		if errors.Is(err, service.ErrWrongTeam) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetContributions -> h.svc.GetContributions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, contributions)
}

// HandleGetInventory godoc
// @Summary      List a team's owned parts with stock counts
// @Tags         inventory
// @Produce      json
// @Param        teamID  path      int  true  "Team ID"
// @Success      200     {array}   domain.PartWithStock
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/inventory [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetInventory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stocks, err := h.inventorySvc.GetAvailableParts(ctx.Request.Context(), user, teamID)
	if err != nil {
		if errors.Is(err, service.ErrWrongTeam) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetInventory -> h.inventorySvc.GetAvailableParts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stocks)
}

// HandleGetPurchases godoc
// @Summary      List a team's purchase history
// @Tags         purchases
// @Produce      json
// @Param        teamID  path      int  true  "Team ID"
// @Success      200     {array}   domain.PurchaseRecord
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/purchases [get]
// @Security     BearerAuth
func (h *TeamHandler) HandleGetPurchases(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	records, err := h.purchaseSvc.GetTeamPurchases(ctx.Request.Context(), user, teamID)
	if err != nil {
		if errors.Is(err, service.ErrWrongTeam) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetPurchases -> h.purchaseSvc.GetTeamPurchases -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}
