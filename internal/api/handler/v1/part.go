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

type CatalogService interface {
	GetPart(ctx context.Context, partID uint) (domain.Part, error)
	ListParts(ctx context.Context) ([]domain.Part, error)
	CreatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	UpdatePart(ctx context.Context, part domain.Part) (domain.Part, error)
	RestockPart(ctx context.Context, partID uint, quantity int) (domain.Part, error)
	DeletePart(ctx context.Context, partID uint) error
}

type PurchaseService interface {
	Purchase(ctx context.Context, user domain.User, teamID, partID uint) (domain.PurchaseResult, error)
	GetTeamPurchases(ctx context.Context, user domain.User, teamID uint) ([]domain.PurchaseRecord, error)
}

type PartHandler struct {
	svc         CatalogService
	purchaseSvc PurchaseService
	uSvc        UserService
}

func NewPartHandler(svc CatalogService, purchaseSvc PurchaseService, uSvc UserService) *PartHandler {
	return &PartHandler{
		svc:         svc,
		purchaseSvc: purchaseSvc,
		uSvc:        uSvc,
	}
}

// HandleListParts godoc
// @Summary      List the store catalog
// @Tags         parts
// @Produce      json
// @Success      200  {array}   domain.Part
// @Failure      500  {object}  response.Err
// @Router       /parts [get]
// @Security     BearerAuth
func (h *PartHandler) HandleListParts(ctx *gin.Context) {
	parts, err := h.svc.ListParts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParts -> h.svc.ListParts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, parts)
}

// HandleGetPart godoc
// @Summary      Get a part by ID
// @Tags         parts
// @Produce      json
// @Param        partID  path      int  true  "Part ID"
// @Success      200     {object}  domain.Part
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /parts/{partID} [get]
// @Security     BearerAuth
func (h *PartHandler) HandleGetPart(ctx *gin.Context) {
	partID, err := parseUintParam(ctx, "partID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.GetPart(ctx.Request.Context(), partID)
	if err != nil {
		if errors.Is(err, service.ErrPartNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("part", "ID", partID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPart -> h.svc.GetPart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleCreatePart godoc
// @Summary      Add a part to the store catalog
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePartRequest  true  "request body"
// @Success      201      {object}  domain.Part
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parts [post]
// @Security     BearerAuth
func (h *PartHandler) HandleCreatePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	var req request.CreatePartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.CreatePart(ctx.Request.Context(), domain.Part{
		Category:   domain.Category(req.Category),
		Price:      req.Price,
		Power:      req.Power,
		Aero:       req.Aero,
		Maneuver:   req.Maneuver,
		StoreStock: req.StoreStock,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePart -> h.svc.CreatePart -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, part)
}

// HandleUpdatePart godoc
// @Summary      Update a part's price and stats
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        partID   path      int                        true  "Part ID"
// @Param        request  body      request.UpdatePartRequest  true  "request body"
// @Success      200      {object}  domain.Part
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parts/{partID} [put]
// @Security     BearerAuth
func (h *PartHandler) HandleUpdatePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	partID, err := parseUintParam(ctx, "partID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdatePartRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.UpdatePart(ctx.Request.Context(), domain.Part{
		ID:       partID,
		Price:    req.Price,
		Power:    req.Power,
		Aero:     req.Aero,
		Maneuver: req.Maneuver,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartNotFound):
			response.RenderErr(ctx, response.ErrNotFound("part", "ID", partID))
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdatePart -> h.svc.UpdatePart -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleRestockPart godoc
// @Summary      Increase a part's store stock
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        partID   path      int                         true  "Part ID"
// @Param        request  body      request.RestockPartRequest  true  "request body"
// @Success      200      {object}  domain.Part
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /parts/{partID}/restock [post]
// @Security     BearerAuth
func (h *PartHandler) HandleRestockPart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	partID, err := parseUintParam(ctx, "partID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.RestockPartRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	part, err := h.svc.RestockPart(ctx.Request.Context(), partID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartNotFound):
			response.RenderErr(ctx, response.ErrNotFound("part", "ID", partID))
		case errors.Is(err, service.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRestockPart -> h.svc.RestockPart -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, part)
}

// HandleDeletePart godoc
// @Summary      Remove a part from the catalog
// @Description  Fails with a conflict if any team owns the part or has it installed.
// @Tags         parts
// @Produce      json
// @Param        partID  path  int  true  "Part ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parts/{partID} [delete]
// @Security     BearerAuth
func (h *PartHandler) HandleDeletePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	partID, err := parseUintParam(ctx, "partID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeletePart(ctx.Request.Context(), partID); err != nil {
		switch {
		case errors.Is(err, service.ErrPartNotFound):
			response.RenderErr(ctx, response.ErrNotFound("part", "ID", partID))
		case errors.Is(err, service.ErrPartInUse):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDeletePart -> h.svc.DeletePart -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePurchasePart godoc
// @Summary      Purchase a part for a team
// @Description  Debits the team's budget, decrements the store stock and credits the team inventory in one transaction.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request  body      request.PurchasePartRequest  true  "request body"
// @Success      201      {object}  domain.PurchaseResult
// @Failure      400      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases [post]
// @Security     BearerAuth
func (h *PartHandler) HandlePurchasePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PurchasePartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.purchaseSvc.Purchase(ctx.Request.Context(), user, req.TeamID, req.PartID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongTeam):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPartNotFound):
			response.RenderErr(ctx, response.ErrNotFound("part", "ID", req.PartID))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", req.TeamID))
		case errors.Is(err, service.ErrInsufficientFunds):
			response.RenderErr(ctx, response.ErrPaymentRequired(err))
		case errors.Is(err, service.ErrOutOfStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandlePurchasePart -> h.purchaseSvc.Purchase -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}
