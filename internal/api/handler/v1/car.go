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

type AssemblyService interface {
	Install(ctx context.Context, user domain.User, carID, partID, teamID uint) error
	Replace(ctx context.Context, user domain.User, carID, oldPartID, newPartID, teamID uint) error
	Uninstall(ctx context.Context, user domain.User, carID, partID, teamID uint) error
	Validate(ctx context.Context, user domain.User, carID, candidatePartID uint) (domain.InstallCheck, error)
	GetTeamCars(ctx context.Context, user domain.User, teamID uint) ([]domain.Car, error)
	GetConfiguration(ctx context.Context, user domain.User, carID uint) (domain.Configuration, error)
	GetPerformanceStats(ctx context.Context, user domain.User, carID uint) (domain.PerformanceStats, error)
}

type CarHandler struct {
	svc  AssemblyService
	uSvc UserService
}

func NewCarHandler(svc AssemblyService, uSvc UserService) *CarHandler {
	return &CarHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func (h *CarHandler) renderAssemblyErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrCarNotFound):
		response.RenderErr(ctx, response.ErrNotFound("car", "ID", ctx.Param("carID")))
	case errors.Is(err, service.ErrPartNotFound):
		response.RenderErr(ctx, &response.Err{StatusCode: http.StatusNotFound, ErrorMsg: err.Error()})
	case errors.Is(err, service.ErrWrongTeam):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrCategoryOccupied),
		errors.Is(err, service.ErrPartNotInstalled),
		errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrCategoryMismatch):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleGetTeamCars godoc
// @Summary      List a team's cars
// @Tags         cars
// @Produce      json
// @Param        teamID  path      int  true  "Team ID"
// @Success      200     {array}   domain.Car
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/cars [get]
// @Security     BearerAuth
func (h *CarHandler) HandleGetTeamCars(ctx *gin.Context) {
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

	cars, err := h.svc.GetTeamCars(ctx.Request.Context(), user, teamID)
	if err != nil {
		h.renderAssemblyErr(ctx, "HandleGetTeamCars -> h.svc.GetTeamCars", err)
		return
	}

	ctx.JSON(http.StatusOK, cars)
}

// HandleInstallPart godoc
// @Summary      Install a part on a car
// @Description  Takes one unit from the team inventory and mounts it in the part's category slot.
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        carID    path      int                         true  "Car ID"
// @Param        request  body      request.InstallPartRequest  true  "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cars/{carID}/parts [post]
// @Security     BearerAuth
func (h *CarHandler) HandleInstallPart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.InstallPartRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	req.CarID = carID

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Install(ctx.Request.Context(), user, req.CarID, req.PartID, req.TeamID); err != nil {
		h.renderAssemblyErr(ctx, "HandleInstallPart -> h.svc.Install", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleReplacePart godoc
// @Summary      Replace an installed part
// @Description  Swaps the installed part for another part of the same category, all-or-nothing.
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        carID    path      int                         true  "Car ID"
// @Param        request  body      request.ReplacePartRequest  true  "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cars/{carID}/parts [put]
// @Security     BearerAuth
func (h *CarHandler) HandleReplacePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.ReplacePartRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	req.CarID = carID

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Replace(ctx.Request.Context(), user, req.CarID, req.OldPartID, req.NewPartID, req.TeamID); err != nil {
		h.renderAssemblyErr(ctx, "HandleReplacePart -> h.svc.Replace", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUninstallPart godoc
// @Summary      Uninstall a part from a car
// @Description  Removes the part from its category slot and returns the unit to the team inventory.
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        carID    path      int                           true  "Car ID"
// @Param        request  body      request.UninstallPartRequest  true  "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cars/{carID}/parts [delete]
// @Security     BearerAuth
func (h *CarHandler) HandleUninstallPart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UninstallPartRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	req.CarID = carID

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Uninstall(ctx.Request.Context(), user, req.CarID, req.PartID, req.TeamID); err != nil {
		h.renderAssemblyErr(ctx, "HandleUninstallPart -> h.svc.Uninstall", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleValidatePart godoc
// @Summary      Check whether a part could be installed
// @Description  Advisory only. A valid answer holds no reservation and may be stale by the time the install runs.
// @Tags         cars
// @Produce      json
// @Param        carID   path      int  true  "Car ID"
// @Param        partID  path      int  true  "Part ID"
// @Success      200     {object}  domain.InstallCheck
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /cars/{carID}/parts/{partID}/validate [get]
// @Security     BearerAuth
func (h *CarHandler) HandleValidatePart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	partID, err := parseUintParam(ctx, "partID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	check, err := h.svc.Validate(ctx.Request.Context(), user, carID, partID)
	if err != nil {
		h.renderAssemblyErr(ctx, "HandleValidatePart -> h.svc.Validate", err)
		return
	}

	ctx.JSON(http.StatusOK, check)
}

// HandleGetConfiguration godoc
// @Summary      Get a car's configuration
// @Tags         cars
// @Produce      json
// @Param        carID  path      int  true  "Car ID"
// @Success      200    {object}  domain.Configuration
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /cars/{carID}/configuration [get]
// @Security     BearerAuth
func (h *CarHandler) HandleGetConfiguration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	configuration, err := h.svc.GetConfiguration(ctx.Request.Context(), user, carID)
	if err != nil {
		h.renderAssemblyErr(ctx, "HandleGetConfiguration -> h.svc.GetConfiguration", err)
		return
	}

	ctx.JSON(http.StatusOK, configuration)
}

// HandleGetCarStats godoc
// @Summary      Get a car's performance snapshot
// @Description  Sums the stats of installed parts and reports readiness.
// @Tags         cars
// @Produce      json
// @Param        carID  path      int  true  "Car ID"
// @Success      200    {object}  domain.PerformanceStats
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /cars/{carID}/stats [get]
// @Security     BearerAuth
func (h *CarHandler) HandleGetCarStats(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	carID, err := parseUintParam(ctx, "carID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stats, err := h.svc.GetPerformanceStats(ctx.Request.Context(), user, carID)
	if err != nil {
		h.renderAssemblyErr(ctx, "HandleGetCarStats -> h.svc.GetPerformanceStats", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
