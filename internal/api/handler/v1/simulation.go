package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/garage-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/garage-api/internal/domain"
)

type SimulationService interface {
	GetRoster(ctx context.Context) ([]domain.RaceEntry, error)
}

type SimulationHandler struct {
	svc SimulationService
}

func NewSimulationHandler(svc SimulationService) *SimulationHandler {
	return &SimulationHandler{
		svc: svc,
	}
}

// HandleGetRoster godoc
// @Summary      Get the race roster
// @Description  Lists every race-ready car with its performance snapshot, ordered by total performance.
// @Tags         simulation
// @Produce      json
// @Success      200  {array}   domain.RaceEntry
// @Failure      500  {object}  response.Err
// @Router       /simulation/roster [get]
// @Security     BearerAuth
func (h *SimulationHandler) HandleGetRoster(ctx *gin.Context) {
	entries, err := h.svc.GetRoster(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRoster -> h.svc.GetRoster -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
