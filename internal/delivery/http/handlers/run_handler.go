package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricetrust/pricing-service/internal/delivery/http/dto"
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/usecase"
)

type RunHandler struct {
	uc usecase.PipelineUsecase
}

func NewRunHandler(uc usecase.PipelineUsecase) *RunHandler {
	return &RunHandler{uc: uc}
}

// Latest serves GET /api/v1/runs/latest: the most recent finalized run
// by start time, 404 before the first run ever completes.
func (h *RunHandler) Latest(c *gin.Context) {
	run, err := h.uc.LatestRun(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no pipeline runs recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToRunResponse(run))
}
