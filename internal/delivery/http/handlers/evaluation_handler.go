package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pricetrust/pricing-service/internal/delivery/http/dto"
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/usecase"
)

type EvaluationHandler struct {
	uc usecase.PipelineUsecase
}

func NewEvaluationHandler(uc usecase.PipelineUsecase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc}
}

var validLabels = map[string]bool{
	string(domain.LabelReal):       true,
	string(domain.LabelLikelyReal): true,
	string(domain.LabelSuspicious): true,
	string(domain.LabelLikelyFake): true,
}

// List serves GET /api/v1/evaluations. Unknown labels and malformed
// numbers are client errors; the result set is capped server-side.
func (h *EvaluationHandler) List(c *gin.Context) {
	var filter domain.EvaluationFilter

	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "min_score must be a number"})
			return
		}
		filter.MinScore = v
	}
	if raw := c.Query("label"); raw != "" {
		if !validLabels[raw] {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown label: " + raw})
			return
		}
		filter.Label = domain.EvaluationLabel(raw)
	}
	filter.Retailer = c.Query("retailer")
	filter.BrandSubstring = c.Query("brand")
	if raw := c.Query("min_discount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "min_discount must be a number"})
			return
		}
		filter.MinVisibleDiscount = &v
	}
	if raw := c.Query("cross_store_positive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cross_store_positive must be a boolean"})
			return
		}
		filter.CrossStorePositive = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		filter.Limit = v
	}

	rows, err := h.uc.QueryEvaluations(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	responses := make([]dto.EvaluationResponse, len(rows))
	for i, row := range rows {
		responses[i] = dto.ToEvaluationResponse(row)
	}
	c.JSON(http.StatusOK, gin.H{"evaluations": responses, "count": len(responses)})
}
