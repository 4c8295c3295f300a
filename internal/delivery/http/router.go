package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pricetrust/pricing-service/internal/delivery/http/handlers"
	"github.com/pricetrust/pricing-service/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(uc usecase.PipelineUsecase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	evaluationHandler := handlers.NewEvaluationHandler(uc)
	runHandler := handlers.NewRunHandler(uc)

	api := router.Group("/api/v1")
	{
		api.GET("/evaluations", evaluationHandler.List)
		api.GET("/runs/latest", runHandler.Latest)
	}

	return router
}
