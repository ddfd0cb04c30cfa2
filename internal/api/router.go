package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gota/gota/dataframe"

	"github.com/jengzang/bikeshare-eda/internal/charts"
	"github.com/jengzang/bikeshare-eda/internal/config"
	"github.com/jengzang/bikeshare-eda/internal/handler"
	"github.com/jengzang/bikeshare-eda/internal/middleware"
	"github.com/jengzang/bikeshare-eda/internal/models"
	"github.com/jengzang/bikeshare-eda/internal/service"
)

// Services holds everything the HTTP handlers read from
type Services struct {
	Dataset *service.DatasetService
	Stats   *service.StatsService
	Charts  *service.ChartService
}

// NewServices wires the services over one loaded dataset
func NewServices(cfg *config.Config, table *models.Table, frame dataframe.DataFrame) *Services {
	return &Services{
		Dataset: service.NewDatasetService(table, frame),
		Stats:   service.NewStatsService(table),
		Charts:  service.NewChartService(charts.DefaultRegistry(), table, charts.Options{Bins: cfg.Bins}),
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, logger *slog.Logger, svc *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Bike sharing EDA API is running",
		})
	})

	datasetHandler := handler.NewDatasetHandler(svc.Dataset, cfg.HeadRows)
	statsHandler := handler.NewStatsHandler(svc.Stats)
	chartHandler := handler.NewChartHandler(svc.Charts, cfg.Format)

	api := r.Group("/api/v1")
	{
		dataset := api.Group("/dataset")
		{
			dataset.GET("/summary", datasetHandler.GetSummary)
			dataset.GET("/head", datasetHandler.GetHead)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/correlation", statsHandler.GetCorrelation)
			stats.GET("/describe", statsHandler.GetDescribe)
			stats.GET("/box", statsHandler.GetBox)
		}

		chartGroup := api.Group("/charts")
		{
			chartGroup.GET("", chartHandler.ListCharts)
			chartGroup.GET("/:name",
				middleware.RateLimit(middleware.NewRateLimiter(cfg.RenderLimit, time.Minute)),
				chartHandler.GetChart)
		}
	}

	return r
}
