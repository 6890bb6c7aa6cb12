package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"asset-dashboard/internal/api/handlers"
	"asset-dashboard/internal/api/middleware"
	"asset-dashboard/internal/api/models"
	"asset-dashboard/internal/summary"
)

// Options configures the HTTP surface.
type Options struct {
	Service        *summary.Service
	Page           handlers.PageConfig
	AllowedOrigins []string
}

// NewRouter builds the gin engine serving the dashboard and JSON API.
func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("summary service is required")
	}
	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.AllowedOrigins...))

	store := opts.Service.Store()
	datasetHandler := handlers.NewDatasetHandler(store)
	summaryHandler := handlers.NewSummaryHandler(opts.Service)
	rankHandler := handlers.NewRankHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(opts.Service, opts.Page)

	router.GET("/", dashboardHandler.Page)
	router.GET("/health", datasetHandler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/options", datasetHandler.ListOptions)
		api.POST("/reload", datasetHandler.Reload)

		api.GET("/summary", summaryHandler.GetSummary)
		api.GET("/summary/export", summaryHandler.Export)
		api.GET("/charts/:file", summaryHandler.GetChart)

		api.GET("/rank", rankHandler.RankAssets)
	}

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
			})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})

	return router, nil
}
