package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Снимок тепловой карты
	api.GET("/heatmap", h.getHeatmap)
	api.GET("/heatmap/geojson", h.getHeatmapGeoJSON)

	regions := api.Group("/regions")
	{
		regions.GET("", h.listRegions)
		regions.POST("", h.createRegion)
		regions.GET("/stats", h.getRegionStats)
		regions.GET("/:id", h.getRegion)
		regions.PATCH("/:id", h.updateRegion)
	}

	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("", h.createAlert)
		alerts.DELETE("", h.pruneAlerts)
		alerts.GET("/stream", h.streamAlerts)
		alerts.GET("/:id", h.getAlert)
	}

	reports := api.Group("/user-reports")
	{
		reports.GET("", h.listUserReports)
		reports.POST("", h.createUserReport)
		reports.GET("/:id", h.getUserReport)
	}

	routes := api.Group("/routes")
	{
		routes.GET("", h.listRoutes)
		routes.POST("", h.planRoute)
		routes.GET("/:id", h.getRoute)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
