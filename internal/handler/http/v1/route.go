package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Plan a route
// @Description Build a straight route between two place names and score its safety
// @Tags Routes
// @Accept json
// @Produce json
// @Param route body PlanRouteRequest true "Route request"
// @Success 201 {object} RouteResponse
// @Failure 400 {object} map[string]string "Invalid request body or empty place name"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes [post]
func (h *Handler) planRoute(c *gin.Context) {
	var input PlanRouteRequest
	log := h.logger.WithField("method", "planRoute")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	route, err := h.routeService.PlanRoute(c.Request.Context(), input.Source, input.Destination)
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusCreated, ModelToRouteResponse(route))
}

// @Summary List planned routes
// @Tags Routes
// @Produce json
// @Success 200 {array} RouteResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes [get]
func (h *Handler) listRoutes(c *gin.Context) {
	log := h.logger.WithField("method", "listRoutes")

	routes, err := h.routeService.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, ModelsToRouteResponses(routes))
}

// @Summary Get route by ID
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} RouteResponse
// @Failure 400 {object} map[string]string "Invalid route ID"
// @Failure 404 {object} map[string]string "Route not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes/{id} [get]
func (h *Handler) getRoute(c *gin.Context) {
	id, ok := parseID(c, "route")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getRoute").WithField("id", id)

	route, err := h.routeService.GetRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "route not found")
		return
	}
	c.JSON(http.StatusOK, ModelToRouteResponse(route))
}
