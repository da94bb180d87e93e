package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/city_safety_map/internal/models"
	"github.com/shenikar/city_safety_map/internal/service"
	"github.com/sirupsen/logrus"
)

// AlertSubscriber - источник новых алертов для SSE-клиентов
type AlertSubscriber interface {
	Subscribe() (uint64, <-chan models.Alert)
	Unsubscribe(id uint64)
}

type Handler struct {
	regionService service.RegionService
	alertService  service.AlertService
	reportService service.ReportService
	routeService  service.RouteService
	subscriber    AlertSubscriber
	logger        *logrus.Logger
	validate      *validator.Validate
	now           func() time.Time
}

func NewHandler(
	regionService service.RegionService,
	alertService service.AlertService,
	reportService service.ReportService,
	routeService service.RouteService,
	subscriber AlertSubscriber,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		regionService: regionService,
		alertService:  alertService,
		reportService: reportService,
		routeService:  routeService,
		subscriber:    subscriber,
		logger:        logger,
		validate:      validator.New(),
		now:           time.Now,
	}
}

// respondError переводит ошибку сервиса в HTTP-ответ
func respondError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		log.WithError(err).Warn("Rejected invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Entity not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindAndValidate читает JSON в input и проверяет его тегами validate
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + entity + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Get heatmap snapshot
// @Description Get every region with its current safety score and signals
// @Tags Regions
// @Produce json
// @Success 200 {object} HeatmapResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /heatmap [get]
func (h *Handler) getHeatmap(c *gin.Context) {
	log := h.logger.WithField("method", "getHeatmap")

	regions, err := h.regionService.ListRegions(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, HeatmapResponse{
		Regions:   ModelsToRegionResponses(regions),
		Timestamp: h.now().UTC(),
	})
}

// @Summary Get heatmap as GeoJSON
// @Description Get every region as a GeoJSON point feature
// @Tags Regions
// @Produce json
// @Success 200 {object} FeatureCollection
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /heatmap/geojson [get]
func (h *Handler) getHeatmapGeoJSON(c *gin.Context) {
	log := h.logger.WithField("method", "getHeatmapGeoJSON")

	regions, err := h.regionService.ListRegions(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, toGeoJSON(regions))
}

// @Summary List regions
// @Description Get all regions in catalog order
// @Tags Regions
// @Produce json
// @Success 200 {array} RegionResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /regions [get]
func (h *Handler) listRegions(c *gin.Context) {
	log := h.logger.WithField("method", "listRegions")

	regions, err := h.regionService.ListRegions(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, ModelsToRegionResponses(regions))
}

// @Summary Get region statistics
// @Description Get region count per risk tier and the average safety score
// @Tags Regions
// @Produce json
// @Success 200 {object} RegionStatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /regions/stats [get]
func (h *Handler) getRegionStats(c *gin.Context) {
	log := h.logger.WithField("method", "getRegionStats")

	stats, err := h.regionService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, ModelToRegionStatsResponse(stats))
}

// @Summary Get region by ID
// @Description Get a single region with its safety score
// @Tags Regions
// @Produce json
// @Param id path string true "Region ID"
// @Success 200 {object} RegionResponse
// @Failure 400 {object} map[string]string "Invalid region ID"
// @Failure 404 {object} map[string]string "Region not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /regions/{id} [get]
func (h *Handler) getRegion(c *gin.Context) {
	id, ok := parseID(c, "region")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getRegion").WithField("id", id)

	region, err := h.regionService.GetRegion(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "region not found")
		return
	}
	c.JSON(http.StatusOK, ModelToRegionResponse(region))
}

// @Summary Create a region
// @Description Create a new region. Without safety_score the catalog base score is used.
// @Tags Regions
// @Accept json
// @Produce json
// @Param region body CreateRegionRequest true "Region creation request"
// @Success 201 {object} RegionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /regions [post]
func (h *Handler) createRegion(c *gin.Context) {
	var input CreateRegionRequest
	log := h.logger.WithField("method", "createRegion")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToRegionModel(input)
	if err := h.regionService.CreateRegion(c.Request.Context(), model); err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusCreated, ModelToRegionResponse(model))
}

// @Summary Update a region
// @Description Partially update a region. Signals are replaced as a whole.
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path string true "Region ID"
// @Param region body UpdateRegionRequest true "Region update request"
// @Success 200 {object} RegionResponse
// @Failure 400 {object} map[string]string "Invalid region ID or request body"
// @Failure 404 {object} map[string]string "Region not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /regions/{id} [patch]
func (h *Handler) updateRegion(c *gin.Context) {
	id, ok := parseID(c, "region")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateRegion").WithField("id", id)

	var input UpdateRegionRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	region, err := h.regionService.UpdateRegion(c.Request.Context(), id, DTOToRegionUpdate(input))
	if err != nil {
		respondError(c, log, err, "region not found")
		return
	}
	c.JSON(http.StatusOK, ModelToRegionResponse(region))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
