package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Интервал служебных сообщений, чтобы прокси не закрывали простаивающий поток
const sseHeartbeat = 15 * time.Second

// @Summary List alerts
// @Description Get alerts newest first
// @Tags Alerts
// @Produce json
// @Param limit query int false "Maximum number of alerts, 0 means all" default(0)
// @Success 200 {array} AlertResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Get alert by ID
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid alert ID"
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id, ok := parseID(c, "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.alertService.GetAlert(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "alert not found")
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Create an alert
// @Description Create an alert manually. It is broadcast to stream subscribers and webhooks.
// @Tags Alerts
// @Accept json
// @Produce json
// @Param alert body CreateAlertRequest true "Alert creation request"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToAlertModel(input)
	if err := h.alertService.CreateAlert(c.Request.Context(), model); err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(model))
}

// @Summary Prune old alerts
// @Description Delete alerts older than max_age
// @Tags Alerts
// @Produce json
// @Param max_age query string false "Go duration, e.g. 2h or 30m" default(2h)
// @Success 200 {object} PruneAlertsResponse
// @Failure 400 {object} map[string]string "Invalid max_age"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [delete]
func (h *Handler) pruneAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "pruneAlerts")

	maxAge, err := time.ParseDuration(c.DefaultQuery("max_age", "2h"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_age"})
		return
	}

	deleted, err := h.alertService.PruneAlerts(c.Request.Context(), maxAge)
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, PruneAlertsResponse{Deleted: deleted})
}

// @Summary Stream new alerts
// @Description Server-Sent Events stream. Each new alert is sent as an "alert" event.
// @Tags Alerts
// @Produce text/event-stream
// @Success 200 {object} AlertResponse
// @Router /alerts/stream [get]
func (h *Handler) streamAlerts(c *gin.Context) {
	id, ch := h.subscriber.Subscribe()
	defer h.subscriber.Unsubscribe(id)

	log := h.logger.WithField("method", "streamAlerts").WithField("subscriber", id)
	log.Debug("Alert stream opened")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Alert stream closed by client")
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("alert", ModelToAlertResponse(&alert))
			c.Writer.Flush()
		case t := <-heartbeat.C:
			c.SSEvent("heartbeat", t.UTC().Format(time.RFC3339))
			c.Writer.Flush()
		}
	}
}
