package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary List user reports
// @Description Get user reports newest first
// @Tags UserReports
// @Produce json
// @Success 200 {array} UserReportResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user-reports [get]
func (h *Handler) listUserReports(c *gin.Context) {
	log := h.logger.WithField("method", "listUserReports")

	reports, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusOK, ModelsToUserReportResponses(reports))
}

// @Summary Get user report by ID
// @Tags UserReports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} UserReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user-reports/{id} [get]
func (h *Handler) getUserReport(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getUserReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelToUserReportResponse(report))
}

// @Summary Submit a user report
// @Description Submit a report about a place. Reports with category "incident" also raise a warning alert.
// @Tags UserReports
// @Accept json
// @Produce json
// @Param report body CreateUserReportRequest true "User report"
// @Success 201 {object} UserReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user-reports [post]
func (h *Handler) createUserReport(c *gin.Context) {
	var input CreateUserReportRequest
	log := h.logger.WithField("method", "createUserReport")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToUserReportModel(input)
	if err := h.reportService.CreateReport(c.Request.Context(), model); err != nil {
		respondError(c, log, err, "")
		return
	}
	c.JSON(http.StatusCreated, ModelToUserReportResponse(model))
}
