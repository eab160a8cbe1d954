package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/report"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandler serves the paginated stock report
type ReportHandler struct {
	builder *report.Builder
}

// NewReportHandler returns a ReportHandler using the given builder
func NewReportHandler(builder *report.Builder) *ReportHandler {
	return &ReportHandler{builder: builder}
}

// GetStockReport handles GET /api/report. Query parameters: start_date,
// end_date (YYYY-MM-DD), category_id, page, page_size.
func (h *ReportHandler) GetStockReport(c echo.Context) error {
	log := logger.FromContext(c)

	params := report.Params{
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
		Page:      intQueryParam(c, "page", 1),
		PageSize:  intQueryParam(c, "page_size", 10),
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Warn("Invalid category_id", zap.String("category_id", raw))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid category_id",
			})
		}
		params.CategoryID = uint(id)
	}

	defer prometheus.TrackDBOperation("stock_report")(time.Now())

	result, err := h.builder.Build(params)
	if err != nil {
		if errors.Is(err, report.ErrInvalidDate) {
			log.Warn("Invalid report date filter", zap.Error(err))
			prometheus.RecordReportRequest("invalid")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}
		log.Error("Failed to generate stock report", zap.Error(err))
		prometheus.RecordReportRequest("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to generate stock report",
		})
	}

	prometheus.RecordReportRequest("ok")
	prometheus.ReportRowsHistogram.Observe(float64(len(result.Rows)))
	log.Info("Stock report generated",
		zap.Int("page", result.Page),
		zap.Int("page_size", result.PageSize),
		zap.Int64("total", result.Total),
		zap.String("report_file", result.File))
	return c.JSON(http.StatusOK, result)
}

// intQueryParam parses a positive integer query parameter, falling back
// to the default on absence or garbage.
func intQueryParam(c echo.Context, name string, defaultValue int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
