package handler

import (
	"io"
	"net/http"
	"os"

	"inventory-service/internal/importer"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ImportHandler serves bulk Excel imports
type ImportHandler struct {
	importer *importer.Importer
}

// NewImportHandler returns an ImportHandler using the given importer
func NewImportHandler(imp *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: imp}
}

// ImportExcel handles POST /api/import. The workbook comes as the
// multipart form field "file"; it is staged to a temp file, imported in
// one transaction, and removed afterwards.
func (h *ImportHandler) ImportExcel(c echo.Context) error {
	log := logger.FromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("No file provided for import", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "No file provided",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "import-*.xlsx")
	if err != nil {
		log.Error("Failed to stage uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to stage uploaded file",
		})
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		log.Error("Failed to stage uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to stage uploaded file",
		})
	}
	if err := tmp.Close(); err != nil {
		log.Error("Failed to stage uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to stage uploaded file",
		})
	}

	summary, err := h.importer.ImportFile(tmp.Name())
	if err != nil {
		log.Error("Bulk import failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		prometheus.RecordImport("error")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Import failed",
			"reason": err.Error(),
		})
	}

	for sheet, count := range summary.Rows {
		prometheus.RecordImportedRows(sheet, count)
	}
	prometheus.RecordImport("ok")

	log.Info("Excel data imported successfully",
		zap.String("filename", fileHeader.Filename),
		zap.Any("rows", summary.Rows))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Excel data loaded successfully",
		"rows":    summary.Rows,
	})
}
