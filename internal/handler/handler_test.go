package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"inventory-service/internal/importer"
	"inventory-service/internal/model"
	"inventory-service/internal/report"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database object: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()

	records := []interface{}{
		&model.Category{ID: 1, Name: "Tools"},
		&model.Product{ID: 10, Name: "Hammer", CategoryID: 1, Price: 9.99, Unit: "pcs"},
		&model.Customer{ID: 1, FullName: "Ada Brown", RegisteredAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		&model.InventoryItem{ID: 100, ProductID: 10, Quantity: 5, LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		&model.Purchase{ID: 1, CustomerID: 1, PurchaseDate: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), TotalAmount: 19.98},
		&model.PurchaseItem{ID: 1, PurchaseID: 1, ProductID: 10, Quantity: 2, UnitPrice: 9.99, TotalPrice: 19.98},
	}
	for _, rec := range records {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}
	}
}

func TestReportHandler_GetStockReport(t *testing.T) {
	db := setupTestDB(t)
	seedReportData(t, db)
	h := NewReportHandler(report.NewBuilder(db, t.TempDir()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/report?start_date=2024-01-01&end_date=2024-01-31&page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetStockReport(c); err != nil {
		t.Fatalf("GetStockReport() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result report.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Total != 1 || len(result.Rows) != 1 {
		t.Errorf("expected 1 matching row, got total %d rows %d", result.Total, len(result.Rows))
	}
	if result.Rows[0].ProductName != "Hammer" {
		t.Errorf("expected Hammer, got %q", result.Rows[0].ProductName)
	}
	if result.File == "" {
		t.Error("expected a report file path in the response")
	}
}

func TestReportHandler_InvalidDate(t *testing.T) {
	db := setupTestDB(t)
	h := NewReportHandler(report.NewBuilder(db, t.TempDir()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/report?start_date=not-a-date", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetStockReport(c); err != nil {
		t.Fatalf("GetStockReport() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

// importRequest builds a multipart POST with the workbook as the "file" field
func importRequest(t *testing.T, workbookPath string) *http.Request {
	t.Helper()

	data, err := os.ReadFile(workbookPath)
	if err != nil {
		t.Fatalf("failed to read workbook: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(workbookPath))
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestImportHandler_ImportExcel(t *testing.T) {
	db := setupTestDB(t)
	h := NewImportHandler(importer.New(db))
	e := echo.New()

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), "categories")
	if err := f.SetSheetRow("categories", "A1", &[]interface{}{"category_id", "name"}); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	if err := f.SetSheetRow("categories", "A2", &[]interface{}{1, "Tools"}); err != nil {
		t.Fatalf("failed to write row: %v", err)
	}
	path := filepath.Join(t.TempDir(), "categories.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	f.Close()

	rec := httptest.NewRecorder()
	c := e.NewContext(importRequest(t, path), rec)

	if err := h.ImportExcel(c); err != nil {
		t.Fatalf("ImportExcel() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 category imported, got %d", count)
	}
}

func TestImportHandler_MissingFile(t *testing.T) {
	db := setupTestDB(t)
	h := NewImportHandler(importer.New(db))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImportExcel(c); err != nil {
		t.Fatalf("ImportExcel() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
