package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with foreign keys
// enforced, mirroring the constraints Postgres applies in production.
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

type sheetData struct {
	name string
	rows [][]interface{}
}

// writeWorkbook builds an xlsx file from the given sheets and returns its path
func writeWorkbook(t *testing.T, sheets []sheetData) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), s.name)
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				t.Fatalf("failed to create sheet %q: %v", s.name, err)
			}
		}
		for rowIdx := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetSheetRow(s.name, cell, &s.rows[rowIdx]); err != nil {
				t.Fatalf("failed to write row to sheet %q: %v", s.name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func fullWorkbook(t *testing.T) string {
	return writeWorkbook(t, []sheetData{
		{"categories", [][]interface{}{
			{"category_id", "name"},
			{1, "Tools"},
		}},
		{"products", [][]interface{}{
			{"product_id", "name", "category_id", "price", "unit"},
			{10, "Hammer", 1, 9.99, "pcs"},
		}},
		{"customers", [][]interface{}{
			{"customer_id", "full_name", "phone", "email", "registered_at"},
			{1, "Ada Brown", "", "ada@example.com", "2023-06-01 00:00:00"},
		}},
		{"suppliers", [][]interface{}{
			{"supplier_id", "name", "contact_email", "phone"},
			{1, "Hardware Ltd", "sales@hardware.example", ""},
		}},
		{"inventory", [][]interface{}{
			{"inventory_id", "product_id", "quantity", "last_updated"},
			{100, 10, 5, "2024-01-01"},
		}},
		{"purchases", [][]interface{}{
			{"purchase_id", "customer_id", "purchase_date", "total_amount"},
			{1, 1, "2024-01-15 12:30:00", 19.98},
		}},
		{"purchase_items", [][]interface{}{
			{"purchase_item_id", "purchase_id", "product_id", "quantity", "unit_price", "total_price"},
			{1, 1, 10, 2, 9.99, 19.98},
		}},
		{"restocks", [][]interface{}{
			{"restock_id", "supplier_id", "restock_date"},
			{1, 1, "2024-01-10"},
		}},
		{"restock_items", [][]interface{}{
			{"restock_item_id", "restock_id", "product_id", "quantity", "unit_cost"},
			{1, 1, 10, 20, 5.25},
		}},
	})
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestImporter_ImportsAllSheets(t *testing.T) {
	db := setupTestDB(t)
	path := fullWorkbook(t)

	summary, err := New(db).ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	for _, sheet := range []string{
		"categories", "products", "customers", "suppliers", "inventory",
		"purchases", "purchase_items", "restocks", "restock_items",
	} {
		if summary.Rows[sheet] != 1 {
			t.Errorf("expected 1 row imported for %s, got %d", sheet, summary.Rows[sheet])
		}
	}

	var product model.Product
	if err := db.First(&product, "product_id = ?", 10).Error; err != nil {
		t.Fatalf("failed to find imported product: %v", err)
	}
	if product.Name != "Hammer" || product.Price != 9.99 || product.Unit != "pcs" {
		t.Errorf("unexpected product fields: %+v", product)
	}

	var customer model.Customer
	if err := db.First(&customer, "customer_id = ?", 1).Error; err != nil {
		t.Fatalf("failed to find imported customer: %v", err)
	}
	if customer.Phone != nil {
		t.Errorf("expected blank phone cell to import as nil, got %q", *customer.Phone)
	}
	if customer.Email == nil || *customer.Email != "ada@example.com" {
		t.Errorf("expected email to be set, got %v", customer.Email)
	}

	var supplier model.Supplier
	if err := db.First(&supplier, "supplier_id = ?", 1).Error; err != nil {
		t.Fatalf("failed to find imported supplier: %v", err)
	}
	if supplier.Phone != nil {
		t.Errorf("expected blank supplier phone to import as nil, got %q", *supplier.Phone)
	}
}

func TestImporter_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	path := fullWorkbook(t)
	imp := New(db)

	if _, err := imp.ImportFile(path); err != nil {
		t.Fatalf("first ImportFile() error = %v", err)
	}
	if _, err := imp.ImportFile(path); err != nil {
		t.Fatalf("second ImportFile() error = %v", err)
	}

	if count := countRows(t, db, &model.Product{}); count != 1 {
		t.Errorf("expected 1 product after re-import, got %d", count)
	}
	if count := countRows(t, db, &model.PurchaseItem{}); count != 1 {
		t.Errorf("expected 1 purchase item after re-import, got %d", count)
	}
}

func TestImporter_UpsertOverwritesByKey(t *testing.T) {
	db := setupTestDB(t)
	imp := New(db)

	if _, err := imp.ImportFile(fullWorkbook(t)); err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	updated := writeWorkbook(t, []sheetData{
		{"products", [][]interface{}{
			{"product_id", "name", "category_id", "price", "unit"},
			{10, "Sledgehammer", 1, 24.99, "pcs"},
		}},
	})
	if _, err := imp.ImportFile(updated); err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}

	if count := countRows(t, db, &model.Product{}); count != 1 {
		t.Fatalf("expected upsert to overwrite, got %d products", count)
	}
	var product model.Product
	if err := db.First(&product, "product_id = ?", 10).Error; err != nil {
		t.Fatalf("failed to find product: %v", err)
	}
	if product.Name != "Sledgehammer" || product.Price != 24.99 {
		t.Errorf("expected overwritten fields, got %+v", product)
	}
}

func TestImporter_MissingDimensionRollsBack(t *testing.T) {
	db := setupTestDB(t)

	// inventory references a product that no sheet provides
	path := writeWorkbook(t, []sheetData{
		{"categories", [][]interface{}{
			{"category_id", "name"},
			{1, "Tools"},
		}},
		{"inventory", [][]interface{}{
			{"inventory_id", "product_id", "quantity", "last_updated"},
			{100, 999, 5, "2024-01-01"},
		}},
	})

	if _, err := New(db).ImportFile(path); err == nil {
		t.Fatal("expected import to fail on unresolved foreign key")
	}

	if count := countRows(t, db, &model.Category{}); count != 0 {
		t.Errorf("expected rollback to discard the categories sheet, got %d rows", count)
	}
	if count := countRows(t, db, &model.InventoryItem{}); count != 0 {
		t.Errorf("expected no inventory rows, got %d", count)
	}
}

func TestImporter_BadCellRollsBack(t *testing.T) {
	db := setupTestDB(t)

	path := writeWorkbook(t, []sheetData{
		{"categories", [][]interface{}{
			{"category_id", "name"},
			{1, "Tools"},
		}},
		{"products", [][]interface{}{
			{"product_id", "name", "category_id", "price", "unit"},
			{10, "Hammer", 1, "expensive", "pcs"},
		}},
	})

	_, err := New(db).ImportFile(path)
	if !errors.Is(err, ErrBadCell) {
		t.Fatalf("expected ErrBadCell, got %v", err)
	}

	if count := countRows(t, db, &model.Category{}); count != 0 {
		t.Errorf("expected rollback to discard the categories sheet, got %d rows", count)
	}
}

func TestImporter_AbsentSheetsSkipped(t *testing.T) {
	db := setupTestDB(t)

	path := writeWorkbook(t, []sheetData{
		{"categories", [][]interface{}{
			{"category_id", "name"},
			{1, "Tools"},
			{2, "Paint"},
		}},
	})

	summary, err := New(db).ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if summary.Rows["categories"] != 2 {
		t.Errorf("expected 2 categories imported, got %d", summary.Rows["categories"])
	}
	if _, ok := summary.Rows["products"]; ok {
		t.Error("expected absent products sheet to be skipped entirely")
	}
}

func TestImporter_SkipsBlankRows(t *testing.T) {
	db := setupTestDB(t)

	path := writeWorkbook(t, []sheetData{
		{"categories", [][]interface{}{
			{"category_id", "name"},
			{1, "Tools"},
			{"", ""},
			{2, "Paint"},
		}},
	})

	summary, err := New(db).ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if summary.Rows["categories"] != 2 {
		t.Errorf("expected blank row to be skipped, got %d rows", summary.Rows["categories"])
	}
}
