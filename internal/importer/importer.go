package importer

import (
	"fmt"

	"inventory-service/internal/model"
	"inventory-service/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Importer loads a multi-sheet workbook into the store, one upsert per
// row, inside a single transaction.
type Importer struct {
	db  *gorm.DB
	log *zap.Logger
}

// Summary reports how many rows each sheet contributed
type Summary struct {
	Rows map[string]int `json:"rows"`
}

// New returns an Importer bound to the given database handle
func New(db *gorm.DB) *Importer {
	return &Importer{db: db, log: logger.GetLogger()}
}

// sheetLoader ties a sheet name to its typed upsert loop. The slice
// order is the foreign-key dependency order: dimension sheets load
// before the fact sheets that reference them.
type sheetLoader struct {
	name string
	load func(tx *gorm.DB, s *sheet) (int, error)
}

var loaders = []sheetLoader{
	{"categories", loadCategories},
	{"products", loadProducts},
	{"customers", loadCustomers},
	{"suppliers", loadSuppliers},
	{"inventory", loadInventory},
	{"purchases", loadPurchases},
	{"purchase_items", loadPurchaseItems},
	{"restocks", loadRestocks},
	{"restock_items", loadRestockItems},
}

// ImportFile upserts every known sheet of the workbook at path. Absent
// sheets are skipped. Any parse or store error rolls the whole import
// back and leaves the store unchanged.
func (im *Importer) ImportFile(path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	summary := &Summary{Rows: map[string]int{}}
	err = im.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range loaders {
			s, err := readSheet(f, l.name)
			if err != nil {
				return err
			}
			if s == nil {
				continue
			}
			count, err := l.load(tx, s)
			if err != nil {
				return err
			}
			summary.Rows[l.name] = count
			im.log.Info("Imported sheet",
				zap.String("file", path),
				zap.String("sheet", l.name),
				zap.Int("rows", count))
		}
		return nil
	})
	if err != nil {
		im.log.Error("Bulk import failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}
	return summary, nil
}

// upsert inserts the record or overwrites the existing row with the
// same primary key.
func upsert(tx *gorm.DB, s *sheet, pkColumn string, value interface{}) error {
	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: pkColumn}},
			UpdateAll: true,
		}).
		Create(value).Error
	if err != nil {
		return fmt.Errorf("upserting %s row: %w", s.name, err)
	}
	return nil
}

// eachRow runs fn over the data rows of s, skipping fully blank rows.
// Worksheet row numbers start at 2 because row 1 is the header.
func eachRow(s *sheet, fn func(r row) error) (int, error) {
	count := 0
	for i, data := range s.rows {
		r := row{sheet: s, index: i + 2, data: data}
		if r.blank() {
			continue
		}
		if err := fn(r); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func loadCategories(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("category_id")
		if err != nil {
			return err
		}
		rec := model.Category{
			ID:   id,
			Name: r.cell("name"),
		}
		return upsert(tx, s, "category_id", &rec)
	})
}

func loadProducts(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("product_id")
		if err != nil {
			return err
		}
		categoryID, err := r.uintCell("category_id")
		if err != nil {
			return err
		}
		price, err := r.floatCell("price")
		if err != nil {
			return err
		}
		rec := model.Product{
			ID:         id,
			Name:       r.cell("name"),
			CategoryID: categoryID,
			Price:      price,
			Unit:       r.cell("unit"),
		}
		return upsert(tx, s, "product_id", &rec)
	})
}

func loadCustomers(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("customer_id")
		if err != nil {
			return err
		}
		registeredAt, err := r.timeCell("registered_at")
		if err != nil {
			return err
		}
		rec := model.Customer{
			ID:           id,
			FullName:     r.cell("full_name"),
			Phone:        r.optStringCell("phone"),
			Email:        r.optStringCell("email"),
			RegisteredAt: registeredAt,
		}
		return upsert(tx, s, "customer_id", &rec)
	})
}

func loadSuppliers(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("supplier_id")
		if err != nil {
			return err
		}
		rec := model.Supplier{
			ID:           id,
			Name:         r.cell("name"),
			ContactEmail: r.optStringCell("contact_email"),
			Phone:        r.optStringCell("phone"),
		}
		return upsert(tx, s, "supplier_id", &rec)
	})
}

func loadInventory(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("inventory_id")
		if err != nil {
			return err
		}
		productID, err := r.uintCell("product_id")
		if err != nil {
			return err
		}
		quantity, err := r.intCell("quantity")
		if err != nil {
			return err
		}
		lastUpdated, err := r.timeCell("last_updated")
		if err != nil {
			return err
		}
		rec := model.InventoryItem{
			ID:          id,
			ProductID:   productID,
			Quantity:    quantity,
			LastUpdated: lastUpdated,
		}
		return upsert(tx, s, "inventory_id", &rec)
	})
}

func loadPurchases(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("purchase_id")
		if err != nil {
			return err
		}
		customerID, err := r.uintCell("customer_id")
		if err != nil {
			return err
		}
		purchaseDate, err := r.timeCell("purchase_date")
		if err != nil {
			return err
		}
		totalAmount, err := r.floatCell("total_amount")
		if err != nil {
			return err
		}
		rec := model.Purchase{
			ID:           id,
			CustomerID:   customerID,
			PurchaseDate: purchaseDate,
			TotalAmount:  totalAmount,
		}
		return upsert(tx, s, "purchase_id", &rec)
	})
}

func loadPurchaseItems(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("purchase_item_id")
		if err != nil {
			return err
		}
		purchaseID, err := r.uintCell("purchase_id")
		if err != nil {
			return err
		}
		productID, err := r.uintCell("product_id")
		if err != nil {
			return err
		}
		quantity, err := r.intCell("quantity")
		if err != nil {
			return err
		}
		unitPrice, err := r.floatCell("unit_price")
		if err != nil {
			return err
		}
		totalPrice, err := r.floatCell("total_price")
		if err != nil {
			return err
		}
		rec := model.PurchaseItem{
			ID:         id,
			PurchaseID: purchaseID,
			ProductID:  productID,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		}
		return upsert(tx, s, "purchase_item_id", &rec)
	})
}

func loadRestocks(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("restock_id")
		if err != nil {
			return err
		}
		supplierID, err := r.uintCell("supplier_id")
		if err != nil {
			return err
		}
		restockDate, err := r.timeCell("restock_date")
		if err != nil {
			return err
		}
		rec := model.Restock{
			ID:          id,
			SupplierID:  supplierID,
			RestockDate: restockDate,
		}
		return upsert(tx, s, "restock_id", &rec)
	})
}

func loadRestockItems(tx *gorm.DB, s *sheet) (int, error) {
	return eachRow(s, func(r row) error {
		id, err := r.uintCell("restock_item_id")
		if err != nil {
			return err
		}
		restockID, err := r.uintCell("restock_id")
		if err != nil {
			return err
		}
		productID, err := r.uintCell("product_id")
		if err != nil {
			return err
		}
		quantity, err := r.intCell("quantity")
		if err != nil {
			return err
		}
		unitCost, err := r.floatCell("unit_cost")
		if err != nil {
			return err
		}
		rec := model.RestockItem{
			ID:        id,
			RestockID: restockID,
			ProductID: productID,
			Quantity:  quantity,
			UnitCost:  unitCost,
		}
		return upsert(tx, s, "restock_item_id", &rec)
	})
}
