package report

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate reports a date filter that does not parse as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// Params are the filters and page window for a stock report request.
// StartDate and EndDate are YYYY-MM-DD strings; empty means no bound.
// A zero CategoryID means no category filter.
type Params struct {
	StartDate  string
	EndDate    string
	CategoryID uint
	Page       int
	PageSize   int
}

// Row is one denormalized line of the stock report
type Row struct {
	ProductID    uint      `json:"product_id" gorm:"column:product_id"`
	ProductName  string    `json:"product_name" gorm:"column:product_name"`
	CategoryName string    `json:"category_name" gorm:"column:category_name"`
	Quantity     int       `json:"quantity" gorm:"column:quantity"`
	QuantitySold int       `json:"quantity_sold" gorm:"column:quantity_sold"`
	Revenue      float64   `json:"revenue" gorm:"column:revenue"`
	PurchaseDate time.Time `json:"purchase_date" gorm:"column:purchase_date"`
}

// Result is one report page plus the pre-pagination total
type Result struct {
	Rows     []Row  `json:"data"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	File     string `json:"report_file"`
}

// Builder produces paginated stock reports and writes each requested
// page to an xlsx file under outputDir.
type Builder struct {
	db        *gorm.DB
	outputDir string
}

// NewBuilder returns a Builder bound to the given database handle
func NewBuilder(db *gorm.DB, outputDir string) *Builder {
	return &Builder{db: db, outputDir: outputDir}
}

// Build runs the report query and writes the page to a request-scoped
// xlsx file. Total is counted before pagination is applied.
func (b *Builder) Build(params Params) (*Result, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}

	var start, end *time.Time
	if params.StartDate != "" {
		t, err := time.Parse(dateLayout, params.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", ErrInvalidDate, params.StartDate)
		}
		start = &t
	}
	if params.EndDate != "" {
		t, err := time.Parse(dateLayout, params.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date %q", ErrInvalidDate, params.EndDate)
		}
		end = &t
	}

	var total int64
	if err := b.query(start, end, params.CategoryID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting report rows: %w", err)
	}

	rows := []Row{}
	err := b.query(start, end, params.CategoryID).
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying report rows: %w", err)
	}

	path, err := b.writeFile(rows)
	if err != nil {
		return nil, err
	}

	return &Result{
		Rows:     rows,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		File:     path,
	}, nil
}

// query builds the joined, filtered report query. Date bounds compare
// against parsed midnight timestamps, so records later in the end day
// fall outside the range; callers wanting the whole end day pass the
// following date.
func (b *Builder) query(start, end *time.Time, categoryID uint) *gorm.DB {
	q := b.db.Table("products").
		Select("products.product_id, products.name AS product_name, categories.name AS category_name, " +
			"inventory.quantity, purchase_items.quantity AS quantity_sold, " +
			"purchase_items.total_price AS revenue, purchases.purchase_date").
		Joins("JOIN inventory ON inventory.product_id = products.product_id").
		Joins("JOIN categories ON categories.category_id = products.category_id").
		Joins("JOIN purchase_items ON purchase_items.product_id = products.product_id").
		Joins("JOIN purchases ON purchases.purchase_id = purchase_items.purchase_id")

	if start != nil {
		q = q.Where("purchases.purchase_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("purchases.purchase_date <= ?", *end)
	}
	if categoryID != 0 {
		q = q.Where("products.category_id = ?", categoryID)
	}
	return q
}
