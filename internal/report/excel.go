package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var reportColumns = []interface{}{
	"product_id", "product_name", "category_name",
	"quantity", "quantity_sold", "revenue", "purchase_date",
}

// writeFile serializes one report page to a uniquely named xlsx file
// and returns its path. Each request gets its own file so concurrent
// reports never interleave writes.
func (b *Builder) writeFile(rows []Row) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &reportColumns); err != nil {
		return "", fmt.Errorf("writing report header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("writing report row: %w", err)
		}
		values := []interface{}{
			row.ProductID, row.ProductName, row.CategoryName,
			row.Quantity, row.QuantitySold, row.Revenue,
			row.PurchaseDate.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("writing report row: %w", err)
		}
	}

	path := filepath.Join(b.outputDir, "stock_report_"+uuid.New().String()+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}
	return path, nil
}
