package model

import "time"

// Restock represents a supplier delivery header
type Restock struct {
	ID          uint      `json:"restock_id" gorm:"column:restock_id;primaryKey"`
	SupplierID  uint      `json:"supplier_id"`
	RestockDate time.Time `json:"restock_date" gorm:"not null"`
	Supplier    Supplier  `json:"-" gorm:"foreignKey:SupplierID"`
}

// TableName overrides the default table name
func (Restock) TableName() string {
	return "restocks"
}

// RestockItem represents a single delivered line of a restock
type RestockItem struct {
	ID        uint    `json:"restock_item_id" gorm:"column:restock_item_id;primaryKey"`
	RestockID uint    `json:"restock_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitCost  float64 `json:"unit_cost" gorm:"type:decimal(10,2);not null"`
	Restock   Restock `json:"-" gorm:"foreignKey:RestockID"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID"`
}

// TableName overrides the default table name
func (RestockItem) TableName() string {
	return "restock_items"
}
