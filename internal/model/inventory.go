package model

import "time"

// InventoryItem represents the on-hand quantity snapshot for a product
type InventoryItem struct {
	ID          uint      `json:"inventory_id" gorm:"column:inventory_id;primaryKey"`
	ProductID   uint      `json:"product_id"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null"`
	Product     Product   `json:"-" gorm:"foreignKey:ProductID"`
}

// TableName overrides the default table name
func (InventoryItem) TableName() string {
	return "inventory"
}
