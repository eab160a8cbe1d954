package model

import "time"

// Purchase represents a customer order header
type Purchase struct {
	ID           uint      `json:"purchase_id" gorm:"column:purchase_id;primaryKey"`
	CustomerID   uint      `json:"customer_id"`
	PurchaseDate time.Time `json:"purchase_date" gorm:"not null"`
	TotalAmount  float64   `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Customer     Customer  `json:"-" gorm:"foreignKey:CustomerID"`
}

// TableName overrides the default table name
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents a single sold line of a purchase.
// TotalPrice is expected to be Quantity * UnitPrice but is not enforced here.
type PurchaseItem struct {
	ID         uint     `json:"purchase_item_id" gorm:"column:purchase_item_id;primaryKey"`
	PurchaseID uint     `json:"purchase_id"`
	ProductID  uint     `json:"product_id"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	UnitPrice  float64  `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice float64  `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Purchase   Purchase `json:"-" gorm:"foreignKey:PurchaseID"`
	Product    Product  `json:"-" gorm:"foreignKey:ProductID"`
}

// TableName overrides the default table name
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
