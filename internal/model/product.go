package model

// Category represents a product category dimension
type Category struct {
	ID   uint   `json:"category_id" gorm:"column:category_id;primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
}

// TableName overrides the default table name
func (Category) TableName() string {
	return "categories"
}

// Product represents the product master data
type Product struct {
	ID         uint     `json:"product_id" gorm:"column:product_id;primaryKey"`
	Name       string   `json:"name" gorm:"type:varchar(100);not null"`
	CategoryID uint     `json:"category_id"`
	Price      float64  `json:"price" gorm:"type:decimal(10,2);not null"`
	Unit       string   `json:"unit" gorm:"type:varchar(10);not null"`
	Category   Category `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName overrides the default table name
func (Product) TableName() string {
	return "products"
}
