package model

// Supplier represents a goods supplier
type Supplier struct {
	ID           uint    `json:"supplier_id" gorm:"column:supplier_id;primaryKey"`
	Name         string  `json:"name" gorm:"type:varchar(100);not null"`
	ContactEmail *string `json:"contact_email,omitempty" gorm:"type:varchar(100)"`
	Phone        *string `json:"phone,omitempty" gorm:"type:varchar(20)"`
}

// TableName overrides the default table name
func (Supplier) TableName() string {
	return "suppliers"
}
