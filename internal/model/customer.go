package model

import "time"

// Customer represents a registered buyer
type Customer struct {
	ID           uint      `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	FullName     string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Email        *string   `json:"email,omitempty" gorm:"type:varchar(100)"`
	RegisteredAt time.Time `json:"registered_at" gorm:"not null"`
}

// TableName overrides the default table name
func (Customer) TableName() string {
	return "customers"
}
