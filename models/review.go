package models

import "time"

// Review is a customer's rating of a tenant.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	Tenant     Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
