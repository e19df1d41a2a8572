package models

import "time"

// Guest is an ephemeral per-table principal bootstrapped from a table QR
// token. Guests have no password; their refresh token lives on the row itself.
type Guest struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	TenantID              uint       `gorm:"not null;index" json:"tenant_id"`
	Tenant                Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Name                  string     `gorm:"type:varchar(255);not null" json:"name"`
	TableNumber           *int       `gorm:"index" json:"table_number,omitempty"`
	RefreshToken          *string    `gorm:"type:varchar(512)" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"not null" json:"updated_at"`
}
