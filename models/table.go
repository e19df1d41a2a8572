package models

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
	TableReserved  TableStatus = "Reserved"
	TableCleaning  TableStatus = "Cleaning"
)

// Table numbers are tenant-local: the primary key is (number, tenant_id).
// Token is the unguessable QR token printed on the physical table.
type Table struct {
	Number    int         `gorm:"primaryKey;autoIncrement:false" json:"number"`
	TenantID  uint        `gorm:"primaryKey;autoIncrement:false" json:"tenant_id"`
	Tenant    Tenant      `gorm:"foreignKey:TenantID" json:"-"`
	Capacity  int         `gorm:"not null" json:"capacity"`
	Status    TableStatus `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	Token     string      `gorm:"type:varchar(255);unique;not null" json:"token,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}
