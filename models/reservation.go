package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

// Reservation is a customer's booking at a tenant.
type Reservation struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CustomerID  uint              `gorm:"not null;index" json:"customer_id"`
	Customer    Customer          `gorm:"foreignKey:CustomerID" json:"-"`
	TenantID    uint              `gorm:"not null;index" json:"tenant_id"`
	Tenant      Tenant            `gorm:"foreignKey:TenantID" json:"-"`
	PartySize   int               `gorm:"not null" json:"party_size"`
	ReservedFor time.Time         `gorm:"not null;index" json:"reserved_for"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	Status      ReservationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}
