package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
	OrderServed    OrderStatus = "Served"
	OrderCancelled OrderStatus = "Cancelled"
	OrderPaid      OrderStatus = "Paid"
)

// ParseOrderStatus validates a raw status string against the enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled, OrderPaid:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status %q", s)
}

// Order references exactly one DishSnapshot; the unique index on
// DishSnapshotID enforces the 1:1 at the data layer. TenantID must always
// equal the snapshot's source dish tenant.
type Order struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TenantID       uint         `gorm:"not null;index" json:"tenant_id"`
	Tenant         Tenant       `gorm:"foreignKey:TenantID" json:"-"`
	GuestID        *uint        `gorm:"index" json:"guest_id,omitempty"`
	Guest          *Guest       `gorm:"foreignKey:GuestID" json:"-"`
	CustomerID     *uint        `gorm:"index" json:"customer_id,omitempty"`
	Customer       *Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	TableNumber    *int         `gorm:"index" json:"table_number,omitempty"`
	DishSnapshotID uint         `gorm:"uniqueIndex;not null" json:"dish_snapshot_id"`
	DishSnapshot   DishSnapshot `gorm:"foreignKey:DishSnapshotID" json:"dish_snapshot"`
	Quantity       int          `gorm:"not null" json:"quantity"`
	Notes          string       `gorm:"type:text" json:"notes,omitempty"`
	OrderHandlerID *uint        `gorm:"index" json:"order_handler_id,omitempty"`
	OrderHandler   *Account     `gorm:"foreignKey:OrderHandlerID" json:"-"`
	Status         OrderStatus  `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt      time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}
