package models

import "time"

// VisitDayFormat is the layout of the VisitDay column (UTC calendar day).
const VisitDayFormat = "2006-01-02"

// CustomerHistory is one visit: same-day paid orders for a customer at a
// tenant merge into a single row. The (customer, tenant, visit_day) unique
// index enforces that at the data layer, so two concurrent payments cannot
// open two rows for the same day.
type CustomerHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index;uniqueIndex:uq_visit_day" json:"customer_id"`
	Customer    Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	TenantID    uint      `gorm:"not null;index;uniqueIndex:uq_visit_day" json:"tenant_id"`
	Tenant      Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	OrderID     *uint     `json:"order_id,omitempty"`
	DishIDs     UintSlice `gorm:"type:text" json:"dish_ids"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"`
	VisitDate   time.Time `gorm:"not null;index" json:"visit_date"`
	VisitDay    string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_visit_day" json:"-"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
