package models

import "time"

type DishStatus string

const (
	DishAvailable   DishStatus = "Available"
	DishUnavailable DishStatus = "Unavailable"
	DishOutOfStock  DishStatus = "OutOfStock"
)

// Dish is a tenant-scoped catalog entry. Price is in currency minor units.
type Dish struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	Tenant      Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64      `gorm:"not null" json:"price"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `gorm:"type:varchar(255)" json:"image"`
	Category    string     `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Status      DishStatus `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// DishSnapshot freezes a dish's sellable attributes at order time. Rows are
// written once and never updated, which is what keeps historical order
// pricing independent of later catalog edits.
type DishSnapshot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DishID      *uint     `gorm:"index" json:"dish_id,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64     `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Category    string    `gorm:"type:varchar(100)" json:"category,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// SnapshotOf copies the dish's current fields into a fresh snapshot.
func SnapshotOf(d *Dish) DishSnapshot {
	dishID := d.ID
	return DishSnapshot{
		DishID:      &dishID,
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		Status:      string(d.Status),
	}
}
