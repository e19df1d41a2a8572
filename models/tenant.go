package models

import "time"

type TenantStatus string

const (
	TenantActive    TenantStatus = "Active"
	TenantSuspended TenantStatus = "Suspended"
	TenantInactive  TenantStatus = "Inactive"
)

type SubscriptionType string

const (
	SubscriptionFree    SubscriptionType = "Free"
	SubscriptionBasic   SubscriptionType = "Basic"
	SubscriptionPremium SubscriptionType = "Premium"
)

// Tenant is the multi-tenancy root: every dish, table, staff account and
// order hangs off exactly one tenant.
type Tenant struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"type:varchar(255);not null" json:"name"`
	Slug         string           `gorm:"type:varchar(255);unique;not null" json:"slug"`
	Email        string           `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone        string           `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address      string           `gorm:"type:varchar(255)" json:"address,omitempty"`
	Logo         string           `gorm:"type:varchar(255)" json:"logo,omitempty"`
	Description  string           `gorm:"type:text" json:"description,omitempty"`
	Status       TenantStatus     `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	Subscription SubscriptionType `gorm:"type:varchar(20);not null;default:'Free'" json:"subscription"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}
