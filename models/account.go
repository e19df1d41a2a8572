package models

import "time"

type AccountRole string

const (
	RoleAdmin    AccountRole = "Admin"
	RoleOwner    AccountRole = "Owner"
	RoleManager  AccountRole = "Manager"
	RoleEmployee AccountRole = "Employee"
	RoleCashier  AccountRole = "Cashier"
	RoleKitchen  AccountRole = "Kitchen"
)

// Account is a staff user. TenantID is nil only for platform admins.
type Account struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	TenantID  *uint       `gorm:"index" json:"tenant_id,omitempty"`
	Tenant    *Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Email     string      `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string      `gorm:"type:varchar(255);not null" json:"-"`
	Avatar    string      `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Role      AccountRole `gorm:"type:varchar(20);not null;default:'Employee'" json:"role"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

// RefreshToken is the server-side record of the single active refresh token
// per staff account. Rotation replaces the row, so a rotated-out token fails
// even before its signature expires.
type RefreshToken struct {
	Token     string    `gorm:"type:varchar(512);primaryKey" json:"token"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Account   Account   `gorm:"foreignKey:AccountID" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
