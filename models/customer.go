package models

import "time"

type MembershipTier string

const (
	TierIron    MembershipTier = "Iron"
	TierSilver  MembershipTier = "Silver"
	TierGold    MembershipTier = "Gold"
	TierDiamond MembershipTier = "Diamond"
)

// Spending thresholds in currency minor units.
const (
	SilverThreshold  int64 = 1_000_000
	GoldThreshold    int64 = 5_000_000
	DiamondThreshold int64 = 10_000_000
)

// TierForSpending maps cumulative spending to a membership tier. Always a
// full recomputation so a single payment can jump several tiers at once.
func TierForSpending(totalSpending int64) MembershipTier {
	switch {
	case totalSpending >= DiamondThreshold:
		return TierDiamond
	case totalSpending >= GoldThreshold:
		return TierGold
	case totalSpending >= SilverThreshold:
		return TierSilver
	default:
		return TierIron
	}
}

// Customer is a mobile-app user. TotalSpending and Points only ever grow;
// MembershipTier is derived from TotalSpending on every accrual.
type Customer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password       string         `gorm:"type:varchar(255);not null" json:"-"`
	Phone          string         `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Avatar         string         `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	MembershipTier MembershipTier `gorm:"type:varchar(20);not null;default:'Iron'" json:"membership_tier"`
	TotalSpending  int64          `gorm:"not null;default:0" json:"total_spending"`
	Points         int64          `gorm:"not null;default:0" json:"points"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}
