package models

import "time"

// Default bounds for variable-grant products, in cents.
const (
	DefaultMinGrantCents = 10_00
	DefaultMaxGrantCents = 100_00
)

// Product is a catalog entry. Fixed-price products charge CostCredits (or
// PriceCurrency times CreditsPerDollar when both are set, or PriceCurrency
// alone). Variable-grant products charge a user-chosen dollar amount times
// CreditsPerDollar, bounded by the grant range.
type Product struct {
	ID               uint `gorm:"primarykey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Name             string   `gorm:"type:varchar(200);not null"`
	Description      string   `gorm:"type:text"`
	PriceCurrency    *float64 `gorm:"type:decimal(20,2)"`
	CostCredits      *float64 `gorm:"type:decimal(20,2)"`
	CreditsPerDollar *float64 `gorm:"type:decimal(20,4)"`
	VariableGrant    bool     `gorm:"not null;default:false"`
	GrantMinCents    *int
	GrantMaxCents    *int
}

func (p *Product) GrantMin() int {
	if p.GrantMinCents != nil {
		return *p.GrantMinCents
	}
	return DefaultMinGrantCents
}

func (p *Product) GrantMax() int {
	if p.GrantMaxCents != nil {
		return *p.GrantMaxCents
	}
	return DefaultMaxGrantCents
}

// CostInCredits returns the charge for a fixed-price product.
func (p *Product) CostInCredits() float64 {
	if p.CostCredits != nil {
		return *p.CostCredits
	}
	if p.PriceCurrency == nil {
		return 0
	}
	if p.CreditsPerDollar != nil {
		return *p.PriceCurrency * *p.CreditsPerDollar
	}
	return *p.PriceCurrency
}

// CreditsForCents converts a grant amount in cents into credits.
func (p *Product) CreditsForCents(cents int) float64 {
	if p.CreditsPerDollar == nil {
		return 0
	}
	return float64(cents) / 100.0 * *p.CreditsPerDollar
}
