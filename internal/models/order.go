package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusDenied  OrderStatus = "denied"
	OrderStatusShipped OrderStatus = "shipped"
)

// Order is a purchase request against the product catalog. Cost is computed
// once at creation and frozen; creation deducts it from the buyer's balance
// and denial refunds it exactly once.
//
// A partial unique index on (user_id, product_id) where status = 'pending'
// is the authoritative guard against duplicate pending orders; it is created
// by database.Migrate.
type Order struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	// PublicID is the opaque identifier shown to users and searchable in the
	// admin console with a "!" prefix.
	PublicID  string `gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Cost      float64     `gorm:"type:decimal(20,2);not null;default:0"`
}

func (o *Order) Pending() bool { return o.Status == OrderStatusPending }
func (o *Order) Denied() bool  { return o.Status == OrderStatusDenied }
func (o *Order) Shipped() bool { return o.Status == OrderStatusShipped }
