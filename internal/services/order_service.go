package services

import (
	"errors"
	"strings"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrDuplicatePendingOrder = errors.New("user already has a pending order for this product")
	ErrInvalidGrantAmount    = errors.New("grant amount is outside the allowed range")
	ErrOrderAlreadyDeclined  = errors.New("order already declined")
	ErrOrderAlreadyFulfilled = errors.New("order already fulfilled")
	ErrOrderAlreadyPending   = errors.New("order is already pending")
	ErrOrderNotDenied        = errors.New("only denied orders can be deleted")
)

// OrderFilter defines criteria for the admin order listing.
type OrderFilter struct {
	UserID *uint
	Status *models.OrderStatus
	// Query searches by numeric id, "!"-prefixed public id, or substring
	// over user email and product name.
	Query *string
	Page  int
	Limit int
}

// CreateOrder charges the user and opens a pending order in one atomic
// transaction. The cost is frozen at creation: a fixed product charges its
// catalog price, a variable-grant product charges the chosen dollar amount
// converted at the product's credits-per-dollar ratio and bounded by its
// grant range.
//
// The partial unique index on pending orders is the authoritative guard
// against concurrent duplicate submissions; when the insert loses that race
// the existing pending order is returned as a success.
func CreateOrder(user *models.User, productID uint, grantAmountCents *int) (*models.Order, error) {
	var product models.Product
	if err := database.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var cost float64
	if product.VariableGrant {
		if grantAmountCents == nil {
			return nil, ErrInvalidGrantAmount
		}
		cents := *grantAmountCents
		if cents < product.GrantMin() || cents > product.GrantMax() {
			return nil, ErrInvalidGrantAmount
		}
		cost = product.CreditsForCents(cents)
		if cost <= 0 {
			return nil, ErrInvalidGrantAmount
		}
	} else {
		cost = product.CostInCredits()
	}

	// Pre-check is an optimization; the unique index is the real guard.
	var existing models.Order
	err := database.DB.Where("user_id = ? AND product_id = ? AND status = ?",
		user.ID, product.ID, models.OrderStatusPending).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicatePendingOrder
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order, err := createPendingOrder(user, &product, cost)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// createPendingOrder performs the atomic deduct-and-insert. On a unique
// constraint violation it re-queries for the winner's pending order and
// returns it as an idempotent success instead of surfacing the conflict.
func createPendingOrder(user *models.User, product *models.Product, cost float64) (*models.Order, error) {
	var order *models.Order
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var buyer models.User
		if err := forUpdate(tx).First(&buyer, user.ID).Error; err != nil {
			return err
		}
		if buyer.Currency < cost {
			return ErrInsufficientFunds
		}

		err := tx.Model(&buyer).Updates(map[string]interface{}{
			"currency": gorm.Expr("currency - ?", cost),
			"version":  gorm.Expr("version + 1"),
		}).Error
		if err != nil {
			return err
		}

		order = &models.Order{
			PublicID:  uuid.New().String(),
			UserID:    buyer.ID,
			ProductID: product.ID,
			Status:    models.OrderStatusPending,
			Cost:      cost,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return RecordAudit(tx, models.AuditOrderCreated, &buyer.ID, nil, map[string]interface{}{
			"order_id":        order.ID,
			"order_public_id": order.PublicID,
			"product_id":      product.ID,
			"cost":            cost,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			var existing models.Order
			lookupErr := database.DB.Where("user_id = ? AND product_id = ? AND status = ?",
				user.ID, product.ID, models.OrderStatusPending).First(&existing).Error
			if lookupErr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	invalidateUserCache(user.ID)
	return order, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// FulfillOrder marks a pending order as shipped. No balance effect; shipped
// is terminal.
func FulfillOrder(orderID uint, admin *models.User) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Shipped() {
			return ErrOrderAlreadyFulfilled
		}

		previous := order.Status
		if err := tx.Model(order).Update("status", models.OrderStatusShipped).Error; err != nil {
			return err
		}

		return RecordAudit(tx, models.AuditOrderFulfilled, &admin.ID, nil, map[string]interface{}{
			"order_id":        order.ID,
			"order_public_id": order.PublicID,
			"previous_status": string(previous),
			"new_status":      string(models.OrderStatusShipped),
		})
	})
}

// DeclineOrder denies an order and refunds its cost exactly once. Declining
// an already-denied order is rejected.
func DeclineOrder(orderID uint, admin *models.User) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Denied() {
			return ErrOrderAlreadyDeclined
		}

		previous := order.Status
		if err := tx.Model(order).Update("status", models.OrderStatusDenied).Error; err != nil {
			return err
		}

		if order.Cost > 0 {
			return refundIfDenied(tx, order, admin, previous)
		}

		return RecordAudit(tx, models.AuditOrderDeclined, &admin.ID, nil, map[string]interface{}{
			"order_id":        order.ID,
			"order_public_id": order.PublicID,
			"previous_status": string(previous),
		})
	})
	if err != nil {
		return err
	}
	return nil
}

// refundIfDenied is the refund safety net: it pays the order's cost back to
// the buyer unless an order_refunded audit for this order already exists.
// Multiple code paths can move an order into denied; the audit trail is the
// single source of truth for "already refunded".
func refundIfDenied(tx *gorm.DB, order *models.Order, actor *models.User, previous models.OrderStatus) error {
	if order.Cost <= 0 {
		return nil
	}

	refunded, err := RefundRecorded(tx, order.ID)
	if err != nil {
		return err
	}
	if refunded {
		return nil
	}

	err = tx.Model(&models.User{}).Where("id = ?", order.UserID).
		Updates(map[string]interface{}{
			"currency": gorm.Expr("currency + ?", order.Cost),
			"version":  gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return err
	}
	invalidateUserCache(order.UserID)

	var actorID *uint
	if actor != nil {
		actorID = &actor.ID
	}
	return RecordAudit(tx, models.AuditOrderRefunded, actorID, nil, map[string]interface{}{
		"order_id":        order.ID,
		"order_public_id": order.PublicID,
		"amount":          order.Cost,
		"previous_status": string(previous),
	})
}

// PendOrder reverts a non-pending order back to pending. No balance effect.
func PendOrder(orderID uint, admin *models.User) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Pending() {
			return ErrOrderAlreadyPending
		}

		previous := order.Status
		if err := tx.Model(order).Update("status", models.OrderStatusPending).Error; err != nil {
			return err
		}

		return RecordAudit(tx, models.AuditOrderPended, &admin.ID, nil, map[string]interface{}{
			"order_id":        order.ID,
			"order_public_id": order.PublicID,
			"previous_status": string(previous),
		})
	})
}

// DeleteOrder hard-deletes a denied order. The refund safety net runs first
// inside the same transaction, covering orders that were denied through a
// path that skipped refunding.
func DeleteOrder(orderID uint, admin *models.User) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if !order.Denied() {
			return ErrOrderNotDenied
		}

		if err := refundIfDenied(tx, order, admin, order.Status); err != nil {
			return err
		}

		err = RecordAudit(tx, models.AuditOrderDeleted, &admin.ID, nil, map[string]interface{}{
			"order_id":        order.ID,
			"order_public_id": order.PublicID,
			"previous_status": string(order.Status),
		})
		if err != nil {
			return err
		}

		return tx.Delete(order).Error
	})
}

func lockOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := forUpdate(tx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrderByID fetches a single order with its product.
func GetOrderByID(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := database.DB.Preload("Product").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindOrders lists orders for the admin console with search and pagination.
func FindOrders(filter OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := database.DB.Model(&models.Order{})

	if filter.UserID != nil {
		query = query.Where("orders.user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}
	if filter.Query != nil {
		q := strings.TrimSpace(*filter.Query)
		switch {
		case strings.HasPrefix(q, "!"):
			query = query.Where("orders.public_id = ?", strings.TrimPrefix(q, "!"))
		case isAllDigits(q):
			query = query.Where("orders.id = ?", q)
		default:
			term := "%" + strings.ToLower(q) + "%"
			query = query.
				Joins("JOIN users ON users.id = orders.user_id").
				Joins("JOIN products ON products.id = orders.product_id").
				Where("LOWER(users.email) LIKE ? OR LOWER(products.name) LIKE ? OR LOWER(orders.public_id) LIKE ?",
					term, term, term)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Product").Order("orders.created_at desc").
		Limit(filter.Limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FindUserOrders lists a user's own orders, newest first.
func FindUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := database.DB.Preload("Product").
		Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}
