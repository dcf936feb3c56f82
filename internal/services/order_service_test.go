package services

import (
	"testing"

	"github.com/Acidicts/Metroid-Mania/internal/database"
	"github.com/Acidicts/Metroid-Mania/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderDeductsCostUpFront(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("buyer", 100, models.RoleUser)
	product := createTestProduct("sticker pack", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 30.0, order.Cost)
	assert.NotEmpty(t, order.PublicID)

	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 70.0, refreshed.Currency)
}

func TestCreateOrderInsufficientFunds(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("broke", 10, models.RoleUser)
	product := createTestProduct("expensive", 30)

	_, err := CreateOrder(buyer, product.ID, nil)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 10.0, refreshed.Currency)
}

func TestCreateOrderRejectsDuplicatePending(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("dup", 100, models.RoleUser)
	product := createTestProduct("widget", 10)

	_, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	_, err = CreateOrder(buyer, product.ID, nil)
	assert.ErrorIs(t, err, ErrDuplicatePendingOrder)

	// Settling the first order frees the slot.
	var first models.Order
	assert.NoError(t, database.DB.Where("user_id = ?", buyer.ID).First(&first).Error)
	admin := createTestUser("settler", 0, models.RoleAdmin)
	assert.NoError(t, FulfillOrder(first.ID, admin))

	_, err = CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)
}

func TestConcurrentDuplicateResolvesToWinnersOrder(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("racer", 100, models.RoleUser)
	product := createTestProduct("pin", 30)

	winner, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	// Drive the insert directly, past the application-level pre-check, the
	// way a second in-flight request would after both passed the check.
	loser, err := createPendingOrder(buyer, product, 30)
	assert.NoError(t, err)
	assert.Equal(t, winner.ID, loser.ID)

	var pending int64
	database.DB.Model(&models.Order{}).
		Where("user_id = ? AND product_id = ? AND status = ?",
			buyer.ID, product.ID, models.OrderStatusPending).
		Count(&pending)
	assert.Equal(t, int64(1), pending)

	// The loser's deduction rolled back with its insert.
	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 70.0, refreshed.Currency)
}

func TestCreateOrderVariableGrant(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("granter", 1000, models.RoleUser)
	product := &models.Product{
		Name:             "gift card",
		VariableGrant:    true,
		CreditsPerDollar: floatPtr(2.0),
		GrantMinCents:    intPtr(500),
		GrantMaxCents:    intPtr(5000),
	}
	assert.NoError(t, database.DB.Create(product).Error)

	// $20 at 2 credits per dollar.
	order, err := CreateOrder(buyer, product.ID, intPtr(2000))
	assert.NoError(t, err)
	assert.Equal(t, 40.0, order.Cost)

	// Outside the grant range.
	_, err = CreateOrder(buyer, product.ID, intPtr(100))
	assert.ErrorIs(t, err, ErrInvalidGrantAmount)
	_, err = CreateOrder(buyer, product.ID, intPtr(6000))
	assert.ErrorIs(t, err, ErrInvalidGrantAmount)

	// A variable-grant product needs an amount.
	_, err = CreateOrder(buyer, product.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidGrantAmount)
}

func TestDeclineRefundsExactlyOnce(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("refunded", 100, models.RoleUser)
	admin := createTestUser("decliner", 0, models.RoleAdmin)
	product := createTestProduct("gizmo", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	assert.NoError(t, DeclineOrder(order.ID, admin))

	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 100.0, refreshed.Currency)

	assert.ErrorIs(t, DeclineOrder(order.ID, admin), ErrOrderAlreadyDeclined)

	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 100.0, refreshed.Currency)

	var refunds int64
	database.DB.Model(&models.Audit{}).Where("action = ?", models.AuditOrderRefunded).Count(&refunds)
	assert.Equal(t, int64(1), refunds)
}

func TestDeleteDeniedOrderDoesNotRefundTwice(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("lifecycle", 100, models.RoleUser)
	admin := createTestUser("lifecycler", 0, models.RoleAdmin)
	product := createTestProduct("poster", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 70.0, refreshed.Currency)

	assert.NoError(t, DeclineOrder(order.ID, admin))
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 100.0, refreshed.Currency)

	assert.NoError(t, DeleteOrder(order.ID, admin))
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 100.0, refreshed.Currency)

	var count int64
	database.DB.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOrderSafetyNetCoversSkippedRefund(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("skipped", 100, models.RoleUser)
	admin := createTestUser("skipper", 0, models.RoleAdmin)
	product := createTestProduct("mug", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	// Deny through a path that never refunded.
	assert.NoError(t, database.DB.Model(order).Update("status", models.OrderStatusDenied).Error)

	assert.NoError(t, DeleteOrder(order.ID, admin))

	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 100.0, refreshed.Currency)

	var refunds int64
	database.DB.Model(&models.Audit{}).Where("action = ?", models.AuditOrderRefunded).Count(&refunds)
	assert.Equal(t, int64(1), refunds)
}

func TestDeleteOrderRequiresDenied(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("undeniable", 100, models.RoleUser)
	admin := createTestUser("undenier", 0, models.RoleAdmin)
	product := createTestProduct("shirt", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	assert.ErrorIs(t, DeleteOrder(order.ID, admin), ErrOrderNotDenied)
}

func TestPendOrderRevertsStatus(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("pendable", 100, models.RoleUser)
	admin := createTestUser("pender", 0, models.RoleAdmin)
	product := createTestProduct("badge", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	assert.ErrorIs(t, PendOrder(order.ID, admin), ErrOrderAlreadyPending)

	assert.NoError(t, FulfillOrder(order.ID, admin))
	assert.NoError(t, PendOrder(order.ID, admin))

	fetched, err := GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, fetched.Pending())
}

func TestFulfillOrderIsTerminal(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("fulfilled", 100, models.RoleUser)
	admin := createTestUser("fulfiller", 0, models.RoleAdmin)
	product := createTestProduct("cap", 30)

	order, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)

	assert.NoError(t, FulfillOrder(order.ID, admin))
	assert.ErrorIs(t, FulfillOrder(order.ID, admin), ErrOrderAlreadyFulfilled)

	// Fulfillment has no balance effect.
	var refreshed models.User
	assert.NoError(t, database.DB.First(&refreshed, buyer.ID).Error)
	assert.Equal(t, 70.0, refreshed.Currency)
}

func TestFindOrdersSearch(t *testing.T) {
	setupTestDB()
	buyer := createTestUser("searchable", 1000, models.RoleUser)
	admin := createTestUser("searcher", 0, models.RoleAdmin)
	product := createTestProduct("Mega Widget", 10)
	other := createTestProduct("Plain Thing", 10)

	first, err := CreateOrder(buyer, product.ID, nil)
	assert.NoError(t, err)
	_, err = CreateOrder(buyer, other.ID, nil)
	assert.NoError(t, err)

	// Exact public id with "!" prefix.
	q := "!" + first.PublicID
	orders, total, err := FindOrders(OrderFilter{Query: &q, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, orders[0].ID)

	// Numeric id.
	q = "1"
	orders, total, err = FindOrders(OrderFilter{Query: &q, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Case-insensitive product name substring.
	q = "mega"
	orders, total, err = FindOrders(OrderFilter{Query: &q, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, product.ID, orders[0].ProductID)

	// Status filter.
	assert.NoError(t, DeclineOrder(first.ID, admin))
	denied := models.OrderStatusDenied
	_, total, err = FindOrders(OrderFilter{Status: &denied, Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
