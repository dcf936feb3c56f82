package order

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/services"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func currentUser(c *gin.Context) models.User {
	val, _ := c.Get("user")
	user, _ := val.(models.User)
	return user
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

type orderItem struct {
	ID        uint      `json:"id"`
	PublicID  string    `json:"public_id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Status    string    `json:"status"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

func toOrderItem(o *models.Order) orderItem {
	return orderItem{
		ID:        o.ID,
		PublicID:  o.PublicID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Status:    string(o.Status),
		Cost:      o.Cost,
		CreatedAt: o.CreatedAt,
	}
}

// ListOrders pages through orders with optional status, user, and search
// filters. Search supports "!<public_id>", a numeric id, or a substring over
// buyer email and product name.
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := services.OrderFilter{Page: page, Limit: limit}
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		v := uint(id)
		filter.UserID = &v
	}
	if raw := c.Query("q"); raw != "" {
		filter.Query = &raw
	}

	orders, total, err := services.FindOrders(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]orderItem, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderItem(&orders[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", gin.H{
		"orders": items,
		"total":  total,
		"page":   page,
		"limit":  limit,
	}))
}

// FulfillOrder marks an order shipped.
func (h *Handler) FulfillOrder(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.FulfillOrder(id, &admin); err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order fulfilled", nil))
}

// DeclineOrder denies an order and refunds its cost exactly once.
func (h *Handler) DeclineOrder(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.DeclineOrder(id, &admin); err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order declined", nil))
}

// PendOrder moves an order back to pending for re-review.
func (h *Handler) PendOrder(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.PendOrder(id, &admin); err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order pended", nil))
}

// DeleteOrder removes a denied order after the refund safety net runs.
func (h *Handler) DeleteOrder(c *gin.Context) {
	admin := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.DeleteOrder(id, &admin); err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order deleted", nil))
}

func (h *Handler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Order not found"))
	case errors.Is(err, services.ErrOrderAlreadyDeclined),
		errors.Is(err, services.ErrOrderAlreadyFulfilled),
		errors.Is(err, services.ErrOrderAlreadyPending),
		errors.Is(err, services.ErrOrderNotDenied):
		c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
	}
}
