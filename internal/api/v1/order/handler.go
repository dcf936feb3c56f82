package order

import (
	"errors"
	"net/http"

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

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	user := currentUser(c)

	orders, err := services.FindUserOrders(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

// CreateOrder places a pending order, deducting the cost up front.
func (h *Handler) CreateOrder(c *gin.Context) {
	user := currentUser(c)

	var req CreateOrderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	order, err := services.CreateOrder(&user, req.ProductID, req.GrantAmountCents)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
		case errors.Is(err, services.ErrInsufficientFunds),
			errors.Is(err, services.ErrInvalidGrantAmount):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		case errors.Is(err, services.ErrDuplicatePendingOrder):
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Order placed", toOrderResponse(order)))
}
