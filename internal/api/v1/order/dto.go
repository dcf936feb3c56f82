package order

import (
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
)

type CreateOrderRequest struct {
	ProductID        uint `json:"product_id" binding:"required"`
	GrantAmountCents *int `json:"grant_amount_cents"`
}

type OrderResponse struct {
	ID        uint      `json:"id"`
	PublicID  string    `json:"public_id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Status    string    `json:"status"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		PublicID:  o.PublicID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Status:    string(o.Status),
		Cost:      o.Cost,
		CreatedAt: o.CreatedAt,
	}
}
