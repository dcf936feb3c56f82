package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Acidicts/Metroid-Mania/internal/models"
	"github.com/Acidicts/Metroid-Mania/internal/services"
	"github.com/Acidicts/Metroid-Mania/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

type productRequest struct {
	Name             string   `json:"name" binding:"required"`
	PriceCurrency    *float64 `json:"price_currency"`
	CostCredits      *float64 `json:"cost_credits"`
	CreditsPerDollar *float64 `json:"credits_per_dollar"`
	VariableGrant    bool     `json:"variable_grant"`
	GrantMinCents    *int     `json:"grant_min_cents"`
	GrantMaxCents    *int     `json:"grant_max_cents"`
}

func (r *productRequest) toInput() services.ProductInput {
	return services.ProductInput{
		Name:             r.Name,
		PriceCurrency:    r.PriceCurrency,
		CostCredits:      r.CostCredits,
		CreditsPerDollar: r.CreditsPerDollar,
		VariableGrant:    r.VariableGrant,
		GrantMinCents:    r.GrantMinCents,
		GrantMaxCents:    r.GrantMaxCents,
	}
}

type productItem struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	PriceCurrency    *float64 `json:"price_currency"`
	CostCredits      *float64 `json:"cost_credits"`
	CreditsPerDollar *float64 `json:"credits_per_dollar"`
	VariableGrant    bool     `json:"variable_grant"`
	GrantMinCents    int      `json:"grant_min_cents"`
	GrantMaxCents    int      `json:"grant_max_cents"`
}

func toProductItem(p *models.Product) productItem {
	return productItem{
		ID:               p.ID,
		Name:             p.Name,
		PriceCurrency:    p.PriceCurrency,
		CostCredits:      p.CostCredits,
		CreditsPerDollar: p.CreditsPerDollar,
		VariableGrant:    p.VariableGrant,
		GrantMinCents:    p.GrantMin(),
		GrantMaxCents:    p.GrantMax(),
	}
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	product, err := services.CreateProduct(req.toInput())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Product created", toProductItem(product)))
}

// UpdateProduct replaces a catalog entry.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req productRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	product, err := services.UpdateProduct(id, req.toInput())
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product updated", toProductItem(product)))
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := services.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deleted", nil))
}
