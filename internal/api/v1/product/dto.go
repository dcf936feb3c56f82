package product

import "github.com/Acidicts/Metroid-Mania/internal/models"

type ProductResponse struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	PriceCurrency    *float64 `json:"price_currency"`
	CostCredits      *float64 `json:"cost_credits"`
	CreditsPerDollar *float64 `json:"credits_per_dollar"`
	VariableGrant    bool     `json:"variable_grant"`
	GrantMinCents    int      `json:"grant_min_cents"`
	GrantMaxCents    int      `json:"grant_max_cents"`
	CostInCredits    float64  `json:"cost_in_credits"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		PriceCurrency:    p.PriceCurrency,
		CostCredits:      p.CostCredits,
		CreditsPerDollar: p.CreditsPerDollar,
		VariableGrant:    p.VariableGrant,
		GrantMinCents:    p.GrantMin(),
		GrantMaxCents:    p.GrantMax(),
		CostInCredits:    p.CostInCredits(),
	}
}
