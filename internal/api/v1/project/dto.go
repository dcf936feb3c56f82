package project

import (
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
)

type CreateProjectRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	RepositoryURL string   `json:"repository_url" binding:"required"`
	Targets       []string `json:"targets"`
}

type ProjectResponse struct {
	ID              uint                 `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	RepositoryURL   string               `json:"repository_url"`
	Status          models.ProjectStatus `json:"status"`
	Shipped         bool                 `json:"shipped"`
	ShippedAt       *time.Time           `json:"shipped_at,omitempty"`
	CreditsPerHour  *float64             `json:"credits_per_hour,omitempty"`
	TotalSeconds    int                  `json:"total_seconds"`
	ShipRequestedAt *time.Time           `json:"ship_requested_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		RepositoryURL:   p.RepositoryURL,
		Status:          p.Status,
		Shipped:         p.Shipped,
		ShippedAt:       p.ShippedAt,
		CreditsPerHour:  p.CreditsPerHour,
		TotalSeconds:    p.TotalSeconds,
		ShipRequestedAt: p.ShipRequestedAt,
		CreatedAt:       p.CreatedAt,
	}
}

type EligibilityResponse struct {
	EligibleForShipRequest bool `json:"eligible_for_ship_request"`
	MinutesNeeded          int  `json:"minutes_needed"`
	UndocumentedSeconds    int  `json:"undocumented_seconds"`
}
