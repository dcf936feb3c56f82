package shiprequest

import (
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
)

type ShipRequestResponse struct {
	ID               uint       `json:"id"`
	ProjectID        *uint      `json:"project_id"`
	UserID           uint       `json:"user_id"`
	Status           string     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	ApprovedAt       *time.Time `json:"approved_at"`
	ProcessedByID    *uint      `json:"processed_by_id"`
	DevloggedSeconds int        `json:"devlogged_seconds"`
	CreditsPerHour   *float64   `json:"credits_per_hour"`
	CreditsAwarded   *float64   `json:"credits_awarded"`
}

func toShipRequestResponse(r *models.ShipRequest) ShipRequestResponse {
	return ShipRequestResponse{
		ID:               r.ID,
		ProjectID:        r.ProjectID,
		UserID:           r.UserID,
		Status:           string(r.Status),
		RequestedAt:      r.RequestedAt,
		ApprovedAt:       r.ApprovedAt,
		ProcessedByID:    r.ProcessedByID,
		DevloggedSeconds: r.DevloggedSeconds,
		CreditsPerHour:   r.CreditsPerHour,
		CreditsAwarded:   r.CreditsAwarded,
	}
}
