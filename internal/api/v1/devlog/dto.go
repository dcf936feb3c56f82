package devlog

import (
	"time"

	"github.com/Acidicts/Metroid-Mania/internal/models"
)

type CreateDevlogRequest struct {
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateDevlogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type DevlogResponse struct {
	ID              uint      `json:"id"`
	ProjectID       uint      `json:"project_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	DurationMinutes int       `json:"duration_minutes"`
	LogDate         time.Time `json:"log_date"`
	Locked          bool      `json:"locked"`
}

func toDevlogResponse(d *models.Devlog) DevlogResponse {
	return DevlogResponse{
		ID:              d.ID,
		ProjectID:       d.ProjectID,
		Title:           d.Title,
		Content:         d.Content,
		DurationMinutes: d.DurationMinutes,
		LogDate:         d.LogDate,
		Locked:          d.Locked(),
	}
}
