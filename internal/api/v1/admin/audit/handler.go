package audit

import (
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

type auditItem struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	UserID    *uint     `json:"user_id"`
	ProjectID *uint     `json:"project_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func toAuditItem(a *models.Audit) auditItem {
	return auditItem{
		ID:        a.ID,
		Action:    a.Action,
		UserID:    a.UserID,
		ProjectID: a.ProjectID,
		Details:   string(a.Details),
		CreatedAt: a.CreatedAt,
	}
}

func filterFromQuery(c *gin.Context) (services.AuditFilter, bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	filter := services.AuditFilter{Page: page, Limit: limit}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return filter, false
		}
		v := uint(id)
		filter.UserID = &v
	}
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid project_id"))
			return filter, false
		}
		v := uint(id)
		filter.ProjectID = &v
	}
	if raw := c.Query("action"); raw != "" {
		filter.Action = &raw
	}
	if raw := c.Query("start_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid start_time"))
			return filter, false
		}
		filter.StartTime = &t
	}
	if raw := c.Query("end_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid end_time"))
			return filter, false
		}
		filter.EndTime = &t
	}
	return filter, true
}

// ListAudits pages through the audit trail with optional filters.
func (h *Handler) ListAudits(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		return
	}

	audits, total, err := services.FindAudits(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]auditItem, 0, len(audits))
	for i := range audits {
		items = append(items, toAuditItem(&audits[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", gin.H{
		"audits": items,
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.Limit,
	}))
}

// ExportAudits streams the filtered audit trail as a CSV download.
func (h *Handler) ExportAudits(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		return
	}
	filter.Page = 1
	filter.Limit = 10000

	audits, _, err := services.FindAudits(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	data, err := services.GenerateAuditCSV(audits)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := "audits_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
