package devlog

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

func ownedProject(c *gin.Context) (*models.Project, bool) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}

	project, err := services.GetProject(id)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		return nil, false
	}
	if project.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Not authorized"))
		return nil, false
	}
	return project, true
}

// ListDevlogs returns a project's devlogs, newest first.
func (h *Handler) ListDevlogs(c *gin.Context) {
	project, ok := ownedProject(c)
	if !ok {
		return
	}

	devlogs, err := services.FindDevlogs(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]DevlogResponse, 0, len(devlogs))
	for i := range devlogs {
		items = append(items, toDevlogResponse(&devlogs[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

// CreateDevlog records worked time against a project. The stored duration is
// capped to the project's undocumented time.
func (h *Handler) CreateDevlog(c *gin.Context) {
	project, ok := ownedProject(c)
	if !ok {
		return
	}

	var req CreateDevlogRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	devlog, err := services.CreateDevlog(project, req.Title, req.Content, req.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectTimeNotSet),
			errors.Is(err, services.ErrInsufficientUndocumentedTime):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Devlog created", toDevlogResponse(devlog)))
}

// UpdateDevlog edits a devlog's text. Locked devlogs reject edits.
func (h *Handler) UpdateDevlog(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateDevlogRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.authorizeDevlog(c, user, id) {
		return
	}

	devlog, err := services.UpdateDevlog(id, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDevlogNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Devlog not found"))
		case errors.Is(err, services.ErrDevlogLocked):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Devlog updated", toDevlogResponse(devlog)))
}

// DeleteDevlog removes a devlog. Locked devlogs reject deletion.
func (h *Handler) DeleteDevlog(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if !h.authorizeDevlog(c, user, id) {
		return
	}

	if err := services.DeleteDevlog(id); err != nil {
		switch {
		case errors.Is(err, services.ErrDevlogNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Devlog not found"))
		case errors.Is(err, services.ErrDevlogLocked):
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Devlog deleted", nil))
}

func (h *Handler) authorizeDevlog(c *gin.Context, user models.User, devlogID uint) bool {
	devlog, err := services.GetDevlog(devlogID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Devlog not found"))
		return false
	}
	project, err := services.GetProject(devlog.ProjectID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		return false
	}
	if project.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Not authorized"))
		return false
	}
	return true
}
