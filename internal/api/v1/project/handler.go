package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Acidicts/Metroid-Mania/internal/database"
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

// ListProjects returns the caller's projects.
func (h *Handler) ListProjects(c *gin.Context) {
	user := currentUser(c)

	projects, err := services.FindUserProjects(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	items := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", items))
}

// GetProject returns one project.
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	project, err := services.GetProject(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", toProjectResponse(project)))
}

// CreateProject creates a project for the caller.
func (h *Handler) CreateProject(c *gin.Context) {
	user := currentUser(c)

	var req CreateProjectRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	project, err := services.CreateProject(&user, req.Name, req.Description, req.RepositoryURL, req.Targets)
	if err != nil {
		if errors.Is(err, services.ErrTargetClaimed) {
			c.JSON(http.StatusUnprocessableEntity, utils.NewErrorResponse(http.StatusUnprocessableEntity, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Project created", toProjectResponse(project)))
}

// DeleteProject removes a project the caller owns.
func (h *Handler) DeleteProject(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	project, err := services.GetProject(id)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		return
	}
	if project.UserID != user.ID {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Not authorized"))
		return
	}

	if err := services.DeleteProject(id); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Project deleted", nil))
}

// Eligibility reports whether the project can open a ship request and how
// many documented minutes are still needed.
func (h *Handler) Eligibility(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	project, err := services.GetProject(id)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Project not found"))
		return
	}

	eligible, err := services.EligibleForShipRequest(database.DB, project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	needed, err := services.MinutesNeededForShipRequest(database.DB, project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	undocumented, err := services.UndocumentedSeconds(database.DB, project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("success", EligibilityResponse{
		EligibleForShipRequest: eligible,
		MinutesNeeded:          needed,
		UndocumentedSeconds:    undocumented,
	}))
}
