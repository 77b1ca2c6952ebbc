package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	BaseHandler
	projectService services.ProjectService
	insightService services.InsightService
	exportService  services.ExportService
	validator      *utils.Validator
}

func NewProjectHandler(
	projectService services.ProjectService,
	insightService services.InsightService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    NewBaseHandler(logger),
		projectService: projectService,
		insightService: insightService,
		exportService:  exportService,
		validator:      validator,
	}
}

// CreateProject creates a new assessment project
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body services.CreateProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// @Summary Get project
// @Tags projects
// @Produce json
// @Param id path uint true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates an existing project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project without completed sessions
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting project", "project_id", id)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Project deleted successfully",
	})
}

// ListProjects lists the consultant's projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "Project status"
// @Success 200 {object} services.ProjectListResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	filters := parseProjectFilters(c)

	if query := c.Query("q"); query != "" {
		result, err := h.projectService.Search(c.Request.Context(), query, filters, userID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := h.projectService.List(c.Request.Context(), filters, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ActivateProject opens the project for respondents
func (h *ProjectHandler) ActivateProject(c *gin.Context) {
	h.transition(c, h.projectService.Activate)
}

// CloseProject closes the project to further responses
func (h *ProjectHandler) CloseProject(c *gin.Context) {
	h.transition(c, h.projectService.Close)
}

// RegenerateShareCode replaces the project's share code
func (h *ProjectHandler) RegenerateShareCode(c *gin.Context) {
	h.transition(c, h.projectService.RegenerateShareCode)
}

// GetProjectReport returns the aggregated project report
// @Summary Get project report
// @Tags projects
// @Produce json
// @Param id path uint true "Project ID"
// @Success 200 {object} services.ProjectReport
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id}/report [get]
func (h *ProjectHandler) GetProjectReport(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	report, err := h.projectService.GetReport(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetProjectInsights returns the aggregated insight bundle
func (h *ProjectHandler) GetProjectInsights(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bundle, err := h.insightService.GetProjectInsights(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// ExportProjectResults streams the project results as an Excel file
func (h *ProjectHandler) ExportProjectResults(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Exporting project results", "project_id", id)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportProjectResults(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Helper methods

func (h *ProjectHandler) transition(c *gin.Context, fn func(ctx context.Context, id uint, userID string) (*models.Project, error)) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	project, err := fn(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func parseProjectFilters(c *gin.Context) repositories.ProjectFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 10)

	filters := repositories.ProjectFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		projectStatus := models.ProjectStatus(status)
		filters.Status = &projectStatus
	}

	return filters
}
