package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schemacanvas/internal/responses"
	"schemacanvas/internal/services"
	"schemacanvas/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	manager        *services.DiagramManager
}

func NewProjectHandler(projectService *services.ProjectService, manager *services.DiagramManager) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		manager:        manager,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), &req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Error while creating the project")
		return
	}

	responses.Created(c, gin.H{"project": project}, "Project created successfully")
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Error while listing projects")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"projects": projects}, "Projects listed successfully")
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Project not found")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"project": project}, "Project fetched successfully")
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), projectID); err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Cannot delete the given project")
		return
	}
	h.manager.Evict(projectID)

	responses.Success(c, http.StatusOK, nil, "Project deleted successfully")
}
