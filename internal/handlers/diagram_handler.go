package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schemacanvas/internal/models"
	"schemacanvas/internal/responses"
	"schemacanvas/internal/services"
	"schemacanvas/internal/utils"
)

type DiagramHandler struct {
	manager *services.DiagramManager
}

func NewDiagramHandler(manager *services.DiagramManager) *DiagramHandler {
	return &DiagramHandler{
		manager: manager,
	}
}

type nodeChangesRequest struct {
	Changes []models.NodeChange `json:"changes" binding:"required,dive"`
}

type edgeChangesRequest struct {
	Changes []models.EdgeChange `json:"changes" binding:"required,dive"`
}

// GetDiagram re-projects the domain model and returns the node/edge
// arrays the canvas renders.
func (h *DiagramHandler) GetDiagram(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	diagram := h.manager.ForProject(projectID)
	nodes, edges, err := diagram.Service.Refresh(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Error while projecting the diagram")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"nodes": nodes,
		"edges": edges,
	}, "Diagram projected successfully")
}

// ApplyNodeChanges receives one node gesture batch from the canvas.
func (h *DiagramHandler) ApplyNodeChanges(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	var req nodeChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	diagram := h.manager.ForProject(projectID)
	if err := diagram.Service.ApplyNodeChanges(c.Request.Context(), req.Changes); err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Error while reconciling node changes")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"nodes": diagram.Service.Session().Nodes(),
	}, "Node changes applied")
}

// ApplyEdgeChanges receives one edge gesture batch from the canvas.
func (h *DiagramHandler) ApplyEdgeChanges(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	var req edgeChangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	diagram := h.manager.ForProject(projectID)
	if err := diagram.Service.ApplyEdgeChanges(c.Request.Context(), req.Changes); err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Error while reconciling edge changes")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"edges": diagram.Service.Session().Edges(),
	}, "Edge changes applied")
}

// Connect handles a user-drawn connection attempt. A permitted
// connection answers with the new edge; a rejected or silently dropped
// one answers 204 and, for rejections, leaves a notification to drain.
func (h *DiagramHandler) Connect(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	var conn models.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	diagram := h.manager.ForProject(projectID)
	edge, err := diagram.Service.AttemptConnect(c.Request.Context(), conn)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Error while creating the relationship")
		return
	}
	if edge == nil {
		c.Status(http.StatusNoContent)
		return
	}

	responses.Created(c, gin.H{"edge": edge}, "Relationship created successfully")
}

// Notifications drains pending validation notifications for the
// presentation layer.
func (h *DiagramHandler) Notifications(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	diagram := h.manager.ForProject(projectID)
	responses.Success(c, http.StatusOK, gin.H{
		"notifications": diagram.Notifications.Drain(),
	}, "Notifications drained")
}
