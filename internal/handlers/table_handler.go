package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schemacanvas/internal/responses"
	"schemacanvas/internal/services"
	"schemacanvas/internal/utils"
)

type TableHandler struct {
	tableService *services.TableService
}

func NewTableHandler(tableService *services.TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

func (h *TableHandler) CreateTable(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), projectID, &req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Error while creating the table")
		return
	}

	responses.Created(c, gin.H{"table": table}, "Table created successfully")
}

func (h *TableHandler) ListTables(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), projectID)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Error while listing tables")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"tables": tables}, "Tables listed successfully")
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid project id format")
		return
	}

	tableID, err := utils.ParseUUID(c.Param("tableId"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid table id format")
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), projectID, tableID.String()); err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Cannot delete the given table")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Table deleted successfully")
}
