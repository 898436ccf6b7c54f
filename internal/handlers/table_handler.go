package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/responses"
	"sqlbench/internal/services"
)

type TableHandler struct {
	tableService *services.TableService
}

func NewTableHandler(tableService *services.TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// GetTableRows returns one page of a table's rows for the browser.
func (h *TableHandler) GetTableRows(c *gin.Context) {
	table := c.Param("table")
	if table == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Table name is required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid limit")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid offset")
		return
	}

	result, err := h.tableService.Preview(c.Request.Context(), table, limit, offset)
	if err != nil {
		failFrom(c, err, "Failed to read table rows")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"table":  table,
		"result": result,
	}, "Table rows loaded")
}
