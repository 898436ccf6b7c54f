package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/responses"
	"sqlbench/internal/services"
)

type QueryHandler struct {
	queryService *services.QueryService
}

func NewQueryHandler(queryService *services.QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

// ExecuteQuery runs one statement from the editor and returns its rows or
// affected-row count.
func (h *QueryHandler) ExecuteQuery(c *gin.Context) {
	var req services.ExecuteQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: query is required")
		return
	}

	result, err := h.queryService.Run(c.Request.Context(), req.Query)
	if err != nil {
		failFrom(c, err, "Failed to execute query")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"result":            result,
		"execution_time_ms": result.ExecutionTimeMs,
	}, "Query executed successfully")
}

// GetQueryHistory returns past runs, newest first.
func (h *QueryHandler) GetQueryHistory(c *gin.Context) {
	items, err := h.queryService.History()
	if err != nil {
		failFrom(c, err, "Failed to load query history")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"history": items,
		"count":   len(items),
	}, "Query history loaded")
}

// ClearQueryHistory drops all recorded runs.
func (h *QueryHandler) ClearQueryHistory(c *gin.Context) {
	if err := h.queryService.ClearHistory(); err != nil {
		failFrom(c, err, "Failed to clear query history")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Query history cleared")
}
