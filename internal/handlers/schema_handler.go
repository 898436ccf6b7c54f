package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/responses"
	"sqlbench/internal/services"
)

type SchemaHandler struct {
	schemaService *services.SchemaService
}

func NewSchemaHandler(schemaService *services.SchemaService) *SchemaHandler {
	return &SchemaHandler{
		schemaService: schemaService,
	}
}

// GetSchema returns the current snapshot, refreshing first when none has
// been published yet.
func (h *SchemaHandler) GetSchema(c *gin.Context) {
	snap, err := h.schemaService.Current(c.Request.Context())
	if err != nil {
		failFrom(c, err, "Failed to load schema")
		return
	}

	responses.Success(c, http.StatusOK, snap, "Schema loaded")
}

// RefreshSchema forces a new introspection pass.
func (h *SchemaHandler) RefreshSchema(c *gin.Context) {
	snap, err := h.schemaService.Refresh(c.Request.Context())
	if err != nil {
		failFrom(c, err, "Failed to refresh schema")
		return
	}

	responses.Success(c, http.StatusOK, snap, "Schema refreshed")
}

// VisualizeSchema renders the current snapshot as a Mermaid ER diagram.
func (h *SchemaHandler) VisualizeSchema(c *gin.Context) {
	snap, err := h.schemaService.Current(c.Request.Context())
	if err != nil {
		failFrom(c, err, "Failed to visualize schema")
		return
	}

	mermaid, err := h.schemaService.Mermaid(c.Request.Context(), snap)
	if err != nil {
		failFrom(c, err, "Failed to visualize schema")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"mermaid": mermaid,
		"tables":  len(snap.Tables),
	}, "Schema visualization generated")
}
