package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/errs"
	"sqlbench/internal/responses"
	"sqlbench/internal/services"
)

// ImportRequest is the payload of the import endpoint.
type ImportRequest struct {
	Script string `json:"script" binding:"required"`
}

type DatabaseHandler struct {
	databaseService *services.DatabaseService
	exportService   *services.ExportService
	importService   *services.ImportService
}

func NewDatabaseHandler(databaseService *services.DatabaseService, exportService *services.ExportService, importService *services.ImportService) *DatabaseHandler {
	return &DatabaseHandler{
		databaseService: databaseService,
		exportService:   exportService,
		importService:   importService,
	}
}

// Health reports whether the engine still answers.
func (h *DatabaseHandler) Health(c *gin.Context) {
	if err := h.databaseService.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ExportDatabase generates the SQL script for the whole database. A partial
// export still returns the script, with the skipped tables called out.
func (h *DatabaseHandler) ExportDatabase(c *gin.Context) {
	result, err := h.exportService.Generate(c.Request.Context())
	if err != nil && !errs.IsExportPartial(err) {
		failFrom(c, err, "Failed to export database")
		return
	}

	if c.Query("download") == "true" {
		filename := fmt.Sprintf("export_%s.sql", result.GeneratedAt.Format("20060102_150405"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if len(result.SkippedTables) > 0 {
			c.Header("X-Skipped-Tables", strings.Join(result.SkippedTables, ","))
		}
		c.Data(http.StatusOK, "application/sql", []byte(result.Script))
		return
	}

	if err != nil {
		responses.JSON(c, http.StatusOK, "partial", result, "Export generated with skipped tables", err)
		return
	}

	responses.Success(c, http.StatusOK, result, "Export generated")
}

// ImportDatabase replays a SQL script, taken either from the JSON body or
// from an uploaded file. Partial success comes back as 207 with the
// per-statement failures.
func (h *DatabaseHandler) ImportDatabase(c *gin.Context) {
	script, err := importScript(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: script is required")
		return
	}

	report := h.importService.Run(c.Request.Context(), script)

	if report.Failed > 0 {
		responses.JSON(c, http.StatusMultiStatus, "partial", report, "Import finished with failures", nil)
		return
	}

	responses.Success(c, http.StatusOK, report, "Import finished")
}

// importScript pulls the statement text out of the request: the "file"
// field of a multipart upload, or the JSON body otherwise.
func importScript(c *gin.Context) (string, error) {
	if c.ContentType() == "multipart/form-data" {
		header, err := c.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("file field is required: %w", err)
		}
		if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".sql" && ext != ".txt" {
			return "", fmt.Errorf("unsupported file type %q, expected .sql or .txt", header.Filename)
		}
		f, err := header.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", err
	}
	return req.Script, nil
}

// ClearDatabase drops every table.
func (h *DatabaseHandler) ClearDatabase(c *gin.Context) {
	report, err := h.databaseService.Clear(c.Request.Context())
	if err != nil {
		failFrom(c, err, "Failed to clear database")
		return
	}

	if report.Failed > 0 {
		responses.JSON(c, http.StatusMultiStatus, "partial", report, "Clear finished with failures", nil)
		return
	}

	responses.Success(c, http.StatusOK, report, "Database cleared")
}
