// Package handlers translates HTTP requests into service calls and maps
// service errors onto status codes.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlbench/internal/errs"
	"sqlbench/internal/responses"
)

// failFrom picks the status code from the error kind. Statement and input
// errors are the caller's fault; everything else is ours.
func failFrom(c *gin.Context, err error, message string) {
	switch {
	case errs.IsInvalid(err):
		responses.Fail(c, http.StatusBadRequest, err, message)
	case errs.IsExecution(err):
		responses.Fail(c, http.StatusBadRequest, err, message)
	default:
		responses.Fail(c, http.StatusInternalServerError, err, message)
	}
}
