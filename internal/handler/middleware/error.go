package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the body for handlers that recorded an error without
// responding. Public errors carry their own response; private ones are mapped
// through httperr.StatusFor.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}

		status := httperr.StatusFor(last.Err)
		resp := httperr.Response{Status: status}
		switch status {
		case http.StatusServiceUnavailable:
			resp.Error.Message = "Storage unavailable"
		case http.StatusInternalServerError:
			resp.Error.Message = "Internal server error"
		default:
			resp.Error.Message = http.StatusText(status)
			resp.Detail = last.Err.Error()
		}
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok {
				err = errs.New(fmt.Sprint(r))
			}
			slog.Error("recovered from panic",
				"request_id", GetRequestID(c),
				"path", c.Request.URL.Path,
				"error", err.Error(),
				"stack", errs.ExtractStackLines(err, 12),
			)

			resp := httperr.Response{Status: http.StatusInternalServerError}
			resp.Error.Message = "Internal server error"
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()
		c.Next()
	}
}
