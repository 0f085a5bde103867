package httperr

import (
	"net/http"

	"rsv-catalog/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

var notFound = []error{
	errs.ErrTemplateNotFound,
	errs.ErrQuotationNotFound,
	errs.ErrVersionNotFound,
	errs.ErrCommentNotFound,
	errs.ErrWorkspaceNotFound,
	errs.ErrUserNotFound,
}

var invalid = []error{
	errs.ErrInvalidQuotation,
	errs.ErrInvalidTemplate,
	errs.ErrInvalidStatusTransition,
	errs.ErrInvalidEvent,
	errs.ErrInvalidImport,
	errs.ErrInvalidCollaboration,
	errs.ErrUnsupportedFormat,
}

// StatusFor maps a usecase error to its HTTP status.
func StatusFor(err error) int {
	for _, target := range notFound {
		if errs.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range invalid {
		if errs.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errs.Is(err, errs.ErrStorageWrite) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Abort picks the status from err. Server-side failures hide the message.
func Abort(c *gin.Context, err error, msg string) {
	status := StatusFor(err)
	var detail any
	if status < http.StatusInternalServerError {
		detail = err.Error()
	}
	if status == http.StatusServiceUnavailable {
		msg = "Storage unavailable"
	}
	AbortWithError(c, status, err, msg, detail)
}
