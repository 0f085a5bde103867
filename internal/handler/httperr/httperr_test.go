//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrapped not found", errs.Wrap(errs.ErrTemplateNotFound, "tpl-1"), http.StatusNotFound},
		{"marked invalid", errs.Mark(errors.New("bad json"), errs.ErrInvalidImport), http.StatusBadRequest},
		{"status transition", errs.ErrInvalidStatusTransition, http.StatusBadRequest},
		{"storage", errs.Mark(errors.New("quota exceeded"), errs.ErrStorageWrite), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.StatusFor(tt.err))
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httperr.Abort(c, errs.Wrap(errs.ErrQuotationNotFound, "q-9"), "Quotation not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Quotation not found", body["error"].(map[string]any)["message"])
	assert.Equal(t, "q-9: quotation not found", body["detail"])
	assert.True(t, c.IsAborted())
	assert.Len(t, c.Errors, 1)
}
