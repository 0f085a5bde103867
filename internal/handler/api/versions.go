package api

import (
	"io"
	"net/http"

	reqdto "rsv-catalog/internal/handler/dto/request"
	resdto "rsv-catalog/internal/handler/dto/response"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/templates"
	"rsv-catalog/internal/usecase/versions"

	"github.com/gin-gonic/gin"
)

type VersionsHandler struct {
	versions versions.Manager
	svc      templates.Service
}

func NewVersionsHandler(vm versions.Manager, svc templates.Service) *VersionsHandler {
	return &VersionsHandler{versions: vm, svc: svc}
}

// @Summary Version statistics
// @Tags versions
// @Produce json
// @Success 200 {object} versions.Stats
// @Router /api/versions/stats [get]
func (h *VersionsHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.versions.Stats(c.Request.Context()))
}

// @Summary Export version history
// @Tags versions
// @Produce json
// @Param template query string false "Only this template"
// @Success 200 {object} versions.ExportDocument
// @Router /api/versions/export [get]
func (h *VersionsHandler) Export(c *gin.Context) {
	doc, err := h.versions.Export(c.Request.Context(), c.Query("template"))
	if err != nil {
		httperr.Abort(c, err, "Export failed")
		return
	}
	attachJSON(c, "rsv-template-versions.json", doc)
}

// @Summary Import version history
// @Description Merge an exported document; nothing is applied if any entry fails validation
// @Tags versions
// @Accept json
// @Produce json
// @Param request body versions.ExportDocument true "Exported document"
// @Success 200 {object} resdto.CountResponse
// @Failure 400 {object} httperr.Response
// @Router /api/versions/import [post]
func (h *VersionsHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrInvalidImport), "Invalid request")
		return
	}
	n, err := h.versions.Import(c.Request.Context(), raw)
	if err != nil {
		httperr.Abort(c, err, "Import failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: n})
}

// @Summary Clean up old versions
// @Description Keep only the newest versions per template (default 5)
// @Tags versions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CleanupRequest false "How many to keep"
// @Success 200 {object} resdto.CountResponse
// @Router /api/versions/cleanup [post]
func (h *VersionsHandler) Cleanup(c *gin.Context) {
	var req reqdto.CleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	ctx := c.Request.Context()
	var (
		removed int
		err     error
	)
	if req.Keep == 0 {
		removed, err = h.svc.CleanupOldData(ctx)
	} else {
		removed, err = h.versions.Cleanup(ctx, req.Keep)
	}
	if err != nil {
		httperr.Abort(c, err, "Cleanup failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: removed})
}
