package api

import (
	"net/http"

	"rsv-catalog/internal/domain/quotation"
	reqdto "rsv-catalog/internal/handler/dto/request"
	resdto "rsv-catalog/internal/handler/dto/response"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/export"
	"rsv-catalog/internal/usecase/quotations"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	store    quotations.Store
	renderer *export.Renderer
	share    config.ShareConfig
	clock    clock.Clock
}

func NewQuotationHandler(store quotations.Store, renderer *export.Renderer, cfg config.Config, clk clock.Clock) *QuotationHandler {
	return &QuotationHandler{store: store, renderer: renderer, share: cfg.Share, clock: clk}
}

func (h *QuotationHandler) get(c *gin.Context) (*quotation.Quotation, bool) {
	q, ok := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrQuotationNotFound, c.Param("id")), "Quotation not found")
		return nil, false
	}
	return q, true
}

// @Summary List quotations
// @Description List quotations, newest first, filtered by text, status, type, creation date and total
// @Tags quotations
// @Produce json
// @Param q query string false "Text search over title, client and description"
// @Param status query string false "Comma-separated statuses"
// @Param type query string false "Comma-separated types"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Param min query number false "Minimum total"
// @Param max query number false "Maximum total"
// @Success 200 {object} resdto.QuotationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	var q reqdto.QuotationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	ctx := c.Request.Context()

	if q.Q == "" {
		c.JSON(http.StatusOK, resdto.FromQuotations(h.store.Filter(ctx, q.ToCriteria())))
		return
	}
	found := h.store.Search(ctx, q.Q)
	if q.HasCriteria() {
		criteria := q.ToCriteria()
		kept := found[:0]
		for i := range found {
			if criteria.Matches(&found[i]) {
				kept = append(kept, found[i])
			}
		}
		found = kept
	}
	c.JSON(http.StatusOK, resdto.FromQuotations(found))
}

// @Summary Get quotation
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} quotation.Quotation
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	q, ok := h.get(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, q)
}

// @Summary Create quotation
// @Description Create a quotation; totals are computed server-side
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateQuotationRequest true "Quotation"
// @Success 201 {object} quotation.Quotation
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req reqdto.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	saved, err := h.store.Save(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err, "Create quotation failed")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// @Summary Update quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body reqdto.UpdateQuotationRequest true "Fields to change"
// @Success 200 {object} quotation.Quotation
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	existing, ok := h.get(c)
	if !ok {
		return
	}
	var req reqdto.UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	saved, err := h.store.Save(c.Request.Context(), req.ToDomain(existing))
	if err != nil {
		httperr.Abort(c, err, "Update quotation failed")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// @Summary Delete quotation
// @Tags quotations
// @Param id path string true "Quotation ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	removed, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err, "Delete quotation failed")
		return
	}
	if !removed {
		httperr.Abort(c, errs.Wrap(errs.ErrQuotationNotFound, c.Param("id")), "Quotation not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Duplicate quotation
// @Description Copy a quotation as a new draft
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} quotation.Quotation
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id}/duplicate [post]
func (h *QuotationHandler) Duplicate(c *gin.Context) {
	dup, err := h.store.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err, "Duplicate failed")
		return
	}
	c.JSON(http.StatusCreated, dup)
}

// @Summary Change quotation status
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body reqdto.StatusRequest true "New status"
// @Success 200 {object} quotation.Quotation
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	q, err := h.store.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httperr.Abort(c, err, "Status change failed")
		return
	}
	c.JSON(http.StatusOK, q)
}

// @Summary Export quotation
// @Description Download the printable document as html, doc or docx
// @Tags quotations
// @Produce html
// @Param id path string true "Quotation ID"
// @Param format query string false "html (default), doc or docx"
// @Success 200 {file} file
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id}/export [get]
func (h *QuotationHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		httperr.Abort(c, err, "Unsupported format")
		return
	}
	q, ok := h.get(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	file, err := h.renderer.ExportFile(q, h.store.CompanyInfo(ctx), format, h.clock.Now())
	if err != nil {
		httperr.Abort(c, err, "Export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

// @Summary Share links
// @Description Build the public share URL and a mailto link for the client
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} resdto.ShareLinksResponse
// @Failure 404 {object} httperr.Response
// @Router /api/quotations/{id}/share [get]
func (h *QuotationHandler) Share(c *gin.Context) {
	q, ok := h.get(c)
	if !ok {
		return
	}
	link, err := export.ShareLink(q, h.share.BaseURL)
	if err != nil {
		httperr.Abort(c, err, "Share failed")
		return
	}
	mailto, err := export.MailtoLink(q, h.store.CompanyInfo(c.Request.Context()), h.share.BaseURL)
	if err != nil {
		httperr.Abort(c, err, "Share failed")
		return
	}
	c.JSON(http.StatusOK, resdto.ShareLinksResponse{ShareURL: link, Mailto: mailto})
}

// @Summary Shared quotation page
// @Description Render a quotation carried in a share link
// @Tags quotations
// @Produce html
// @Param data query string true "Quotation JSON from the share link"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} httperr.Response
// @Router /cotacoes/share [get]
func (h *QuotationHandler) SharedPage(c *gin.Context) {
	q, err := export.DecodeShared(c.Query("data"))
	if err != nil {
		httperr.Abort(c, err, "Invalid share link")
		return
	}
	body, err := h.renderer.Render(q, h.store.CompanyInfo(c.Request.Context()), h.clock.Now())
	if err != nil {
		httperr.Abort(c, err, "Render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// @Summary Quotation statistics
// @Tags quotations
// @Produce json
// @Success 200 {object} quotations.Stats
// @Router /api/quotations/stats [get]
func (h *QuotationHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetStats(c.Request.Context()))
}

// @Summary Load sample quotations
// @Tags quotations
// @Produce json
// @Success 201 {array} quotation.Quotation
// @Router /api/quotations/sample [post]
func (h *QuotationHandler) LoadSample(c *gin.Context) {
	out, err := h.store.LoadSampleData(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, "Load sample data failed")
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary Delete all quotations
// @Tags quotations
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Router /api/quotations [delete]
func (h *QuotationHandler) ClearAll(c *gin.Context) {
	if err := h.store.ClearAll(c.Request.Context()); err != nil {
		httperr.Abort(c, err, "Clear failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Budget settings
// @Tags quotations
// @Produce json
// @Success 200 {object} quotations.Settings
// @Router /api/quotations/settings [get]
func (h *QuotationHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Settings(c.Request.Context()))
}

// @Summary Save budget settings
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body quotations.Settings true "Settings"
// @Success 200 {object} quotations.Settings
// @Router /api/quotations/settings [put]
func (h *QuotationHandler) SaveSettings(c *gin.Context) {
	var s quotations.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ctx := c.Request.Context()
	if err := h.store.SaveSettings(ctx, s); err != nil {
		httperr.Abort(c, err, "Save settings failed")
		return
	}
	c.JSON(http.StatusOK, h.store.Settings(ctx))
}

// @Summary Company info
// @Tags quotations
// @Produce json
// @Success 200 {object} quotations.CompanyInfo
// @Router /api/quotations/company [get]
func (h *QuotationHandler) Company(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.CompanyInfo(c.Request.Context()))
}

// @Summary Save company info
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body quotations.CompanyInfo true "Company info"
// @Success 200 {object} quotations.CompanyInfo
// @Router /api/quotations/company [put]
func (h *QuotationHandler) SaveCompany(c *gin.Context) {
	var info quotations.CompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ctx := c.Request.Context()
	if err := h.store.SaveCompanyInfo(ctx, info); err != nil {
		httperr.Abort(c, err, "Save company info failed")
		return
	}
	c.JSON(http.StatusOK, h.store.CompanyInfo(ctx))
}
