package api

import (
	"net/http"

	"rsv-catalog/internal/domain/quotation"
	reqdto "rsv-catalog/internal/handler/dto/request"
	resdto "rsv-catalog/internal/handler/dto/response"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/templates"
	"rsv-catalog/internal/usecase/versions"

	"github.com/gin-gonic/gin"
)

const defaultTrendDays = 30

type TemplateHandler struct {
	store     templates.Store
	svc       templates.Service
	versions  versions.Manager
	analytics analytics.Manager
	collab    collaboration.Manager
	favorites favorites.Store
	calc      quotation.PriceCalculator
}

func NewTemplateHandler(
	store templates.Store,
	svc templates.Service,
	vm versions.Manager,
	am analytics.Manager,
	cm collaboration.Manager,
	fs favorites.Store,
	calc quotation.PriceCalculator,
) *TemplateHandler {
	return &TemplateHandler{
		store:     store,
		svc:       svc,
		versions:  vm,
		analytics: am,
		collab:    cm,
		favorites: fs,
		calc:      calc,
	}
}

// @Summary List templates
// @Description List catalog templates filtered by category, text, region, season and price
// @Tags templates
// @Produce json
// @Param category query string false "Main category"
// @Param q query string false "Text search"
// @Param region query string false "Region tag, e.g. caldas-novas"
// @Param season query string false "alta, baixa or all"
// @Param min query number false "Minimum price"
// @Param max query number false "Maximum price"
// @Success 200 {object} resdto.TemplateListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	var q reqdto.TemplateListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTemplates(h.svc.List(c.Request.Context(), q.ToFilter())))
}

// @Summary Get template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	e, ok := h.store.GetByID(ctx, c.Param("id"))
	if !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrTemplateNotFound, c.Param("id")), "Template not found")
		return
	}
	fav := h.favorites.IsFavorite(ctx, e.ID, middleware.GetActorID(c))
	c.JSON(http.StatusOK, resdto.FromTemplate(e, h.calc, fav))
}

// @Summary Create template
// @Description Create a custom template and record its first version
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTemplateRequest true "Template"
// @Success 201 {object} resdto.TemplateResponse
// @Failure 400 {object} httperr.Response
// @Router /api/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req reqdto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	description := req.ChangeDescription
	if description == "" {
		description = "Template criado"
	}
	saved, err := h.svc.SaveWithVersion(c.Request.Context(), req.ToDomain(), description)
	if err != nil {
		httperr.Abort(c, err, "Create template failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTemplate(saved, h.calc, false))
}

// @Summary Update template
// @Description Apply a partial update and record a new version with the detected changes
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body reqdto.UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	existing, ok := h.store.GetByID(ctx, c.Param("id"))
	if !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrTemplateNotFound, c.Param("id")), "Template not found")
		return
	}
	var req reqdto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	saved, err := h.svc.SaveWithVersion(ctx, req.ToDomain(existing), req.ChangeDescription)
	if err != nil {
		httperr.Abort(c, err, "Update template failed")
		return
	}
	fav := h.favorites.IsFavorite(ctx, saved.ID, middleware.GetActorID(c))
	c.JSON(http.StatusOK, resdto.FromTemplate(saved, h.calc, fav))
}

// @Summary Delete template
// @Tags templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	removed, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err, "Delete template failed")
		return
	}
	if !removed {
		httperr.Abort(c, errs.Wrap(errs.ErrTemplateNotFound, c.Param("id")), "Template not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Catalog state
// @Description Report whether the default catalog is missing, stale or current
// @Tags templates
// @Produce json
// @Success 200 {object} resdto.StateResponse
// @Router /api/templates/state [get]
func (h *TemplateHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, resdto.StateResponse{
		State:   h.store.State(ctx),
		Version: h.store.Version(ctx),
		Count:   len(h.store.GetAll(ctx)),
	})
}

// @Summary Initialize catalog
// @Description Generate the default catalog if it is missing or stale
// @Tags templates
// @Produce json
// @Success 200 {object} resdto.StateResponse
// @Failure 503 {object} httperr.Response
// @Router /api/templates/initialize [post]
func (h *TemplateHandler) Initialize(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.store.InitializeDefaults(ctx)
	if err != nil {
		httperr.Abort(c, err, "Catalog initialization failed")
		return
	}
	c.JSON(http.StatusOK, resdto.StateResponse{
		State:   state,
		Version: h.store.Version(ctx),
		Count:   len(h.store.GetAll(ctx)),
	})
}

// @Summary Refresh catalog
// @Description Regenerate the catalog from scratch, dropping custom templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StateResponse
// @Failure 403 {object} httperr.Response
// @Router /api/templates/refresh [post]
func (h *TemplateHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.store.ForceRefresh(ctx); err != nil {
		httperr.Abort(c, err, "Catalog refresh failed")
		return
	}
	c.JSON(http.StatusOK, resdto.StateResponse{
		State:   h.store.State(ctx),
		Version: h.store.Version(ctx),
		Count:   len(h.store.GetAll(ctx)),
	})
}

// @Summary Template statistics
// @Tags templates
// @Produce json
// @Success 200 {object} templates.AdvancedStats
// @Router /api/templates/stats [get]
func (h *TemplateHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.AdvancedStats(c.Request.Context()))
}

// @Summary Export everything
// @Description Download templates, favorites, versions and summary statistics as one JSON document
// @Tags templates
// @Produce json
// @Success 200 {object} templates.ExportDocument
// @Router /api/templates/export [get]
func (h *TemplateHandler) Export(c *gin.Context) {
	doc, err := h.svc.ExportAll(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, "Export failed")
		return
	}
	attachJSON(c, "rsv-templates-export.json", doc)
}

// @Summary Create template from quotation
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.FromQuotationRequest true "Source quotation"
// @Success 201 {object} resdto.TemplateResponse
// @Failure 404 {object} httperr.Response
// @Router /api/templates/from-quotation [post]
func (h *TemplateHandler) FromQuotation(c *gin.Context) {
	var req reqdto.FromQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	saved, err := h.svc.CreateFromQuotation(c.Request.Context(), req.QuotationID, req.Name, req.Description)
	if err != nil {
		httperr.Abort(c, err, "Create template failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTemplate(saved, h.calc, false))
}

// @Summary Record template use
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/use [post]
func (h *TemplateHandler) Use(c *gin.Context) {
	e, err := h.svc.IncrementUsage(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Abort(c, err, "Record use failed")
		return
	}
	fav := h.favorites.IsFavorite(c.Request.Context(), e.ID, middleware.GetActorID(c))
	c.JSON(http.StatusOK, resdto.FromTemplate(e, h.calc, fav))
}

// @Summary Record template view
// @Tags templates
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/view [post]
func (h *TemplateHandler) View(c *gin.Context) {
	if err := h.svc.TrackView(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Abort(c, err, "Record view failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Share template
// @Description Share a template with collaboration users
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body reqdto.ShareTemplateRequest true "Recipients"
// @Success 200 {object} collaboration.Share
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/share [post]
func (h *TemplateHandler) Share(c *gin.Context) {
	var req reqdto.ShareTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	share, err := h.svc.Share(c.Request.Context(), c.Param("id"), req.Users, req.Message)
	if err != nil {
		httperr.Abort(c, err, "Share failed")
		return
	}
	c.JSON(http.StatusOK, share)
}

// @Summary Create quotation from template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body reqdto.InstantiateRequest true "Client"
// @Success 201 {object} quotation.Quotation
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/instantiate [post]
func (h *TemplateHandler) Instantiate(c *gin.Context) {
	var req reqdto.InstantiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	q, err := h.svc.Instantiate(c.Request.Context(), c.Param("id"), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err, "Create quotation failed")
		return
	}
	c.JSON(http.StatusCreated, q)
}

// @Summary Toggle favorite
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} resdto.FavoriteResponse
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/favorite [post]
func (h *TemplateHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	fav, err := h.svc.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Toggle favorite failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FavoriteResponse{TemplateID: id, IsFavorite: fav})
}

// @Summary List template versions
// @Tags versions
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} versions.Version
// @Router /api/templates/{id}/versions [get]
func (h *TemplateHandler) Versions(c *gin.Context) {
	c.JSON(http.StatusOK, h.versions.Versions(c.Request.Context(), c.Param("id")))
}

// @Summary Get template version
// @Tags versions
// @Produce json
// @Param id path string true "Template ID"
// @Param version path int true "Version number"
// @Success 200 {object} versions.Version
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/versions/{version} [get]
func (h *TemplateHandler) Version(c *gin.Context) {
	n, ok := versionParam(c, "version")
	if !ok {
		return
	}
	v, found := h.versions.Version(c.Request.Context(), c.Param("id"), n)
	if !found {
		httperr.Abort(c, errs.Wrap(errs.ErrVersionNotFound, c.Param("id")), "Version not found")
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary Restore template version
// @Description Restore an old snapshot as the current template, recorded as a new version
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param version path int true "Version number"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/versions/{version}/restore [post]
func (h *TemplateHandler) RestoreVersion(c *gin.Context) {
	n, ok := versionParam(c, "version")
	if !ok {
		return
	}
	e, err := h.svc.RestoreVersion(c.Request.Context(), c.Param("id"), n)
	if err != nil {
		httperr.Abort(c, err, "Restore failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTemplate(e, h.calc, false))
}

// @Summary Compare template versions
// @Tags versions
// @Produce json
// @Param id path string true "Template ID"
// @Param v1 query int true "Base version"
// @Param v2 query int true "Target version"
// @Success 200 {object} versions.Comparison
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/versions/compare [get]
func (h *TemplateHandler) CompareVersions(c *gin.Context) {
	v1, ok := queryInt(c, "v1", 0)
	if !ok {
		return
	}
	v2, ok := queryInt(c, "v2", 0)
	if !ok {
		return
	}
	if v1 == 0 || v2 == 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("v1 and v2 are required"), "Invalid query", nil)
		return
	}
	diff, err := h.versions.Compare(c.Request.Context(), c.Param("id"), v1, v2)
	if err != nil {
		httperr.Abort(c, err, "Compare failed")
		return
	}
	c.JSON(http.StatusOK, diff)
}

// @Summary Template change history
// @Tags versions
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} versions.HistoryEntry
// @Router /api/templates/{id}/history [get]
func (h *TemplateHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.versions.ChangeHistory(c.Request.Context(), c.Param("id")))
}

// @Summary List template comments
// @Tags collaboration
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} collaboration.Comment
// @Router /api/templates/{id}/comments [get]
func (h *TemplateHandler) Comments(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.Comments(c.Request.Context(), c.Param("id")))
}

// @Summary Comment on template
// @Tags collaboration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body reqdto.CommentRequest true "Comment"
// @Success 201 {object} collaboration.Comment
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/comments [post]
func (h *TemplateHandler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	if _, ok := h.store.GetByID(ctx, c.Param("id")); !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrTemplateNotFound, c.Param("id")), "Template not found")
		return
	}
	var req reqdto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	comment, err := h.collab.AddComment(ctx, c.Param("id"), req.Content, req.ParentID, req.Mentions)
	if err != nil {
		httperr.Abort(c, err, "Comment failed")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// @Summary Template analytics
// @Tags analytics
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} analytics.TemplateAnalytics
// @Failure 404 {object} httperr.Response
// @Router /api/templates/{id}/analytics [get]
func (h *TemplateHandler) Analytics(c *gin.Context) {
	a, ok := h.analytics.TemplateAnalytics(c.Request.Context(), c.Param("id"))
	if !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrTemplateNotFound, "no analytics for "+c.Param("id")), "No analytics recorded")
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary Template usage trend
// @Tags analytics
// @Produce json
// @Param id path string true "Template ID"
// @Param days query int false "Window in days (default 30)"
// @Success 200 {object} analytics.Trend
// @Failure 400 {object} httperr.Response
// @Router /api/templates/{id}/trend [get]
func (h *TemplateHandler) Trend(c *gin.Context) {
	var q reqdto.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	days := q.Days
	if days == 0 {
		days = defaultTrendDays
	}
	c.JSON(http.StatusOK, h.analytics.Trend(c.Request.Context(), c.Param("id"), days))
}
