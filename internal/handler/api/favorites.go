package api

import (
	"io"
	"net/http"

	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/templates"

	"github.com/gin-gonic/gin"
)

const defaultRecommendedLimit = 6

type FavoritesHandler struct {
	favorites favorites.Store
	templates templates.Store
}

func NewFavoritesHandler(fs favorites.Store, ts templates.Store) *FavoritesHandler {
	return &FavoritesHandler{favorites: fs, templates: ts}
}

// @Summary My favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} favorites.Favorite
// @Router /api/favorites [get]
func (h *FavoritesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.favorites.Favorites(c.Request.Context(), middleware.GetActorID(c)))
}

// @Summary Recommended templates
// @Description Templates from the user's favorite categories that are not yet favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 6)"
// @Success 200 {array} catalog.Entry
// @Router /api/favorites/recommended [get]
func (h *FavoritesHandler) Recommended(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultRecommendedLimit)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, h.favorites.Recommended(ctx, middleware.GetActorID(c), h.templates.GetAll(ctx), limit))
}

// @Summary Recently used templates
// @Tags favorites
// @Produce json
// @Success 200 {array} favorites.RecentItem
// @Router /api/favorites/recent [get]
func (h *FavoritesHandler) Recent(c *gin.Context) {
	c.JSON(http.StatusOK, h.favorites.RecentlyUsed(c.Request.Context()))
}

// @Summary Favorites statistics
// @Tags favorites
// @Produce json
// @Success 200 {object} favorites.Stats
// @Router /api/favorites/stats [get]
func (h *FavoritesHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.favorites.Stats(c.Request.Context()))
}

// @Summary Export favorites
// @Tags favorites
// @Produce json
// @Success 200 {object} favorites.ExportDocument
// @Router /api/favorites/export [get]
func (h *FavoritesHandler) Export(c *gin.Context) {
	attachJSON(c, "rsv-favorites.json", h.favorites.Export(c.Request.Context()))
}

// @Summary Import favorites
// @Description Replace favorites, recently used and preferences with an exported document
// @Tags favorites
// @Accept json
// @Param request body favorites.ExportDocument true "Exported document"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Router /api/favorites/import [post]
func (h *FavoritesHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrInvalidImport), "Invalid request")
		return
	}
	if err := h.favorites.Import(c.Request.Context(), raw); err != nil {
		httperr.Abort(c, err, "Import failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Preferences
// @Tags favorites
// @Produce json
// @Success 200 {object} favorites.Preferences
// @Router /api/favorites/preferences [get]
func (h *FavoritesHandler) Preferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.favorites.Preferences(c.Request.Context()))
}

// @Summary Save preferences
// @Tags favorites
// @Accept json
// @Produce json
// @Param request body favorites.Preferences true "Preferences"
// @Success 200 {object} favorites.Preferences
// @Failure 400 {object} httperr.Response
// @Router /api/favorites/preferences [put]
func (h *FavoritesHandler) SavePreferences(c *gin.Context) {
	var p favorites.Preferences
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ctx := c.Request.Context()
	if err := h.favorites.SavePreferences(ctx, p); err != nil {
		httperr.Abort(c, err, "Save preferences failed")
		return
	}
	c.JSON(http.StatusOK, h.favorites.Preferences(ctx))
}
