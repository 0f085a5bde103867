package api

import (
	"net/http"

	reqdto "rsv-catalog/internal/handler/dto/request"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/usecase/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions session.Service
}

func NewAuthHandler(sessions session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// @Summary Issue token
// @Description Issue a bearer token that identifies an existing collaboration user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.TokenRequest true "User"
// @Success 200 {object} session.Token
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req reqdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	token, err := h.sessions.Issue(c.Request.Context(), req.UserID)
	if err != nil {
		httperr.Abort(c, err, "Token issue failed")
		return
	}
	c.JSON(http.StatusOK, token)
}
