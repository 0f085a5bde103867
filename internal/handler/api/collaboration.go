package api

import (
	"net/http"

	reqdto "rsv-catalog/internal/handler/dto/request"
	"rsv-catalog/internal/handler/httperr"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/collaboration"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 50

type CollaborationHandler struct {
	collab collaboration.Manager
}

func NewCollaborationHandler(cm collaboration.Manager) *CollaborationHandler {
	return &CollaborationHandler{collab: cm}
}

// @Summary List users
// @Tags collaboration
// @Produce json
// @Success 200 {array} collaboration.User
// @Router /api/collaboration/users [get]
func (h *CollaborationHandler) Users(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.Users(c.Request.Context()))
}

// @Summary Current user
// @Tags collaboration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} collaboration.User
// @Failure 404 {object} httperr.Response
// @Router /api/collaboration/me [get]
func (h *CollaborationHandler) Me(c *gin.Context) {
	id := middleware.GetActorID(c)
	u, ok := h.collab.User(c.Request.Context(), id)
	if !ok {
		httperr.Abort(c, errs.Wrap(errs.ErrUserNotFound, id), "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Create user
// @Tags collaboration
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "User"
// @Success 201 {object} collaboration.User
// @Failure 400 {object} httperr.Response
// @Router /api/collaboration/users [post]
func (h *CollaborationHandler) CreateUser(c *gin.Context) {
	var req reqdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	u, err := h.collab.CreateUser(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err, "Create user failed")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Templates shared with me
// @Tags collaboration
// @Produce json
// @Security BearerAuth
// @Success 200 {array} collaboration.Share
// @Router /api/collaboration/shared [get]
func (h *CollaborationHandler) Shared(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.SharedWith(c.Request.Context(), middleware.GetActorID(c)))
}

// @Summary Recent activity
// @Tags collaboration
// @Produce json
// @Param limit query int false "Max results (default 50)"
// @Param user query string false "Only this user's activity"
// @Success 200 {array} collaboration.Activity
// @Router /api/collaboration/activities [get]
func (h *CollaborationHandler) Activities(c *gin.Context) {
	var q reqdto.LimitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultActivityLimit
	}
	ctx := c.Request.Context()
	if user := c.Query("user"); user != "" {
		c.JSON(http.StatusOK, h.collab.UserActivities(ctx, user, limit))
		return
	}
	c.JSON(http.StatusOK, h.collab.RecentActivities(ctx, limit))
}

// @Summary Notifications
// @Description Mentions and active shares addressed to the current user
// @Tags collaboration
// @Produce json
// @Security BearerAuth
// @Success 200 {array} collaboration.Notification
// @Router /api/collaboration/notifications [get]
func (h *CollaborationHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.Notifications(c.Request.Context(), middleware.GetActorID(c)))
}

// @Summary My workspaces
// @Tags collaboration
// @Produce json
// @Security BearerAuth
// @Success 200 {array} collaboration.Workspace
// @Router /api/collaboration/workspaces [get]
func (h *CollaborationHandler) Workspaces(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.UserWorkspaces(c.Request.Context(), middleware.GetActorID(c)))
}

// @Summary Create workspace
// @Tags collaboration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.WorkspaceRequest true "Workspace"
// @Success 201 {object} collaboration.Workspace
// @Failure 400 {object} httperr.Response
// @Router /api/collaboration/workspaces [post]
func (h *CollaborationHandler) CreateWorkspace(c *gin.Context) {
	var req reqdto.WorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ws, err := h.collab.CreateWorkspace(c.Request.Context(), req.Name, req.Description, req.Settings)
	if err != nil {
		httperr.Abort(c, err, "Create workspace failed")
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// @Summary Add workspace member
// @Tags collaboration
// @Accept json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body reqdto.AddMemberRequest true "Member"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/collaboration/workspaces/{id}/members [post]
func (h *CollaborationHandler) AddMember(c *gin.Context) {
	var req reqdto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	added, err := h.collab.AddMember(c.Request.Context(), c.Param("id"), req.UserID, req.MemberRole(), req.SharePermissions())
	if err != nil {
		httperr.Abort(c, err, "Add member failed")
		return
	}
	if !added {
		httperr.AbortWithError(c, http.StatusConflict, errs.New("already a member"), "User is already a member", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary React to comment
// @Description Set the current user's reaction, replacing any previous one
// @Tags collaboration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param request body reqdto.ReactionRequest true "Reaction"
// @Success 200 {object} collaboration.Comment
// @Failure 404 {object} httperr.Response
// @Router /api/collaboration/comments/{id}/reactions [post]
func (h *CollaborationHandler) React(c *gin.Context) {
	var req reqdto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	comment, err := h.collab.React(c.Request.Context(), c.Param("id"), req.Emoji)
	if err != nil {
		httperr.Abort(c, err, "Reaction failed")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// @Summary Collaboration statistics
// @Tags collaboration
// @Produce json
// @Success 200 {object} collaboration.Stats
// @Router /api/collaboration/stats [get]
func (h *CollaborationHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.collab.Stats(c.Request.Context()))
}
