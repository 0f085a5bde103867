package collaboration

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

type UserPermissions struct {
	CanCreateTemplates bool `json:"canCreateTemplates"`
	CanEditTemplates   bool `json:"canEditTemplates"`
	CanDeleteTemplates bool `json:"canDeleteTemplates"`
	CanShareTemplates  bool `json:"canShareTemplates"`
	CanManageUsers     bool `json:"canManageUsers"`
	CanViewAnalytics   bool `json:"canViewAnalytics"`
	CanExportData      bool `json:"canExportData"`
}

// PermissionsFor returns the permission set a role starts with.
func PermissionsFor(r Role) UserPermissions {
	switch r {
	case RoleAdmin:
		return UserPermissions{true, true, true, true, true, true, true}
	case RoleEditor:
		return UserPermissions{
			CanCreateTemplates: true,
			CanEditTemplates:   true,
			CanShareTemplates:  true,
			CanViewAnalytics:   true,
		}
	default:
		return UserPermissions{CanViewAnalytics: true}
	}
}

type User struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Avatar      string          `json:"avatar,omitempty"`
	Role        Role            `json:"role"`
	Department  string          `json:"department,omitempty"`
	JoinedAt    time.Time       `json:"joinedAt"`
	LastActive  time.Time       `json:"lastActive"`
	Permissions UserPermissions `json:"permissions"`
}

type NewUser struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}

// SharePermissions is what a share grants on one template.
type SharePermissions struct {
	CanView    bool `json:"canView"`
	CanEdit    bool `json:"canEdit"`
	CanComment bool `json:"canComment"`
	CanShare   bool `json:"canShare"`
	CanUse     bool `json:"canUse"`
}

// DefaultSharePermissions lets recipients view, comment on and use a template.
func DefaultSharePermissions() SharePermissions {
	return SharePermissions{CanView: true, CanComment: true, CanUse: true}
}

func fullSharePermissions() SharePermissions {
	return SharePermissions{true, true, true, true, true}
}

type Share struct {
	TemplateID  string           `json:"templateId"`
	SharedBy    string           `json:"sharedBy"`
	SharedWith  []string         `json:"sharedWith"`
	SharedAt    time.Time        `json:"sharedAt"`
	Permissions SharePermissions `json:"permissions"`
	Message     string           `json:"message,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
}

func (s *Share) involves(userID string) bool {
	if s.SharedBy == userID {
		return true
	}
	for _, id := range s.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

func (s *Share) expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

type ShareRequest struct {
	TemplateID   string
	TemplateName string
	SharedWith   []string
	Permissions  SharePermissions
	Message      string
	ExpiresAt    *time.Time
}

type Reaction struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID         string     `json:"id"`
	TemplateID string     `json:"templateId"`
	UserID     string     `json:"userId"`
	UserName   string     `json:"userName"`
	UserAvatar string     `json:"userAvatar,omitempty"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	ParentID   string     `json:"parentId,omitempty"`
	Mentions   []string   `json:"mentions"`
	Reactions  []Reaction `json:"reactions"`
}

type MemberRole string

const (
	MemberOwner  MemberRole = "owner"
	MemberAdmin  MemberRole = "admin"
	MemberMember MemberRole = "member"
	MemberGuest  MemberRole = "guest"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberOwner, MemberAdmin, MemberMember, MemberGuest:
		return true
	}
	return false
}

type Member struct {
	UserID      string           `json:"userId"`
	Role        MemberRole       `json:"role"`
	JoinedAt    time.Time        `json:"joinedAt"`
	Permissions SharePermissions `json:"permissions"`
}

type WorkspaceSettings struct {
	IsPublic                    bool `json:"isPublic"`
	AllowGuestAccess            bool `json:"allowGuestAccess"`
	RequireApprovalForTemplates bool `json:"requireApprovalForTemplates"`
	EnableComments              bool `json:"enableComments"`
	EnableVersionHistory        bool `json:"enableVersionHistory"`
	AutoBackup                  bool `json:"autoBackup"`
}

type Workspace struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	Members     []Member          `json:"members"`
	Templates   []string          `json:"templates"`
	Settings    WorkspaceSettings `json:"settings"`
}

func (w *Workspace) hasMember(userID string) bool {
	for _, m := range w.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type ActivityKind string

const (
	ActivityTemplateShared   ActivityKind = "template_shared"
	ActivityTemplateEdited   ActivityKind = "template_edited"
	ActivityTemplateUsed     ActivityKind = "template_used"
	ActivityCommentAdded     ActivityKind = "comment_added"
	ActivityUserJoined       ActivityKind = "user_joined"
	ActivityWorkspaceCreated ActivityKind = "workspace_created"
)

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityTemplateShared, ActivityTemplateEdited, ActivityTemplateUsed,
		ActivityCommentAdded, ActivityUserJoined, ActivityWorkspaceCreated:
		return true
	}
	return false
}

type Activity struct {
	ID            string       `json:"id"`
	Kind          ActivityKind `json:"type"`
	UserID        string       `json:"userId"`
	UserName      string       `json:"userName"`
	TemplateID    string       `json:"templateId,omitempty"`
	TemplateName  string       `json:"templateName,omitempty"`
	WorkspaceID   string       `json:"workspaceId,omitempty"`
	WorkspaceName string       `json:"workspaceName,omitempty"`
	Description   string       `json:"description"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ActivityInput is an activity before the log assigns id, actor name and time.
type ActivityInput struct {
	Kind          ActivityKind
	TemplateID    string
	TemplateName  string
	WorkspaceID   string
	WorkspaceName string
	Description   string
}

type Stats struct {
	TotalUsers       int `json:"totalUsers"`
	ActiveUsers      int `json:"activeUsers"`
	SharedTemplates  int `json:"sharedTemplates"`
	TotalComments    int `json:"totalComments"`
	TotalWorkspaces  int `json:"totalWorkspaces"`
	RecentActivities int `json:"recentActivities"`
}

type NotificationKind string

const (
	NotificationMention NotificationKind = "mention"
	NotificationShare   NotificationKind = "share"
)

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
	ActionURL string           `json:"actionUrl,omitempty"`
}

// Snapshot is every collaboration record, for full exports.
type Snapshot struct {
	Users      []User      `json:"users"`
	Shares     []Share     `json:"collaborations"`
	Comments   []Comment   `json:"comments"`
	Workspaces []Workspace `json:"workspaces"`
	Activities []Activity  `json:"activities"`
}
