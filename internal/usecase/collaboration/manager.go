package collaboration

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	maxActivities        = 1000
	defaultRecentLimit   = 50
	defaultUserLimit     = 20
	activeUserWindow     = 7 * 24 * time.Hour
	recentActivityWindow = 24 * time.Hour
	unknownUserName      = "Usuário"
)

// Manager keeps users, template shares, comments, workspaces and the activity
// log. The acting user is read from the context and is never authorized.
type Manager interface {
	CreateUser(ctx context.Context, in NewUser) (*User, error)
	Users(ctx context.Context) []User
	User(ctx context.Context, id string) (*User, bool)
	Touch(ctx context.Context, id string) error

	Share(ctx context.Context, req ShareRequest) (*Share, error)
	SharedWith(ctx context.Context, userID string) []Share
	Permissions(ctx context.Context, templateID, userID string) (*SharePermissions, bool)

	AddComment(ctx context.Context, templateID, content, parentID string, mentions []string) (*Comment, error)
	Comments(ctx context.Context, templateID string) []Comment
	React(ctx context.Context, commentID, emoji string) (*Comment, error)

	CreateWorkspace(ctx context.Context, name, description string, settings WorkspaceSettings) (*Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID string, role MemberRole, perms SharePermissions) (bool, error)
	UserWorkspaces(ctx context.Context, userID string) []Workspace

	LogActivity(ctx context.Context, in ActivityInput) (*Activity, error)
	RecentActivities(ctx context.Context, limit int) []Activity
	UserActivities(ctx context.Context, userID string, limit int) []Activity

	Stats(ctx context.Context) Stats
	Notifications(ctx context.Context, userID string) []Notification
	Snapshot(ctx context.Context) Snapshot
}

type managerImpl struct {
	mu     sync.Mutex
	db     shared.Persistence
	clock  clock.Clock
	logger *slog.Logger
}

func NewManager(db shared.Persistence, clk clock.Clock, logger *slog.Logger) Manager {
	return &managerImpl{db: db, clock: clk, logger: logger}
}

func (m *managerImpl) save(ctx context.Context, key string, v any) error {
	if err := m.db.Save(ctx, key, v); err != nil {
		return errs.Wrap(err, "failed to save "+key)
	}
	return nil
}

// users returns the stored accounts, seeding the defaults under m.mu on first use.
func (m *managerImpl) users(ctx context.Context) []User {
	var out []User
	if m.db.Load(ctx, shared.KeyUsers, &out) && out != nil {
		return out
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usersLocked(ctx)
}

// usersLocked is users for callers that already hold m.mu.
func (m *managerImpl) usersLocked(ctx context.Context) []User {
	var out []User
	if m.db.Load(ctx, shared.KeyUsers, &out) && out != nil {
		return out
	}
	out = defaultUsers(m.clock.Now())
	if err := m.db.Save(ctx, shared.KeyUsers, out); err != nil {
		m.logger.Warn("failed to seed default users", "error", err)
	}
	return out
}

func defaultUsers(now time.Time) []User {
	seed := []struct {
		id, name, email, dept string
		role                  Role
	}{
		{shared.DefaultActorID, "Administrador RSV", "admin@rsv360.com.br", "Administração", RoleAdmin},
		{"user_vendas", "Equipe Vendas", "vendas@rsv360.com.br", "Vendas", RoleEditor},
		{"user_marketing", "Equipe Marketing", "marketing@rsv360.com.br", "Marketing", RoleEditor},
	}
	out := make([]User, 0, len(seed))
	for _, s := range seed {
		out = append(out, User{
			ID:          s.id,
			Name:        s.name,
			Email:       s.email,
			Role:        s.role,
			Department:  s.dept,
			JoinedAt:    now,
			LastActive:  now,
			Permissions: PermissionsFor(s.role),
		})
	}
	return out
}

func userName(users []User, id string) (string, string) {
	for _, u := range users {
		if u.ID == id {
			return u.Name, u.Avatar
		}
	}
	return unknownUserName, ""
}

func (m *managerImpl) CreateUser(ctx context.Context, in NewUser) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "name and email are required")
	}
	if in.Role == "" {
		in.Role = RoleViewer
	}
	if !in.Role.IsValid() {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "unknown role "+string(in.Role))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	users := m.usersLocked(ctx)
	if slices.ContainsFunc(users, func(u User) bool { return strings.EqualFold(u.Email, in.Email) }) {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "email already registered")
	}

	now := m.clock.Now()
	u := User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Avatar:      in.Avatar,
		Role:        in.Role,
		Department:  in.Department,
		JoinedAt:    now,
		LastActive:  now,
		Permissions: PermissionsFor(in.Role),
	}
	if err := m.save(ctx, shared.KeyUsers, append(users, u)); err != nil {
		return nil, err
	}

	// the new user is the actor of their own join
	if _, err := m.logLocked(shared.WithActor(ctx, u.ID), ActivityInput{
		Kind:        ActivityUserJoined,
		Description: fmt.Sprintf("%s entrou na plataforma", u.Name),
	}); err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *managerImpl) Users(ctx context.Context) []User {
	return m.users(ctx)
}

func (m *managerImpl) User(ctx context.Context, id string) (*User, bool) {
	for _, u := range m.users(ctx) {
		if u.ID == id {
			return &u, true
		}
	}
	return nil, false
}

// Touch stamps the user's last activity.
func (m *managerImpl) Touch(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := m.usersLocked(ctx)
	i := slices.IndexFunc(users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return errs.Wrap(errs.ErrUserNotFound, id)
	}
	users[i].LastActive = m.clock.Now()
	return m.save(ctx, shared.KeyUsers, users)
}

// Share replaces any existing share of the template.
func (m *managerImpl) Share(ctx context.Context, req ShareRequest) (*Share, error) {
	if req.TemplateID == "" || len(req.SharedWith) == 0 {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "template id and recipients are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := Share{
		TemplateID:  req.TemplateID,
		SharedBy:    shared.ActorFrom(ctx),
		SharedWith:  slices.Compact(slices.Sorted(slices.Values(req.SharedWith))),
		SharedAt:    m.clock.Now(),
		Permissions: req.Permissions,
		Message:     req.Message,
		ExpiresAt:   req.ExpiresAt,
	}

	all := shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations)
	all = slices.DeleteFunc(all, func(c Share) bool { return c.TemplateID == req.TemplateID })
	all = append(all, s)
	if err := m.save(ctx, shared.KeyCollaborations, all); err != nil {
		return nil, err
	}

	if _, err := m.logLocked(ctx, ActivityInput{
		Kind:         ActivityTemplateShared,
		TemplateID:   req.TemplateID,
		TemplateName: req.TemplateName,
		Description:  fmt.Sprintf("Template compartilhado com %d usuário(s)", len(s.SharedWith)),
	}); err != nil {
		return nil, err
	}
	return &s, nil
}

// SharedWith lists unexpired shares the user sent or received.
func (m *managerImpl) SharedWith(ctx context.Context, userID string) []Share {
	now := m.clock.Now()
	out := []Share{}
	for _, s := range shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations) {
		if s.involves(userID) && !s.expired(now) {
			out = append(out, s)
		}
	}
	return out
}

func (m *managerImpl) Permissions(ctx context.Context, templateID, userID string) (*SharePermissions, bool) {
	now := m.clock.Now()
	for _, s := range shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations) {
		if s.TemplateID != templateID || !s.involves(userID) || s.expired(now) {
			continue
		}
		p := s.Permissions
		if s.SharedBy == userID {
			p = fullSharePermissions()
		}
		return &p, true
	}
	return nil, false
}

func (m *managerImpl) AddComment(ctx context.Context, templateID, content, parentID string, mentions []string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if templateID == "" || content == "" {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "template id and content are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := shared.LoadList[Comment](ctx, m.db, shared.KeyComments)
	if parentID != "" && !slices.ContainsFunc(all, func(c Comment) bool {
		return c.ID == parentID && c.TemplateID == templateID
	}) {
		return nil, errs.Wrap(errs.ErrCommentNotFound, "parent "+parentID)
	}
	if mentions == nil {
		mentions = []string{}
	}

	actor := shared.ActorFrom(ctx)
	name, avatar := userName(m.usersLocked(ctx), actor)
	c := Comment{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		UserID:     actor,
		UserName:   name,
		UserAvatar: avatar,
		Content:    content,
		CreatedAt:  m.clock.Now(),
		ParentID:   parentID,
		Mentions:   mentions,
		Reactions:  []Reaction{},
	}
	if err := m.save(ctx, shared.KeyComments, append(all, c)); err != nil {
		return nil, err
	}

	if _, err := m.logLocked(ctx, ActivityInput{
		Kind:        ActivityCommentAdded,
		TemplateID:  templateID,
		Description: "Comentário adicionado no template",
	}); err != nil {
		return nil, err
	}
	return &c, nil
}

// Comments returns a template's comments, oldest first.
func (m *managerImpl) Comments(ctx context.Context, templateID string) []Comment {
	out := []Comment{}
	for _, c := range shared.LoadList[Comment](ctx, m.db, shared.KeyComments) {
		if c.TemplateID == templateID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// React sets the actor's reaction on a comment, replacing any earlier one.
func (m *managerImpl) React(ctx context.Context, commentID, emoji string) (*Comment, error) {
	if strings.TrimSpace(emoji) == "" {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "emoji is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := shared.LoadList[Comment](ctx, m.db, shared.KeyComments)
	i := slices.IndexFunc(all, func(c Comment) bool { return c.ID == commentID })
	if i < 0 {
		return nil, errs.Wrap(errs.ErrCommentNotFound, commentID)
	}

	actor := shared.ActorFrom(ctx)
	name, _ := userName(m.usersLocked(ctx), actor)
	c := &all[i]
	c.Reactions = slices.DeleteFunc(c.Reactions, func(r Reaction) bool { return r.UserID == actor })
	c.Reactions = append(c.Reactions, Reaction{
		UserID:    actor,
		UserName:  name,
		Emoji:     emoji,
		CreatedAt: m.clock.Now(),
	})

	if err := m.save(ctx, shared.KeyComments, all); err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

// CreateWorkspace makes the actor the owner of a new workspace.
func (m *managerImpl) CreateWorkspace(ctx context.Context, name, description string, settings WorkspaceSettings) (*Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "workspace name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	actor := shared.ActorFrom(ctx)
	now := m.clock.Now()
	w := Workspace{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedBy:   actor,
		CreatedAt:   now,
		Members: []Member{{
			UserID:      actor,
			Role:        MemberOwner,
			JoinedAt:    now,
			Permissions: fullSharePermissions(),
		}},
		Templates: []string{},
		Settings:  settings,
	}

	all := shared.LoadList[Workspace](ctx, m.db, shared.KeyWorkspaces)
	if err := m.save(ctx, shared.KeyWorkspaces, append(all, w)); err != nil {
		return nil, err
	}

	if _, err := m.logLocked(ctx, ActivityInput{
		Kind:          ActivityWorkspaceCreated,
		WorkspaceID:   w.ID,
		WorkspaceName: w.Name,
		Description:   fmt.Sprintf("Workspace %q criado", w.Name),
	}); err != nil {
		return nil, err
	}
	return &w, nil
}

// AddMember reports false when the user already belongs to the workspace.
func (m *managerImpl) AddMember(ctx context.Context, workspaceID, userID string, role MemberRole, perms SharePermissions) (bool, error) {
	if role == "" {
		role = MemberMember
	}
	if !role.IsValid() {
		return false, errs.Wrap(errs.ErrInvalidCollaboration, "unknown member role "+string(role))
	}
	if _, ok := m.User(ctx, userID); !ok {
		return false, errs.Wrap(errs.ErrUserNotFound, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all := shared.LoadList[Workspace](ctx, m.db, shared.KeyWorkspaces)
	i := slices.IndexFunc(all, func(w Workspace) bool { return w.ID == workspaceID })
	if i < 0 {
		return false, errs.Wrap(errs.ErrWorkspaceNotFound, workspaceID)
	}
	if all[i].hasMember(userID) {
		return false, nil
	}

	all[i].Members = append(all[i].Members, Member{
		UserID:      userID,
		Role:        role,
		JoinedAt:    m.clock.Now(),
		Permissions: perms,
	})
	if err := m.save(ctx, shared.KeyWorkspaces, all); err != nil {
		return false, err
	}
	return true, nil
}

func (m *managerImpl) UserWorkspaces(ctx context.Context, userID string) []Workspace {
	out := []Workspace{}
	for _, w := range shared.LoadList[Workspace](ctx, m.db, shared.KeyWorkspaces) {
		if w.hasMember(userID) {
			out = append(out, w)
		}
	}
	return out
}

func (m *managerImpl) LogActivity(ctx context.Context, in ActivityInput) (*Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.logLocked(ctx, in)
}

// logLocked prepends to the activity log and drops the oldest past the cap.
func (m *managerImpl) logLocked(ctx context.Context, in ActivityInput) (*Activity, error) {
	if !in.Kind.IsValid() {
		return nil, errs.Wrap(errs.ErrInvalidCollaboration, "unknown activity type "+string(in.Kind))
	}

	actor := shared.ActorFrom(ctx)
	name, _ := userName(m.usersLocked(ctx), actor)
	a := Activity{
		ID:            uuid.NewString(),
		Kind:          in.Kind,
		UserID:        actor,
		UserName:      name,
		TemplateID:    in.TemplateID,
		TemplateName:  in.TemplateName,
		WorkspaceID:   in.WorkspaceID,
		WorkspaceName: in.WorkspaceName,
		Description:   in.Description,
		CreatedAt:     m.clock.Now(),
	}

	all := shared.LoadList[Activity](ctx, m.db, shared.KeyActivities)
	all = append([]Activity{a}, all...)
	if len(all) > maxActivities {
		all = all[:maxActivities]
	}
	if err := m.save(ctx, shared.KeyActivities, all); err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *managerImpl) RecentActivities(ctx context.Context, limit int) []Activity {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	all := shared.LoadList[Activity](ctx, m.db, shared.KeyActivities)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (m *managerImpl) UserActivities(ctx context.Context, userID string, limit int) []Activity {
	if limit <= 0 {
		limit = defaultUserLimit
	}
	out := []Activity{}
	for _, a := range shared.LoadList[Activity](ctx, m.db, shared.KeyActivities) {
		if a.UserID != userID {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (m *managerImpl) Stats(ctx context.Context) Stats {
	now := m.clock.Now()
	users := m.users(ctx)
	activities := shared.LoadList[Activity](ctx, m.db, shared.KeyActivities)

	st := Stats{
		TotalUsers:      len(users),
		SharedTemplates: len(shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations)),
		TotalComments:   len(shared.LoadList[Comment](ctx, m.db, shared.KeyComments)),
		TotalWorkspaces: len(shared.LoadList[Workspace](ctx, m.db, shared.KeyWorkspaces)),
	}
	for _, u := range users {
		if u.LastActive.After(now.Add(-activeUserWindow)) {
			st.ActiveUsers++
		}
	}
	for _, a := range activities {
		if a.CreatedAt.After(now.Add(-recentActivityWindow)) {
			st.RecentActivities++
		}
	}
	return st
}

// Notifications derives mention and share notices for userID, newest first.
func (m *managerImpl) Notifications(ctx context.Context, userID string) []Notification {
	out := []Notification{}

	for _, c := range shared.LoadList[Comment](ctx, m.db, shared.KeyComments) {
		if c.UserID == userID || !slices.Contains(c.Mentions, userID) {
			continue
		}
		out = append(out, Notification{
			ID:        "mention_" + c.ID,
			Kind:      NotificationMention,
			Title:     "Você foi mencionado",
			Message:   fmt.Sprintf("%s mencionou você em um comentário", c.UserName),
			CreatedAt: c.CreatedAt,
			ActionURL: fmt.Sprintf("/templates/%s#comment-%s", c.TemplateID, c.ID),
		})
	}

	users := m.users(ctx)
	for _, s := range shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations) {
		if s.SharedBy == userID || !slices.Contains(s.SharedWith, userID) {
			continue
		}
		name, _ := userName(users, s.SharedBy)
		out = append(out, Notification{
			ID:        "share_" + s.TemplateID,
			Kind:      NotificationShare,
			Title:     "Template compartilhado",
			Message:   fmt.Sprintf("%s compartilhou um template com você", name),
			CreatedAt: s.SharedAt,
			ActionURL: "/templates/" + s.TemplateID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *managerImpl) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{
		Users:      m.users(ctx),
		Shares:     shared.LoadList[Share](ctx, m.db, shared.KeyCollaborations),
		Comments:   shared.LoadList[Comment](ctx, m.db, shared.KeyComments),
		Workspaces: shared.LoadList[Workspace](ctx, m.db, shared.KeyWorkspaces),
		Activities: shared.LoadList[Activity](ctx, m.db, shared.KeyActivities),
	}
}
