//go:build unit

package collaboration_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/shared"
	"rsv-catalog/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CollaborationTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.MockClock
	manager collaboration.Manager
}

func (s *CollaborationTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC))
	s.manager = collaboration.NewManager(testutil.NewMemoryPersistence(s.T()), s.clock, testutil.DiscardLogger())
}

func TestCollaborationTestSuite(t *testing.T) {
	suite.Run(t, new(CollaborationTestSuite))
}

func (s *CollaborationTestSuite) as(userID string) context.Context {
	return shared.WithActor(s.ctx, userID)
}

func (s *CollaborationTestSuite) TestDefaultUsers() {
	users := s.manager.Users(s.ctx)
	s.Require().Len(users, 3)
	s.Equal("default_user", users[0].ID)
	s.Equal("Administrador RSV", users[0].Name)
	s.True(users[0].Permissions.CanManageUsers)

	vendas, ok := s.manager.User(s.ctx, "user_vendas")
	s.Require().True(ok)
	s.Equal(collaboration.RoleEditor, vendas.Role)
	s.False(vendas.Permissions.CanDeleteTemplates)
	s.False(vendas.Permissions.CanExportData)
}

func (s *CollaborationTestSuite) TestCreateUserConcurrentWithReads() {
	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.manager.CreateUser(s.ctx, collaboration.NewUser{
				Name:  fmt.Sprintf("User %d", i),
				Email: fmt.Sprintf("user%d@rsv360.com.br", i),
			})
			s.NoError(err)
		}()
		go func() {
			defer wg.Done()
			s.manager.Users(s.ctx)
			s.manager.User(s.ctx, "user_vendas")
			s.manager.Stats(s.ctx)
		}()
	}
	wg.Wait()

	users := s.manager.Users(s.ctx)
	s.Len(users, 3+n)
	for i := range n {
		email := fmt.Sprintf("user%d@rsv360.com.br", i)
		s.True(slices.ContainsFunc(users, func(u collaboration.User) bool { return u.Email == email }), email)
	}
}

func (s *CollaborationTestSuite) TestCreateUser() {
	u, err := s.manager.CreateUser(s.ctx, collaboration.NewUser{Name: "Ana", Email: "ana@rsv360.com.br", Role: collaboration.RoleEditor})
	s.Require().NoError(err)
	s.NotEmpty(u.ID)
	s.Len(s.manager.Users(s.ctx), 4)

	recent := s.manager.RecentActivities(s.ctx, 0)
	s.Require().Len(recent, 1)
	s.Equal(collaboration.ActivityUserJoined, recent[0].Kind)
	s.Equal(u.ID, recent[0].UserID)
	s.Equal("Ana entrou na plataforma", recent[0].Description)

	_, err = s.manager.CreateUser(s.ctx, collaboration.NewUser{Name: "Outra", Email: "ANA@rsv360.com.br"})
	s.True(errs.Is(err, errs.ErrInvalidCollaboration))

	_, err = s.manager.CreateUser(s.ctx, collaboration.NewUser{Name: "X", Email: "x@x.com", Role: "root"})
	s.True(errs.Is(err, errs.ErrInvalidCollaboration))

	s.True(errs.Is(s.manager.Touch(s.ctx, "ghost"), errs.ErrUserNotFound))
}

func (s *CollaborationTestSuite) TestShare() {
	expires := s.clock.Now().Add(48 * time.Hour)
	_, err := s.manager.Share(s.ctx, collaboration.ShareRequest{
		TemplateID:  "hotel-a",
		SharedWith:  []string{"user_vendas"},
		Permissions: collaboration.DefaultSharePermissions(),
		ExpiresAt:   &expires,
	})
	s.Require().NoError(err)

	s.Run("replaces the previous share of the same template", func() {
		_, err := s.manager.Share(s.ctx, collaboration.ShareRequest{
			TemplateID:  "hotel-a",
			SharedWith:  []string{"user_marketing", "user_marketing"},
			Permissions: collaboration.DefaultSharePermissions(),
		})
		s.Require().NoError(err)

		s.Empty(s.manager.SharedWith(s.ctx, "user_vendas"))
		got := s.manager.SharedWith(s.ctx, "user_marketing")
		s.Require().Len(got, 1)
		s.Equal([]string{"user_marketing"}, got[0].SharedWith)
	})

	s.Run("permissions for recipient and sharer", func() {
		p, ok := s.manager.Permissions(s.ctx, "hotel-a", "user_marketing")
		s.Require().True(ok)
		s.Equal(collaboration.DefaultSharePermissions(), *p)

		owner, ok := s.manager.Permissions(s.ctx, "hotel-a", "default_user")
		s.Require().True(ok)
		s.True(owner.CanEdit)

		_, ok = s.manager.Permissions(s.ctx, "hotel-a", "user_vendas")
		s.False(ok)
	})

	s.Run("expired shares are hidden", func() {
		past := s.clock.Now().Add(time.Hour)
		_, err := s.manager.Share(s.ctx, collaboration.ShareRequest{
			TemplateID: "parque-b",
			SharedWith: []string{"user_vendas"},
			ExpiresAt:  &past,
		})
		s.Require().NoError(err)
		s.Len(s.manager.SharedWith(s.ctx, "user_vendas"), 1)

		s.clock.Add(2 * time.Hour)
		s.Empty(s.manager.SharedWith(s.ctx, "user_vendas"))
	})

	_, err = s.manager.Share(s.ctx, collaboration.ShareRequest{TemplateID: "x"})
	s.True(errs.Is(err, errs.ErrInvalidCollaboration))
}

func (s *CollaborationTestSuite) TestComments() {
	first, err := s.manager.AddComment(s.ctx, "hotel-a", "Ótimo pacote", "", []string{"user_vendas"})
	s.Require().NoError(err)
	s.Equal("Administrador RSV", first.UserName)

	s.clock.Add(time.Minute)
	reply, err := s.manager.AddComment(s.as("user_vendas"), "hotel-a", "Concordo", first.ID, nil)
	s.Require().NoError(err)
	s.Equal(first.ID, reply.ParentID)
	s.Equal([]string{}, reply.Mentions)

	_, err = s.manager.AddComment(s.ctx, "hotel-b", "resposta", first.ID, nil)
	s.True(errs.Is(err, errs.ErrCommentNotFound))
	_, err = s.manager.AddComment(s.ctx, "hotel-a", "   ", "", nil)
	s.True(errs.Is(err, errs.ErrInvalidCollaboration))

	comments := s.manager.Comments(s.ctx, "hotel-a")
	s.Require().Len(comments, 2)
	s.Equal(first.ID, comments[0].ID)

	s.Run("one reaction per user", func() {
		_, err := s.manager.React(s.as("user_vendas"), first.ID, "👍")
		s.Require().NoError(err)
		c, err := s.manager.React(s.as("user_vendas"), first.ID, "❤️")
		s.Require().NoError(err)
		s.Require().Len(c.Reactions, 1)
		s.Equal("❤️", c.Reactions[0].Emoji)

		c, err = s.manager.React(s.ctx, first.ID, "🎉")
		s.Require().NoError(err)
		s.Len(c.Reactions, 2)

		_, err = s.manager.React(s.ctx, "missing", "👍")
		s.True(errs.Is(err, errs.ErrCommentNotFound))
	})
}

func (s *CollaborationTestSuite) TestWorkspaces() {
	w, err := s.manager.CreateWorkspace(s.as("user_marketing"), "Campanhas", "Verão", collaboration.WorkspaceSettings{EnableComments: true})
	s.Require().NoError(err)
	s.Require().Len(w.Members, 1)
	s.Equal(collaboration.MemberOwner, w.Members[0].Role)
	s.Equal("user_marketing", w.Members[0].UserID)

	added, err := s.manager.AddMember(s.ctx, w.ID, "user_vendas", collaboration.MemberMember, collaboration.DefaultSharePermissions())
	s.Require().NoError(err)
	s.True(added)

	added, err = s.manager.AddMember(s.ctx, w.ID, "user_vendas", collaboration.MemberAdmin, collaboration.DefaultSharePermissions())
	s.Require().NoError(err)
	s.False(added)

	_, err = s.manager.AddMember(s.ctx, "nope", "user_vendas", "", collaboration.SharePermissions{})
	s.True(errs.Is(err, errs.ErrWorkspaceNotFound))
	_, err = s.manager.AddMember(s.ctx, w.ID, "ghost", "", collaboration.SharePermissions{})
	s.True(errs.Is(err, errs.ErrUserNotFound))

	s.Len(s.manager.UserWorkspaces(s.ctx, "user_vendas"), 1)
	s.Empty(s.manager.UserWorkspaces(s.ctx, "default_user"))
}

func (s *CollaborationTestSuite) TestActivityLog() {
	for i := 0; i < 1005; i++ {
		_, err := s.manager.LogActivity(s.ctx, collaboration.ActivityInput{
			Kind:        collaboration.ActivityTemplateUsed,
			TemplateID:  fmt.Sprintf("t-%d", i),
			Description: "Template utilizado",
		})
		s.Require().NoError(err)
	}

	recent := s.manager.RecentActivities(s.ctx, 0)
	s.Len(recent, 50)
	s.Equal("t-1004", recent[0].TemplateID)
	s.Len(s.manager.RecentActivities(s.ctx, 5000), 1000)
	s.Len(s.manager.UserActivities(s.ctx, "default_user", 0), 20)
	s.Empty(s.manager.UserActivities(s.ctx, "user_vendas", 0))

	_, err := s.manager.LogActivity(s.ctx, collaboration.ActivityInput{Kind: "template_deleted"})
	s.True(errs.Is(err, errs.ErrInvalidCollaboration))
}

func (s *CollaborationTestSuite) TestStatsAndNotifications() {
	_, err := s.manager.Share(s.ctx, collaboration.ShareRequest{TemplateID: "hotel-a", SharedWith: []string{"user_vendas"}})
	s.Require().NoError(err)
	s.clock.Add(time.Hour)
	_, err = s.manager.AddComment(s.ctx, "hotel-a", "@vendas veja", "", []string{"user_vendas"})
	s.Require().NoError(err)
	// self mentions never notify
	_, err = s.manager.AddComment(s.as("user_vendas"), "hotel-a", "ok", "", []string{"user_vendas"})
	s.Require().NoError(err)

	notes := s.manager.Notifications(s.ctx, "user_vendas")
	s.Require().Len(notes, 2)
	s.Equal(collaboration.NotificationMention, notes[0].Kind)
	s.Equal("Você foi mencionado", notes[0].Title)
	s.Equal("share_hotel-a", notes[1].ID)
	s.Equal("Administrador RSV compartilhou um template com você", notes[1].Message)

	st := s.manager.Stats(s.ctx)
	s.Equal(3, st.TotalUsers)
	s.Equal(3, st.ActiveUsers)
	s.Equal(1, st.SharedTemplates)
	s.Equal(2, st.TotalComments)
	s.Equal(3, st.RecentActivities)

	s.clock.Add(8 * 24 * time.Hour)
	s.Require().NoError(s.manager.Touch(s.ctx, "user_vendas"))
	st = s.manager.Stats(s.ctx)
	s.Equal(1, st.ActiveUsers)
	s.Zero(st.RecentActivities)
}

func TestActorDefaults(t *testing.T) {
	assert.Equal(t, "default_user", shared.ActorFrom(context.Background()))
	assert.Equal(t, "default_user", shared.ActorFrom(shared.WithActor(context.Background(), "")))
	require.Equal(t, "user_vendas", shared.ActorFrom(shared.WithActor(context.Background(), "user_vendas")))
}
