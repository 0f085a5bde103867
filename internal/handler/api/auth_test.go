//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rsv-catalog/internal/handler/api"
	reqdto "rsv-catalog/internal/handler/dto/request"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/session"
	"rsv-catalog/tests/common/httptest"
	"rsv-catalog/tests/common/testutil"
	sessionmock "rsv-catalog/tests/mock/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	sessions *sessionmock.MockService
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.sessions = sessionmock.NewMockService(s.mockCtrl)

	h := api.NewAuthHandler(s.sessions)
	s.router.POST("/auth/token", h.Token)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestToken() {
	url := "/auth/token"
	reqBody := reqdto.TokenRequest{UserID: "user_vendas"}

	s.Run("success: returns the issued token", func() {
		expiresAt := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
		s.sessions.EXPECT().Issue(gomock.Any(), "user_vendas").Return(&session.Token{
			AccessToken: "signed",
			ExpiresAt:   expiresAt,
			User:        &collaboration.User{ID: "user_vendas", Role: collaboration.RoleEditor},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var got session.Token
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("signed", got.AccessToken)
		s.True(expiresAt.Equal(got.ExpiresAt))
		s.Equal(collaboration.RoleEditor, got.User.Role)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing userId", mutate: testutil.Field("userId", nil)},
			{name: "empty userId", mutate: testutil.Field("userId", "")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 404 for unknown user", func() {
		s.sessions.EXPECT().Issue(gomock.Any(), "ghost").Return(nil, errs.Wrap(errs.ErrUserNotFound, "ghost"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.TokenRequest{UserID: "ghost"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Token issue failed")
	})

	s.Run("error: 500 when signing fails", func() {
		s.sessions.EXPECT().Issue(gomock.Any(), "user_vendas").Return(nil, session.ErrTokenGeneration)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Token issue failed")
	})
}
