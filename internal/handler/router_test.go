//go:build unit

package handler_test

import (
	"context"
	"net/http"
	nethttptest "net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/handler"
	"rsv-catalog/internal/handler/api"
	reqdto "rsv-catalog/internal/handler/dto/request"
	resdto "rsv-catalog/internal/handler/dto/response"
	"rsv-catalog/internal/handler/middleware"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/jwt"
	"rsv-catalog/internal/pkg/metrics"
	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/export"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/quotations"
	"rsv-catalog/internal/usecase/session"
	"rsv-catalog/internal/usecase/templates"
	"rsv-catalog/internal/usecase/versions"
	"rsv-catalog/tests/common/builder"
	"rsv-catalog/tests/common/httptest"
	"rsv-catalog/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func fixedCatalog(_ context.Context, now time.Time) ([]catalog.Entry, error) {
	lago := builder.NewTemplateBuilder().With(func(b *builder.TemplateBuilder) {
		b.ID = "hotel-lago"
		b.Name = "Hotel do Lago"
		b.Tags = []string{"hotel", "caldas-novas", "alta-temporada"}
		b.Items = []quotation.Item{{ID: "i1", Name: "Diária", Quantity: 2, UnitPrice: 100}}
		b.Custom = false
	}).BuildDomain(now)
	parque := builder.NewTemplateBuilder().With(func(b *builder.TemplateBuilder) {
		b.ID = "parque-aguas"
		b.Name = "Parque das Águas"
		b.Type = quotation.TypePark
		b.Tags = []string{"parque", "rio-quente"}
		b.Items = []quotation.Item{{ID: "i1", Name: "Ingresso adulto", Quantity: 1, UnitPrice: 120}}
		b.Custom = false
	}).BuildDomain(now)
	return []catalog.Entry{lago, parque}, nil
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	clock  *clock.MockClock
	cfg    config.Config
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.clock = clock.NewMockClock(baseTime)
	s.cfg = config.NewTestConfig()

	db := testutil.NewMemoryPersistence(s.T())
	logger := testutil.DiscardLogger()
	m := metrics.New()
	calc := quotation.NewDefaultPriceCalculator()

	qs := quotations.NewStore(db, calc, s.clock, logger)
	am := analytics.NewManager(db, s.clock, logger)
	cm := collaboration.NewManager(db, s.clock, logger)
	fs := favorites.NewStore(db, s.clock, logger)
	vm := versions.NewManager(db, s.clock, logger)
	ts := templates.NewStore(db, fixedCatalog, s.cfg.Catalog, s.clock, logger, m)
	svc := templates.NewService(ts, qs, am, vm, cm, fs, calc, s.clock, logger)
	sessions := session.NewService(jwt.NewService(s.cfg.JWT.Secret, time.Hour, s.clock), cm, logger)
	renderer, err := export.NewRenderer(calc)
	s.Require().NoError(err)

	s.router = gin.New()
	handler.NewRouter(s.router, s.cfg, middleware.NewLogger(s.cfg.Log), m, middleware.NewActorMiddleware(sessions), handler.Handlers{
		Auth:          api.NewAuthHandler(sessions),
		Templates:     api.NewTemplateHandler(ts, svc, vm, am, cm, fs, calc),
		Quotations:    api.NewQuotationHandler(qs, renderer, s.cfg, s.clock),
		Analytics:     api.NewAnalyticsHandler(am),
		Collaboration: api.NewCollaborationHandler(cm),
		Favorites:     api.NewFavoritesHandler(fs, ts),
		Versions:      api.NewVersionsHandler(vm, svc),
	})
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path string, body any, token string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequest(s.T(), s.router, method, path, body, token)
}

func (s *RouterTestSuite) token(userID string) string {
	rec := s.do(http.MethodPost, "/api/auth/token", reqdto.TokenRequest{UserID: userID}, "")
	var tok session.Token
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &tok)
	s.Require().NotEmpty(tok.AccessToken)
	return tok.AccessToken
}

func (s *RouterTestSuite) initCatalog() {
	rec := s.do(http.MethodPost, "/api/templates/initialize", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	rec = s.do(http.MethodGet, "/metrics", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `rsv_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func (s *RouterTestSuite) TestCatalogState() {
	var state resdto.StateResponse
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/state", nil, ""), http.StatusOK, &state)
	s.Equal(templates.StateUninitialized, state.State)
	s.Zero(state.Count)

	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/api/templates/initialize", nil, ""), http.StatusOK, &state)
	s.Equal(templates.StateUninitialized, state.State)
	s.Equal(s.cfg.Catalog.SchemaVersion, state.Version)
	s.Equal(2, state.Count)

	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/state", nil, ""), http.StatusOK, &state)
	s.Equal(templates.StateCurrent, state.State)
}

func (s *RouterTestSuite) TestListTemplates() {
	s.initCatalog()

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all", query: "", want: []string{"hotel-lago", "parque-aguas"}},
		{name: "category", query: "?category=" + url.QueryEscape(catalog.MainCategoryParks), want: []string{"parque-aguas"}},
		{name: "text", query: "?q=lago", want: []string{"hotel-lago"}},
		{name: "region", query: "?region=" + url.QueryEscape("Rio Quente"), want: []string{"parque-aguas"}},
		{name: "price range", query: "?min=150&max=250", want: []string{"hotel-lago"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			var got resdto.TemplateListResponse
			httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates"+tc.query, nil, ""), http.StatusOK, &got)
			ids := make([]string, 0, len(got.Templates))
			for _, e := range got.Templates {
				ids = append(ids, e.ID)
			}
			s.ElementsMatch(tc.want, ids)
			s.Equal(len(tc.want), got.Total)
		})
	}

	s.Run("bad season", func() {
		rec := s.do(http.MethodGet, "/api/templates?season=inverno", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *RouterTestSuite) TestTemplateCRUD() {
	s.initCatalog()

	s.Run("get prices the entry", func() {
		var got resdto.TemplateResponse
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/hotel-lago", nil, ""), http.StatusOK, &got)
		s.Equal("Hotel do Lago", got.Name)
		s.InDelta(200, got.Subtotal, 0.001)
		s.InDelta(200, got.Total, 0.001)
		s.False(got.IsFavorite)
	})

	s.Run("get unknown", func() {
		httptest.AssertErrorResponse(s.T(), s.do(http.MethodGet, "/api/templates/nope", nil, ""), http.StatusNotFound, "Template not found")
	})

	var created resdto.TemplateResponse
	s.Run("create, update and list versions", func() {
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/api/templates", builder.NewTemplateBuilder().BuildDTO(), ""), http.StatusCreated, &created)
		s.True(created.Custom)
		s.True(strings.HasPrefix(created.ID, "custom-"))
		s.Equal(catalog.MainCategoryHotels, created.MainCategory)
		s.InDelta(600, created.Total, 0.001)

		name := "Pousada do Lago Azul"
		var updated resdto.TemplateResponse
		rec := s.do(http.MethodPut, "/api/templates/"+created.ID, reqdto.UpdateTemplateRequest{Name: &name}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Equal(name, updated.Name)
		s.Equal(created.Items, updated.Items)

		var history []versions.Version
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/"+created.ID+"/versions", nil, ""), http.StatusOK, &history)
		s.Require().Len(history, 2)
		s.Equal(2, history[0].Version)
		s.NotEmpty(history[0].Changes)
		s.Equal("Template criado", history[1].ChangeDescription)
	})

	s.Run("create without name", func() {
		body := testutil.DtoMap(s.T(), builder.NewTemplateBuilder().BuildDTO(), testutil.Field("name", nil))
		httptest.AssertErrorResponse(s.T(), s.do(http.MethodPost, "/api/templates", body, ""), http.StatusBadRequest, "Invalid request")
	})

	s.Run("create with negative price", func() {
		dto := builder.NewTemplateBuilder().With(func(b *builder.TemplateBuilder) {
			b.Items = []quotation.Item{{ID: "x", Name: "x", Quantity: 1, UnitPrice: -1}}
		}).BuildDTO()
		httptest.AssertErrorResponse(s.T(), s.do(http.MethodPost, "/api/templates", dto, ""), http.StatusBadRequest, "Create template failed")
	})

	s.Run("delete", func() {
		rec := s.do(http.MethodDelete, "/api/templates/"+created.ID, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		rec = s.do(http.MethodDelete, "/api/templates/"+created.ID, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Template not found")
	})
}

func (s *RouterTestSuite) TestInstantiateAndFavorite() {
	s.initCatalog()
	token := s.token("user_vendas")

	var q quotation.Quotation
	rec := s.do(http.MethodPost, "/api/templates/hotel-lago/instantiate", reqdto.InstantiateRequest{ClientName: "João"}, token)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &q)
	s.Equal("hotel-lago", q.TemplateID)
	s.Equal("João", q.ClientName)
	s.Equal(quotation.StatusDraft, q.Status)
	s.InDelta(200, q.Total, 0.001)

	var entry resdto.TemplateResponse
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/hotel-lago", nil, ""), http.StatusOK, &entry)
	s.Equal(1, entry.UsageCount)

	var fav resdto.FavoriteResponse
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/api/templates/hotel-lago/favorite", nil, token), http.StatusOK, &fav)
	s.True(fav.IsFavorite)

	var mine []favorites.Favorite
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/favorites", nil, token), http.StatusOK, &mine)
	s.Require().Len(mine, 1)
	s.Equal("hotel-lago", mine[0].TemplateID)

	// favorites are per actor
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/favorites", nil, ""), http.StatusOK, &mine)
	s.Empty(mine)

	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodPost, "/api/templates/hotel-lago/favorite", nil, token), http.StatusOK, &fav)
	s.False(fav.IsFavorite)
}

func (s *RouterTestSuite) TestComments() {
	s.initCatalog()

	rec := s.do(http.MethodPost, "/api/templates/hotel-lago/comments", reqdto.CommentRequest{Content: "Ótimo pacote"}, "")
	var c collaboration.Comment
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &c)

	var list []collaboration.Comment
	httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/templates/hotel-lago/comments", nil, ""), http.StatusOK, &list)
	s.Len(list, 1)

	rec = s.do(http.MethodPost, "/api/templates/nope/comments", reqdto.CommentRequest{Content: "x"}, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Template not found")
}

func (s *RouterTestSuite) TestAdminOnlyRoutes() {
	s.initCatalog()

	rec := s.do(http.MethodPost, "/api/templates/refresh", nil, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")

	rec = s.do(http.MethodPost, "/api/templates/refresh", nil, s.token("user_vendas"))
	httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")

	var state resdto.StateResponse
	rec = s.do(http.MethodPost, "/api/templates/refresh", nil, s.token("default_user"))
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &state)
	s.Equal(templates.StateCurrent, state.State)
	s.Equal(2, state.Count)

	rec = s.do(http.MethodGet, "/api/templates", nil, "not-a-token")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
}

func (s *RouterTestSuite) TestQuotationFlow() {
	var q quotation.Quotation
	rec := s.do(http.MethodPost, "/api/quotations", builder.NewQuotationBuilder().BuildDTO(), "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &q)
	s.NotEmpty(q.ID)
	s.InDelta(350, q.Subtotal, 0.001)
	s.InDelta(330.75, q.Total, 0.001)

	s.Run("status transitions", func() {
		rec := s.do(http.MethodPatch, "/api/quotations/"+q.ID+"/status", reqdto.StatusRequest{Status: quotation.StatusSent}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = s.do(http.MethodPatch, "/api/quotations/"+q.ID+"/status", reqdto.StatusRequest{Status: quotation.StatusDraft}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Status change failed")
	})

	s.Run("list by status", func() {
		var got resdto.QuotationListResponse
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/quotations?status=sent,approved", nil, ""), http.StatusOK, &got)
		s.Equal(1, got.Total)
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/quotations?status=draft", nil, ""), http.StatusOK, &got)
		s.Zero(got.Total)
	})

	s.Run("export docx", func() {
		rec := s.do(http.MethodGet, "/api/quotations/"+q.ID+"/export?format=docx", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Content-Disposition"), ".docx")
		s.Contains(rec.Body.String(), "R$ 330,75")
	})

	s.Run("share link renders the public page", func() {
		var links resdto.ShareLinksResponse
		httptest.AssertSuccessResponse(s.T(), s.do(http.MethodGet, "/api/quotations/"+q.ID+"/share", nil, ""), http.StatusOK, &links)
		s.True(strings.HasPrefix(links.ShareURL, s.cfg.Share.BaseURL+"/cotacoes/share?data="))
		s.True(strings.HasPrefix(links.Mailto, "mailto:maria@example.com?"))

		u, err := url.Parse(links.ShareURL)
		s.Require().NoError(err)
		rec := s.do(http.MethodGet, u.RequestURI(), nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Maria Silva")

		rec = s.do(http.MethodGet, "/cotacoes/share?data=%7Bbroken", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid share link")
	})

	s.Run("clear all needs admin", func() {
		rec := s.do(http.MethodDelete, "/api/quotations", nil, s.token("user_marketing"))
		s.Equal(http.StatusForbidden, rec.Code)

		rec = s.do(http.MethodDelete, "/api/quotations", nil, s.token("default_user"))
		s.Equal(http.StatusNoContent, rec.Code)
		httptest.AssertErrorResponse(s.T(), s.do(http.MethodGet, "/api/quotations/"+q.ID, nil, ""), http.StatusNotFound, "Quotation not found")
	})
}

func (s *RouterTestSuite) TestTrackEvent() {
	s.initCatalog()

	rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/analytics/events", "application/json",
		[]byte(`{"type":"view","templateId":"hotel-lago"}`), "")
	var e analytics.Event
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &e)
	s.Equal("default_user", e.UserID)

	rec = httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/api/analytics/events", "application/json",
		[]byte(`{"type":"use","templateId":"hotel-lago"}`), "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid event")
}
