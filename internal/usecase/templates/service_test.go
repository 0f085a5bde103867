//go:build unit

package templates_test

import (
	"context"
	"testing"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/quotations"
	"rsv-catalog/internal/usecase/shared"
	"rsv-catalog/internal/usecase/templates"
	"rsv-catalog/internal/usecase/versions"
	"rsv-catalog/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	clock         *clock.MockClock
	store         templates.Store
	quotations    quotations.Store
	analytics     analytics.Manager
	versions      versions.Manager
	collaboration collaboration.Manager
	favorites     favorites.Store
	service       templates.Service
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = shared.WithActor(context.Background(), "user_vendas")
	s.clock = clock.NewMockClock(baseTime)
	db := testutil.NewMemoryPersistence(s.T())
	logger := testutil.DiscardLogger()
	calc := quotation.NewDefaultPriceCalculator()

	seed := func(_ context.Context, now time.Time) ([]catalog.Entry, error) {
		hotel := generatedEntry("hotel-a", now)
		hotel.Title = "Hotel em Caldas Novas"
		hotel.Tags = []string{"hotel", "caldas-novas", "alta-temporada"}
		hotel.Location.Region = "Goiás"
		hotel.Highlights = []quotation.Highlight{{ID: "hl-1", Title: "Piscinas", Checked: true}}
		hotel.Variant = &catalog.Variant{OfferingID: "a", ValidityDays: 15}

		park := generatedEntry("parque-b", now)
		park.Type = quotation.TypePark
		park.MainCategory = catalog.MainCategoryParks
		park.Tags = []string{"parque", "bonito", "baixa-temporada"}
		park.Items[0].UnitPrice = 40
		park.Discount = quotation.Percentage(10)

		tour := generatedEntry("passeio-c", now)
		tour.Type = quotation.TypeTour
		tour.MainCategory = catalog.MainCategoryTours
		tour.Tags = []string{"passeio", "gramado"}
		tour.Items[0].UnitPrice = 500
		return []catalog.Entry{hotel, park, tour}, nil
	}

	s.store = templates.NewStore(db, seed, config.CatalogConfig{SchemaVersion: "1.0.0"}, s.clock, logger, nil)
	s.quotations = quotations.NewStore(db, calc, s.clock, logger)
	s.analytics = analytics.NewManager(db, s.clock, logger)
	s.versions = versions.NewManager(db, s.clock, logger)
	s.collaboration = collaboration.NewManager(db, s.clock, logger)
	s.favorites = favorites.NewStore(db, s.clock, logger)
	s.service = templates.NewService(s.store, s.quotations, s.analytics, s.versions, s.collaboration, s.favorites, calc, s.clock, logger)

	_, err := s.store.InitializeDefaults(s.ctx)
	s.Require().NoError(err)
}

func ids(entries []catalog.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func (s *ServiceTestSuite) TestFilters() {
	s.Equal([]string{"hotel-a"}, ids(s.service.Search(s.ctx, "CALDAS")))
	s.Empty(s.service.Search(s.ctx, "inexistente"))
	s.Equal([]string{"parque-b"}, ids(s.service.ByRegion(s.ctx, "Bonito")))
	s.Equal([]string{"hotel-a"}, ids(s.service.BySeason(s.ctx, templates.SeasonHigh)))
	s.Equal([]string{"hotel-a", "parque-b"}, ids(s.service.BySeason(s.ctx, templates.SeasonAll)))

	// hotel 200, park 80 minus 10%, tour 1000
	s.Equal([]string{"parque-b"}, ids(s.service.ByPriceRange(s.ctx, 0, 100)))
	s.Equal([]string{"hotel-a", "passeio-c"}, ids(s.service.ByPriceRange(s.ctx, 150, 1000)))

	maxPrice := 500.0
	got := s.service.List(s.ctx, templates.ListFilter{Category: catalog.MainCategoryHotels, MaxPrice: &maxPrice})
	s.Equal([]string{"hotel-a"}, ids(got))
}

func (s *ServiceTestSuite) TestIncrementUsage() {
	e, err := s.service.IncrementUsage(s.ctx, "hotel-a")
	s.Require().NoError(err)
	s.Equal(1, e.UsageCount)

	a, ok := s.analytics.TemplateAnalytics(s.ctx, "hotel-a")
	s.Require().True(ok)
	s.Equal(1, a.Metrics.Uses)
	s.Equal("Goiás", a.Region)

	recent := s.favorites.RecentlyUsed(s.ctx)
	s.Require().Len(recent, 1)
	s.Equal("user_vendas", recent[0].UserID)

	acts := s.collaboration.UserActivities(s.ctx, "user_vendas", 0)
	s.Require().Len(acts, 1)
	s.Equal(collaboration.ActivityTemplateUsed, acts[0].Kind)

	_, err = s.service.IncrementUsage(s.ctx, "missing")
	s.True(errs.Is(err, errs.ErrTemplateNotFound))
}

func (s *ServiceTestSuite) TestInstantiate() {
	q, err := s.service.Instantiate(s.ctx, "hotel-a", templates.Client{Name: "Maria Silva", Email: "maria@email.com"})
	s.Require().NoError(err)
	s.NotEmpty(q.ID)
	s.NotEqual("hotel-a", q.ID)
	s.Equal("hotel-a", q.TemplateID)
	s.Equal(quotation.StatusDraft, q.Status)
	s.Equal("Hotel em Caldas Novas", q.Title)
	s.Equal(200.0, q.Total)
	s.Require().NotNil(q.ValidUntil)
	s.Equal(baseTime.AddDate(0, 0, 15), *q.ValidUntil)

	e, _ := s.store.GetByID(s.ctx, "hotel-a")
	s.Empty(cmp.Diff(e.Items, q.Items))
	s.Empty(cmp.Diff(e.Highlights, q.Highlights))
	s.Equal(1, e.UsageCount)

	q.Items[0].UnitPrice = 1
	again, _ := s.store.GetByID(s.ctx, "hotel-a")
	s.Equal(100.0, again.Items[0].UnitPrice)

	_, err = s.service.Instantiate(s.ctx, "missing", templates.Client{})
	s.True(errs.Is(err, errs.ErrTemplateNotFound))
}

type failingAnalytics struct {
	analytics.Manager
}

func (failingAnalytics) Track(context.Context, analytics.Event) (*analytics.Event, error) {
	return nil, errs.New("analytics unavailable")
}

func (s *ServiceTestSuite) TestInstantiateRemovesQuotationWhenUsageFails() {
	svc := templates.NewService(s.store, s.quotations, failingAnalytics{s.analytics}, s.versions, s.collaboration,
		s.favorites, quotation.NewDefaultPriceCalculator(), s.clock, testutil.DiscardLogger())

	q, err := svc.Instantiate(s.ctx, "hotel-a", templates.Client{Name: "Maria Silva", Email: "maria@email.com"})
	s.Require().Error(err)
	s.Nil(q)
	s.Empty(s.quotations.GetAll(s.ctx))
}

func (s *ServiceTestSuite) TestCreateFromQuotation() {
	samples, err := s.quotations.LoadSampleData(s.ctx)
	s.Require().NoError(err)

	e, err := s.service.CreateFromQuotation(s.ctx, samples[0].ID, "Pacote Maria", "Baseado na cotação")
	s.Require().NoError(err)
	s.True(e.Custom)
	s.Equal(catalog.MainCategoryHotels, e.MainCategory)
	s.Len(e.Items, len(samples[0].Items))

	vs := s.versions.Versions(s.ctx, e.ID)
	s.Require().Len(vs, 1)
	s.Equal("user_vendas", vs[0].CreatedBy)

	_, err = s.service.CreateFromQuotation(s.ctx, "missing", "x", "")
	s.True(errs.Is(err, errs.ErrQuotationNotFound))
}

func (s *ServiceTestSuite) TestSaveWithVersionAndRestore() {
	e, _ := s.store.GetByID(s.ctx, "passeio-c")
	original := e.Name

	e.Name = "Passeio Premium"
	saved, err := s.service.SaveWithVersion(s.ctx, *e, "Novo nome")
	s.Require().NoError(err)
	s.Equal("Passeio Premium", saved.Name)

	v, ok := s.versions.ActiveVersion(s.ctx, "passeio-c")
	s.Require().True(ok)
	s.Equal(1, v.Version)
	s.Require().NotEmpty(v.Changes)
	s.Equal("name", v.Changes[0].Field)

	s.clock.Add(time.Hour)
	e.Name = "Passeio Luxo"
	_, err = s.service.SaveWithVersion(s.ctx, *e, "")
	s.Require().NoError(err)

	restored, err := s.service.RestoreVersion(s.ctx, "passeio-c", 1)
	s.Require().NoError(err)
	s.Equal("Passeio Premium", restored.Name)
	s.NotEqual(original, restored.Name)

	current, _ := s.store.GetByID(s.ctx, "passeio-c")
	s.Equal("Passeio Premium", current.Name)
	s.Len(s.versions.Versions(s.ctx, "passeio-c"), 3)

	edits := 0
	for _, a := range s.collaboration.RecentActivities(s.ctx, 0) {
		if a.Kind == collaboration.ActivityTemplateEdited {
			edits++
		}
	}
	s.Equal(2, edits)
}

func (s *ServiceTestSuite) TestShareViewAndFavorite() {
	sh, err := s.service.Share(s.ctx, "parque-b", []string{"user_marketing"}, "Veja este")
	s.Require().NoError(err)
	s.Equal(collaboration.DefaultSharePermissions(), sh.Permissions)
	s.Equal("user_vendas", sh.SharedBy)

	s.Require().NoError(s.service.TrackView(s.ctx, "parque-b"))
	a, _ := s.analytics.TemplateAnalytics(s.ctx, "parque-b")
	s.Equal(1, a.Metrics.Shares)
	s.Equal(1, a.Metrics.Views)

	s.True(errs.Is(s.service.TrackView(s.ctx, "missing"), errs.ErrTemplateNotFound))

	on, err := s.service.ToggleFavorite(s.ctx, "parque-b")
	s.Require().NoError(err)
	s.True(on)
	s.True(s.favorites.IsFavorite(s.ctx, "parque-b", "user_vendas"))
	on, err = s.service.ToggleFavorite(s.ctx, "parque-b")
	s.Require().NoError(err)
	s.False(on)
}

func (s *ServiceTestSuite) TestAdvancedStatsAndExport() {
	for i := 0; i < 3; i++ {
		_, err := s.service.IncrementUsage(s.ctx, "passeio-c")
		s.Require().NoError(err)
	}

	st := s.service.AdvancedStats(s.ctx)
	s.Equal(3, st.TotalTemplates)
	s.Equal(map[string]int{catalog.MainCategoryHotels: 1, catalog.MainCategoryParks: 1, catalog.MainCategoryTours: 1}, st.TemplatesByCategory)
	s.Equal(map[string]int{"caldas-novas": 1, "bonito": 1, "gramado": 1}, st.TemplatesByRegion)
	s.InDelta(1.0, st.AverageUsage, 1e-9)
	s.Equal("passeio-c", st.TopUsed[0].ID)
	s.Len(st.RecentlyCreated, 3)
	s.Equal(3, st.Analytics.TotalUses)
	s.Equal(1, st.Favorites.RecentlyUsedCount)

	doc, err := s.service.ExportAll(s.ctx)
	s.Require().NoError(err)
	s.Equal("2.0", doc.Version)
	s.Len(doc.Templates, 3)
	s.Equal("1.0", doc.Favorites.Version)
	s.Equal("all", doc.Versions.TemplateID)

	removed, err := s.service.CleanupOldData(s.ctx)
	s.Require().NoError(err)
	s.Zero(removed)
}
