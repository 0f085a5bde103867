package templates

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/analytics"
	"rsv-catalog/internal/usecase/collaboration"
	"rsv-catalog/internal/usecase/favorites"
	"rsv-catalog/internal/usecase/quotations"
	"rsv-catalog/internal/usecase/shared"
	"rsv-catalog/internal/usecase/versions"

	"github.com/jinzhu/copier"
)

const (
	keepVersionsOnCleanup = 5
	recentlyCreatedWindow = 7 * 24 * time.Hour
	statsListLimit        = 5
	popularTagsLimit      = 10
	exportAllVersion      = "2.0"
)

// RegionTags are the destination tags counted by AdvancedStats.
var RegionTags = []string{
	"caldas-novas", "bonito", "gramado", "fernando-noronha", "rio-de-janeiro", "sao-paulo", "salvador",
}

type Season string

const (
	SeasonHigh Season = "alta"
	SeasonLow  Season = "baixa"
	SeasonAll  Season = "all"
)

func (s Season) tags() []string {
	switch s {
	case SeasonHigh:
		return []string{"alta-temporada"}
	case SeasonLow:
		return []string{"baixa-temporada"}
	default:
		return []string{"alta-temporada", "baixa-temporada"}
	}
}

// ListFilter narrows the catalog listing. Zero fields are ignored.
type ListFilter struct {
	Category string
	Query    string
	Region   string
	Season   Season
	MinPrice *float64
	MaxPrice *float64
}

type Client struct {
	Name     string `json:"clientName"`
	Email    string `json:"clientEmail"`
	Phone    string `json:"clientPhone,omitempty"`
	Document string `json:"clientDocument,omitempty"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type AdvancedStats struct {
	TotalTemplates      int                  `json:"totalTemplates"`
	TemplatesByCategory map[string]int       `json:"templatesByCategory"`
	TemplatesByRegion   map[string]int       `json:"templatesByRegion"`
	AverageUsage        float64              `json:"averageUsage"`
	MostPopularTags     []TagCount           `json:"mostPopularTags"`
	RecentlyCreated     []catalog.Entry      `json:"recentlyCreated"`
	TopUsed             []catalog.Entry      `json:"topUsed"`
	Analytics           analytics.QuickStats `json:"analytics"`
	Collaboration       collaboration.Stats  `json:"collaboration"`
	Favorites           favorites.Stats      `json:"favorites"`
}

type ExportDocument struct {
	Templates     []catalog.Entry           `json:"templates"`
	Favorites     *favorites.ExportDocument `json:"favorites"`
	Versions      *versions.ExportDocument  `json:"versions"`
	Analytics     analytics.QuickStats      `json:"analytics"`
	Collaboration collaboration.Stats       `json:"collaboration"`
	ExportedAt    time.Time                 `json:"exportedAt"`
	Version       string                    `json:"version"`
}

// Service ties template edits and usage to analytics, version history,
// favorites and the collaboration log.
type Service interface {
	List(ctx context.Context, f ListFilter) []catalog.Entry
	Search(ctx context.Context, q string) []catalog.Entry
	ByRegion(ctx context.Context, region string) []catalog.Entry
	ByPriceRange(ctx context.Context, minPrice, maxPrice float64) []catalog.Entry
	BySeason(ctx context.Context, season Season) []catalog.Entry

	IncrementUsage(ctx context.Context, id string) (*catalog.Entry, error)
	Instantiate(ctx context.Context, id string, client Client) (*quotation.Quotation, error)
	CreateFromQuotation(ctx context.Context, quotationID, name, description string) (*catalog.Entry, error)
	SaveWithVersion(ctx context.Context, e catalog.Entry, description string) (*catalog.Entry, error)
	RestoreVersion(ctx context.Context, id string, version int) (*catalog.Entry, error)

	TrackView(ctx context.Context, id string) error
	TrackShare(ctx context.Context, id string) error
	Share(ctx context.Context, id string, users []string, message string) (*collaboration.Share, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)

	AdvancedStats(ctx context.Context) AdvancedStats
	CleanupOldData(ctx context.Context) (int, error)
	ExportAll(ctx context.Context) (*ExportDocument, error)
}

type serviceImpl struct {
	store         Store
	quotations    quotations.Store
	analytics     analytics.Manager
	versions      versions.Manager
	collaboration collaboration.Manager
	favorites     favorites.Store
	calc          quotation.PriceCalculator
	clock         clock.Clock
	logger        *slog.Logger
}

func NewService(
	store Store,
	qs quotations.Store,
	am analytics.Manager,
	vm versions.Manager,
	cm collaboration.Manager,
	fs favorites.Store,
	calc quotation.PriceCalculator,
	clk clock.Clock,
	logger *slog.Logger,
) Service {
	return &serviceImpl{
		store:         store,
		quotations:    qs,
		analytics:     am,
		versions:      vm,
		collaboration: cm,
		favorites:     fs,
		calc:          calc,
		clock:         clk,
		logger:        logger,
	}
}

func (s *serviceImpl) get(ctx context.Context, id string) (*catalog.Entry, error) {
	e, ok := s.store.GetByID(ctx, id)
	if !ok {
		return nil, errs.Wrap(errs.ErrTemplateNotFound, id)
	}
	return e, nil
}

func (s *serviceImpl) price(e *catalog.Entry) float64 {
	return s.calc.Calculate(e.Items, e.Discount, e.Tax).Total
}

func filter(all []catalog.Entry, keep func(*catalog.Entry) bool) []catalog.Entry {
	out := []catalog.Entry{}
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}

func (s *serviceImpl) List(ctx context.Context, f ListFilter) []catalog.Entry {
	seasonTags := []string(nil)
	if f.Season != "" {
		seasonTags = f.Season.tags()
	}
	return filter(s.store.GetByCategory(ctx, f.Category), func(e *catalog.Entry) bool {
		if !e.MatchesText(f.Query) {
			return false
		}
		if f.Region != "" && !e.HasTag(catalog.Slug(f.Region)) {
			return false
		}
		if seasonTags != nil && !hasAnyTag(e, seasonTags) {
			return false
		}
		if f.MinPrice != nil || f.MaxPrice != nil {
			p := s.price(e)
			if (f.MinPrice != nil && p < *f.MinPrice) || (f.MaxPrice != nil && p > *f.MaxPrice) {
				return false
			}
		}
		return true
	})
}

func hasAnyTag(e *catalog.Entry, tags []string) bool {
	for _, t := range tags {
		if e.HasTag(t) {
			return true
		}
	}
	return false
}

func (s *serviceImpl) Search(ctx context.Context, q string) []catalog.Entry {
	return s.List(ctx, ListFilter{Query: q})
}

func (s *serviceImpl) ByRegion(ctx context.Context, region string) []catalog.Entry {
	return s.List(ctx, ListFilter{Region: region})
}

// ByPriceRange matches entries whose total after discount and tax lies in [min, max].
func (s *serviceImpl) ByPriceRange(ctx context.Context, minPrice, maxPrice float64) []catalog.Entry {
	return s.List(ctx, ListFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
}

func (s *serviceImpl) BySeason(ctx context.Context, season Season) []catalog.Entry {
	if season == "" {
		season = SeasonAll
	}
	return s.List(ctx, ListFilter{Season: season})
}

// IncrementUsage counts a use of the template and records it in analytics,
// the recently-used list and the activity log.
func (s *serviceImpl) IncrementUsage(ctx context.Context, id string) (*catalog.Entry, error) {
	e, err := s.store.IncrementUsage(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, id)
	}

	actor := shared.ActorFrom(ctx)
	if _, err := s.analytics.Track(ctx, analytics.Event{
		Kind:       analytics.KindUse,
		TemplateID: e.ID,
		UserID:     actor,
		Payload: analytics.UsePayload{
			TemplateName: e.Name,
			Category:     e.MainCategory,
			Region:       e.Location.Region,
		},
	}); err != nil {
		return nil, err
	}
	if err := s.favorites.AddRecentlyUsed(ctx, e.ID, actor, e.MainCategory); err != nil {
		return nil, err
	}
	if _, err := s.collaboration.LogActivity(ctx, collaboration.ActivityInput{
		Kind:         collaboration.ActivityTemplateUsed,
		TemplateID:   e.ID,
		TemplateName: e.Name,
		Description:  fmt.Sprintf("Template %q foi utilizado", e.Name),
	}); err != nil {
		return nil, err
	}
	return e, nil
}

// content is the part of a template or quotation that moves between the two.
type content struct {
	Items          []quotation.Item
	Highlights     []quotation.Highlight
	Benefits       []quotation.Benefit
	ImportantNotes []quotation.ImportantNote
}

func copyContent(src any) (content, error) {
	var c content
	if err := copier.CopyWithOption(&c, src, copier.Option{DeepCopy: true}); err != nil {
		return content{}, errs.Wrap(err, "failed to copy items")
	}
	return c, nil
}

// Instantiate copies a template into a new draft quotation for client.
func (s *serviceImpl) Instantiate(ctx context.Context, id string, client Client) (*quotation.Quotation, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	q := quotation.Quotation{
		Title:          e.Title,
		Description:    e.Description,
		ClientName:     client.Name,
		ClientEmail:    client.Email,
		ClientPhone:    client.Phone,
		ClientDocument: client.Document,
		Type:           e.Type,
		Status:         quotation.StatusDraft,
		Discount:       e.Discount,
		Tax:            e.Tax,
		Notes:          e.Notes,
		TemplateID:     e.ID,
	}
	if q.Title == "" {
		q.Title = e.Name
	}
	c, err := copyContent(e)
	if err != nil {
		return nil, err
	}
	q.Items, q.Highlights, q.Benefits, q.ImportantNotes = c.Items, c.Highlights, c.Benefits, c.ImportantNotes
	if e.Variant != nil && e.Variant.ValidityDays > 0 {
		until := s.clock.Now().AddDate(0, 0, e.Variant.ValidityDays)
		q.ValidUntil = &until
	}

	saved, err := s.quotations.Save(ctx, q)
	if err != nil {
		return nil, err
	}
	if _, err := s.IncrementUsage(ctx, id); err != nil {
		if _, derr := s.quotations.Delete(ctx, saved.ID); derr != nil {
			s.logger.Warn("failed to remove quotation after usage error",
				"quotation_id", saved.ID, "template_id", id, "error", derr)
		}
		return nil, err
	}
	return saved, nil
}

// CreateFromQuotation saves a quotation's content as a new custom template.
func (s *serviceImpl) CreateFromQuotation(ctx context.Context, quotationID, name, description string) (*catalog.Entry, error) {
	q, ok := s.quotations.GetByID(ctx, quotationID)
	if !ok {
		return nil, errs.Wrap(errs.ErrQuotationNotFound, quotationID)
	}

	e := catalog.Entry{
		Name:         name,
		Description:  description,
		Type:         q.Type,
		MainCategory: catalog.MainCategoryFor(q.Type),
		Title:        q.Title,
		Tags:         []string{},
		Discount:     q.Discount,
		Tax:          q.Tax,
		Notes:        q.Notes,
	}
	c, err := copyContent(q)
	if err != nil {
		return nil, err
	}
	e.Items, e.Highlights, e.Benefits, e.ImportantNotes = c.Items, c.Highlights, c.Benefits, c.ImportantNotes
	return s.SaveWithVersion(ctx, e, "Criado a partir da cotação "+q.Title)
}

// SaveWithVersion saves the entry and records a version with the detected changes.
func (s *serviceImpl) SaveWithVersion(ctx context.Context, e catalog.Entry, description string) (*catalog.Entry, error) {
	var changes []versions.Change
	if e.ID != "" {
		if old, ok := s.store.GetByID(ctx, e.ID); ok {
			changes = versions.DetectChanges(*old, e)
		}
	}

	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = "Template atualizado"
	}
	if _, err := s.versions.SaveVersion(ctx, *saved, changes, description, shared.ActorFrom(ctx)); err != nil {
		return nil, err
	}
	if _, err := s.collaboration.LogActivity(ctx, collaboration.ActivityInput{
		Kind:         collaboration.ActivityTemplateEdited,
		TemplateID:   saved.ID,
		TemplateName: saved.Name,
		Description:  description,
	}); err != nil {
		return nil, err
	}
	return saved, nil
}

// RestoreVersion records the old snapshot as a new version and saves it as the current entry.
func (s *serviceImpl) RestoreVersion(ctx context.Context, id string, version int) (*catalog.Entry, error) {
	restored, err := s.versions.Restore(ctx, id, version, shared.ActorFrom(ctx))
	if err != nil {
		return nil, err
	}
	return s.store.Save(ctx, *restored)
}

func (s *serviceImpl) track(ctx context.Context, id string, kind analytics.Kind) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	_, err := s.analytics.Track(ctx, analytics.Event{Kind: kind, TemplateID: id, UserID: shared.ActorFrom(ctx)})
	return err
}

func (s *serviceImpl) TrackView(ctx context.Context, id string) error {
	return s.track(ctx, id, analytics.KindView)
}

func (s *serviceImpl) TrackShare(ctx context.Context, id string) error {
	return s.track(ctx, id, analytics.KindShare)
}

// Share grants users the default view, comment and use permissions on the template.
func (s *serviceImpl) Share(ctx context.Context, id string, users []string, message string) (*collaboration.Share, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	sh, err := s.collaboration.Share(ctx, collaboration.ShareRequest{
		TemplateID:   e.ID,
		TemplateName: e.Name,
		SharedWith:   users,
		Permissions:  collaboration.DefaultSharePermissions(),
		Message:      message,
	})
	if err != nil {
		return nil, err
	}
	if err := s.TrackShare(ctx, id); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *serviceImpl) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.favorites.Toggle(ctx, e.ID, shared.ActorFrom(ctx), e.MainCategory)
}

func (s *serviceImpl) AdvancedStats(ctx context.Context) AdvancedStats {
	all := s.store.GetAll(ctx)
	now := s.clock.Now()

	st := AdvancedStats{
		TotalTemplates:      len(all),
		TemplatesByCategory: map[string]int{},
		TemplatesByRegion:   map[string]int{},
		MostPopularTags:     []TagCount{},
		RecentlyCreated:     []catalog.Entry{},
		Analytics:           s.analytics.QuickStats(ctx),
		Collaboration:       s.collaboration.Stats(ctx),
		Favorites:           s.favorites.Stats(ctx),
	}

	tags := map[string]int{}
	var usage int
	for i := range all {
		e := &all[i]
		st.TemplatesByCategory[e.MainCategory]++
		for _, r := range RegionTags {
			if e.HasTag(r) {
				st.TemplatesByRegion[r]++
			}
		}
		for _, t := range e.Tags {
			tags[t]++
		}
		usage += e.UsageCount
		if e.CreatedAt.After(now.Add(-recentlyCreatedWindow)) && len(st.RecentlyCreated) < statsListLimit {
			st.RecentlyCreated = append(st.RecentlyCreated, *e)
		}
	}
	if len(all) > 0 {
		st.AverageUsage = float64(usage) / float64(len(all))
	}

	for t, n := range tags {
		st.MostPopularTags = append(st.MostPopularTags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(st.MostPopularTags, func(i, j int) bool {
		a, b := st.MostPopularTags[i], st.MostPopularTags[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})
	if len(st.MostPopularTags) > popularTagsLimit {
		st.MostPopularTags = st.MostPopularTags[:popularTagsLimit]
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].UsageCount > all[j].UsageCount })
	if len(all) > statsListLimit {
		all = all[:statsListLimit]
	}
	st.TopUsed = all
	return st
}

func (s *serviceImpl) CleanupOldData(ctx context.Context) (int, error) {
	removed, err := s.versions.Cleanup(ctx, keepVersionsOnCleanup)
	if err != nil {
		return 0, err
	}
	s.logger.Info("old template data cleaned up", "versions_removed", removed)
	return removed, nil
}

func (s *serviceImpl) ExportAll(ctx context.Context) (*ExportDocument, error) {
	vs, err := s.versions.Export(ctx, "")
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		Templates:     s.store.GetAll(ctx),
		Favorites:     s.favorites.Export(ctx),
		Versions:      vs,
		Analytics:     s.analytics.QuickStats(ctx),
		Collaboration: s.collaboration.Stats(ctx),
		ExportedAt:    s.clock.Now(),
		Version:       exportAllVersion,
	}, nil
}
