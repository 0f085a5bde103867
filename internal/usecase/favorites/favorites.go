package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"
)

const (
	maxFavorites        = 500
	maxRecentlyUsed     = 20
	defaultRecommended  = 6
	exportFormatVersion = "1.0"
)

type Favorite struct {
	TemplateID string    `json:"templateId"`
	UserID     string    `json:"userId"`
	Category   string    `json:"category,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

type RecentItem struct {
	TemplateID string    `json:"templateId"`
	UserID     string    `json:"userId"`
	Category   string    `json:"category,omitempty"`
	UsedAt     time.Time `json:"usedAt"`
}

type Preferences struct {
	DefaultCategory      string `json:"defaultCategory"`
	SortBy               string `json:"sortBy"`
	ViewMode             string `json:"viewMode"`
	ShowPrices           bool   `json:"showPrices"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		DefaultCategory:      catalog.CategoryAll,
		SortBy:               "name",
		ViewMode:             "grid",
		ShowPrices:           true,
		NotificationsEnabled: true,
	}
}

type Stats struct {
	TotalFavorites      int            `json:"totalFavorites"`
	FavoritesByCategory map[string]int `json:"favoritesByCategory"`
	RecentlyUsedCount   int            `json:"recentlyUsedCount"`
	MostUsedCategory    string         `json:"mostUsedCategory"`
}

type ExportDocument struct {
	Favorites    []Favorite   `json:"favorites"`
	RecentlyUsed []RecentItem `json:"recentlyUsed"`
	Preferences  Preferences  `json:"preferences"`
	ExportedAt   time.Time    `json:"exportedAt"`
	Version      string       `json:"version"`
}

type Store interface {
	Add(ctx context.Context, templateID, userID, category string) (bool, error)
	Remove(ctx context.Context, templateID, userID string) (bool, error)
	IsFavorite(ctx context.Context, templateID, userID string) bool
	Toggle(ctx context.Context, templateID, userID, category string) (bool, error)
	Favorites(ctx context.Context, userID string) []Favorite

	AddRecentlyUsed(ctx context.Context, templateID, userID, category string) error
	RecentlyUsed(ctx context.Context) []RecentItem
	Recommended(ctx context.Context, userID string, entries []catalog.Entry, limit int) []catalog.Entry

	Preferences(ctx context.Context) Preferences
	SavePreferences(ctx context.Context, p Preferences) error

	Stats(ctx context.Context) Stats
	Export(ctx context.Context) *ExportDocument
	Import(ctx context.Context, data []byte) error
}

type storeImpl struct {
	mu     sync.Mutex
	db     shared.Persistence
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore(db shared.Persistence, clk clock.Clock, logger *slog.Logger) Store {
	return &storeImpl{db: db, clock: clk, logger: logger}
}

func (s *storeImpl) favorites(ctx context.Context) []Favorite {
	return shared.LoadList[Favorite](ctx, s.db, shared.KeyFavorites)
}

func (s *storeImpl) recent(ctx context.Context) []RecentItem {
	return shared.LoadList[RecentItem](ctx, s.db, shared.KeyRecentlyUsed)
}

func (s *storeImpl) save(ctx context.Context, key string, v any) error {
	if err := s.db.Save(ctx, key, v); err != nil {
		return errs.Wrap(err, "failed to save "+key)
	}
	return nil
}

func matches(templateID, userID string) func(Favorite) bool {
	return func(f Favorite) bool { return f.TemplateID == templateID && f.UserID == userID }
}

// Add reports false when the template is already a favorite of the user.
func (s *storeImpl) Add(ctx context.Context, templateID, userID, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLocked(ctx, templateID, userID, category)
}

func (s *storeImpl) addLocked(ctx context.Context, templateID, userID, category string) (bool, error) {
	if templateID == "" {
		return false, errs.Wrap(errs.ErrInvalidTemplate, "template id is required")
	}
	all := s.favorites(ctx)
	if slices.ContainsFunc(all, matches(templateID, userID)) {
		return false, nil
	}

	all = append([]Favorite{{
		TemplateID: templateID,
		UserID:     userID,
		Category:   category,
		AddedAt:    s.clock.Now(),
	}}, all...)
	if len(all) > maxFavorites {
		all = all[:maxFavorites]
	}
	if err := s.save(ctx, shared.KeyFavorites, all); err != nil {
		return false, err
	}
	return true, nil
}

func (s *storeImpl) Remove(ctx context.Context, templateID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, templateID, userID)
}

func (s *storeImpl) removeLocked(ctx context.Context, templateID, userID string) (bool, error) {
	all := s.favorites(ctx)
	n := len(all)
	all = slices.DeleteFunc(all, matches(templateID, userID))
	if len(all) == n {
		return false, nil
	}
	if err := s.save(ctx, shared.KeyFavorites, all); err != nil {
		return false, err
	}
	return true, nil
}

func (s *storeImpl) IsFavorite(ctx context.Context, templateID, userID string) bool {
	return slices.ContainsFunc(s.favorites(ctx), matches(templateID, userID))
}

// Toggle flips the favorite and returns the new state.
func (s *storeImpl) Toggle(ctx context.Context, templateID, userID, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.favorites(ctx), matches(templateID, userID)) {
		_, err := s.removeLocked(ctx, templateID, userID)
		return false, err
	}
	_, err := s.addLocked(ctx, templateID, userID, category)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Favorites lists a user's favorites, newest first.
func (s *storeImpl) Favorites(ctx context.Context, userID string) []Favorite {
	out := []Favorite{}
	for _, f := range s.favorites(ctx) {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out
}

// AddRecentlyUsed moves the template to the front of the recently-used list.
func (s *storeImpl) AddRecentlyUsed(ctx context.Context, templateID, userID, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.recent(ctx)
	all = slices.DeleteFunc(all, func(r RecentItem) bool { return r.TemplateID == templateID })
	all = append([]RecentItem{{
		TemplateID: templateID,
		UserID:     userID,
		Category:   category,
		UsedAt:     s.clock.Now(),
	}}, all...)
	if len(all) > maxRecentlyUsed {
		all = all[:maxRecentlyUsed]
	}
	return s.save(ctx, shared.KeyRecentlyUsed, all)
}

func (s *storeImpl) RecentlyUsed(ctx context.Context) []RecentItem {
	return s.recent(ctx)
}

// Recommended suggests entries sharing a main category with the user's
// favorites, most used first.
func (s *storeImpl) Recommended(ctx context.Context, userID string, entries []catalog.Entry, limit int) []catalog.Entry {
	if limit <= 0 {
		limit = defaultRecommended
	}

	byID := make(map[string]*catalog.Entry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}

	favorite := map[string]bool{}
	categories := map[string]bool{}
	for _, f := range s.Favorites(ctx, userID) {
		favorite[f.TemplateID] = true
		if e, ok := byID[f.TemplateID]; ok {
			categories[e.MainCategory] = true
		} else if f.Category != "" {
			categories[f.Category] = true
		}
	}

	out := []catalog.Entry{}
	for _, e := range entries {
		if !favorite[e.ID] && categories[e.MainCategory] {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UsageCount > out[j].UsageCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *storeImpl) Preferences(ctx context.Context) Preferences {
	p := DefaultPreferences()
	s.db.Load(ctx, shared.KeyUserPreferences, &p)
	return p
}

func (s *storeImpl) SavePreferences(ctx context.Context, p Preferences) error {
	return s.save(ctx, shared.KeyUserPreferences, p)
}

func (s *storeImpl) Stats(ctx context.Context) Stats {
	favs := s.favorites(ctx)
	recent := s.recent(ctx)

	st := Stats{
		TotalFavorites:      len(favs),
		FavoritesByCategory: map[string]int{},
		RecentlyUsedCount:   len(recent),
	}
	for _, f := range favs {
		st.FavoritesByCategory[f.Category]++
	}

	used := map[string]int{}
	for _, r := range recent {
		if r.Category != "" {
			used[r.Category]++
		}
	}
	best := 0
	for cat, n := range used {
		if n > best || (n == best && cat < st.MostUsedCategory) {
			st.MostUsedCategory, best = cat, n
		}
	}
	return st
}

func (s *storeImpl) Export(ctx context.Context) *ExportDocument {
	return &ExportDocument{
		Favorites:    s.favorites(ctx),
		RecentlyUsed: s.recent(ctx),
		Preferences:  s.Preferences(ctx),
		ExportedAt:   s.clock.Now(),
		Version:      exportFormatVersion,
	}
}

// Import replaces favorites, recently used and preferences with the payload.
// Nothing is written unless the whole payload is valid, and a failed write
// restores what was stored before.
func (s *storeImpl) Import(ctx context.Context, data []byte) error {
	var doc ExportDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return errs.Wrap(errs.ErrInvalidImport, err.Error())
	}
	if err := validate(doc); err != nil {
		return err
	}
	if doc.Favorites == nil {
		doc.Favorites = []Favorite{}
	}
	if doc.RecentlyUsed == nil {
		doc.RecentlyUsed = []RecentItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.Export(ctx)
	writes := []struct {
		key      string
		next     any
		previous any
	}{
		{shared.KeyFavorites, doc.Favorites, prev.Favorites},
		{shared.KeyRecentlyUsed, doc.RecentlyUsed, prev.RecentlyUsed},
		{shared.KeyUserPreferences, doc.Preferences, prev.Preferences},
	}
	for i, w := range writes {
		if err := s.save(ctx, w.key, w.next); err != nil {
			for _, undo := range writes[:i] {
				if rerr := s.db.Save(ctx, undo.key, undo.previous); rerr != nil {
					s.logger.Error("failed to roll back favorites import", "key", undo.key, "error", rerr)
				}
			}
			return err
		}
	}
	return nil
}

func validate(doc ExportDocument) error {
	if doc.Version != exportFormatVersion {
		return errs.Wrap(errs.ErrInvalidImport, "unsupported export version "+doc.Version)
	}
	if len(doc.Favorites) > maxFavorites || len(doc.RecentlyUsed) > maxRecentlyUsed {
		return errs.Wrap(errs.ErrInvalidImport, "too many records")
	}
	seen := map[string]bool{}
	for i, f := range doc.Favorites {
		if f.TemplateID == "" {
			return errs.Wrap(errs.ErrInvalidImport, fmt.Sprintf("favorite %d: missing template id", i))
		}
		k := f.UserID + "\x00" + f.TemplateID
		if seen[k] {
			return errs.Wrap(errs.ErrInvalidImport, "duplicate favorite "+f.TemplateID)
		}
		seen[k] = true
	}
	for i, r := range doc.RecentlyUsed {
		if r.TemplateID == "" {
			return errs.Wrap(errs.ErrInvalidImport, fmt.Sprintf("recently used %d: missing template id", i))
		}
	}
	return nil
}
