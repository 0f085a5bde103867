// Package templates owns the catalog of reusable offerings and everything
// that hangs off a template: usage, versions, shares and favorites.
package templates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/pkg/metrics"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateStale         State = "stale"
	StateCurrent       State = "current"
)

// Generator produces the full default catalog for the given instant.
type Generator func(ctx context.Context, now time.Time) ([]catalog.Entry, error)

type Store interface {
	GetAll(ctx context.Context) []catalog.Entry
	GetByID(ctx context.Context, id string) (*catalog.Entry, bool)
	GetByCategory(ctx context.Context, mainCategory string) []catalog.Entry
	Save(ctx context.Context, e catalog.Entry) (*catalog.Entry, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementUsage(ctx context.Context, id string) (*catalog.Entry, error)

	InitializeDefaults(ctx context.Context) (State, error)
	ForceRefresh(ctx context.Context) error
	State(ctx context.Context) State
	Version(ctx context.Context) string
}

type storeImpl struct {
	mu       sync.Mutex
	initOnce singleflight.Group

	db       shared.Persistence
	generate Generator
	version  string
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewStore(
	db shared.Persistence,
	generate Generator,
	cfg config.CatalogConfig,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) Store {
	return &storeImpl{
		db:       db,
		generate: generate,
		version:  cfg.SchemaVersion,
		clock:    clk,
		logger:   logger,
		metrics:  m,
	}
}

func (s *storeImpl) load(ctx context.Context) []catalog.Entry {
	return shared.LoadList[catalog.Entry](ctx, s.db, shared.KeyTemplates)
}

func (s *storeImpl) persist(ctx context.Context, all []catalog.Entry) error {
	if err := s.db.Save(ctx, shared.KeyTemplates, all); err != nil {
		return errs.Wrap(err, "failed to save templates")
	}
	s.metrics.SetCatalogEntries(len(all))
	return nil
}

func (s *storeImpl) GetAll(ctx context.Context) []catalog.Entry {
	return s.load(ctx)
}

func (s *storeImpl) GetByID(ctx context.Context, id string) (*catalog.Entry, bool) {
	for _, e := range s.load(ctx) {
		if e.ID == id {
			return &e, true
		}
	}
	return nil, false
}

func (s *storeImpl) GetByCategory(ctx context.Context, mainCategory string) []catalog.Entry {
	all := s.load(ctx)
	if mainCategory == "" || mainCategory == catalog.CategoryAll {
		return all
	}
	out := []catalog.Entry{}
	for _, e := range all {
		if e.MainCategory == mainCategory {
			out = append(out, e)
		}
	}
	return out
}

// Save upserts a user-authored entry. Anything written through Save is custom
// and keeps its content across catalog regeneration.
func (s *storeImpl) Save(ctx context.Context, e catalog.Entry) (*catalog.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if e.ID == "" {
		e.ID = "custom-" + uuid.NewString()
	}
	if e.MainCategory == "" {
		e.MainCategory = catalog.MainCategoryFor(e.Type)
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.Custom = true
	e.UpdatedAt = now

	all := s.load(ctx)
	idx := indexOf(all, e.ID)
	if idx >= 0 {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = all[idx].CreatedAt
		}
		all[idx] = e
	} else {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		all = append(all, e)
	}

	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *storeImpl) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	idx := indexOf(all, id)
	if idx < 0 {
		return false, nil
	}
	all = append(all[:idx], all[idx+1:]...)
	if err := s.persist(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

// IncrementUsage bumps the usage counter without marking the entry custom.
func (s *storeImpl) IncrementUsage(ctx context.Context, id string) (*catalog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	idx := indexOf(all, id)
	if idx < 0 {
		return nil, errs.ErrTemplateNotFound
	}
	all[idx].UsageCount++
	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	e := all[idx]
	return &e, nil
}

func (s *storeImpl) Version(ctx context.Context) string {
	var v string
	s.db.Load(ctx, shared.KeyTemplatesVersion, &v)
	return v
}

func (s *storeImpl) State(ctx context.Context) State {
	switch v := s.Version(ctx); v {
	case "":
		return StateUninitialized
	case s.version:
		return StateCurrent
	default:
		return StateStale
	}
}

// InitializeDefaults brings the catalog to the current schema version. It
// reports the state observed before running; a current catalog is left untouched.
// Concurrent callers share one run.
func (s *storeImpl) InitializeDefaults(ctx context.Context) (State, error) {
	v, err, _ := s.initOnce.Do("init", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		before := s.State(ctx)
		if before == StateCurrent {
			return before, nil
		}
		return before, s.regenerateLocked(ctx)
	})
	state, _ := v.(State)
	return state, err
}

// ForceRefresh drops the catalog, custom entries included, and regenerates it.
func (s *storeImpl) ForceRefresh(ctx context.Context) error {
	_, err, _ := s.initOnce.Do("refresh", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.db.Remove(ctx, shared.KeyTemplates); err != nil {
			return nil, errs.Wrap(err, "failed to clear templates")
		}
		if err := s.db.Remove(ctx, shared.KeyTemplatesVersion); err != nil {
			return nil, errs.Wrap(err, "failed to clear template version")
		}
		return StateUninitialized, s.regenerateLocked(ctx)
	})
	return err
}

func (s *storeImpl) regenerateLocked(ctx context.Context) error {
	start := s.clock.Now()
	generated, err := s.generate(ctx, start)
	if err != nil {
		return errs.Wrap(err, "failed to generate catalog")
	}

	existing := s.load(ctx)
	custom := make(map[string]catalog.Entry)
	for _, e := range existing {
		if e.Custom {
			custom[e.ID] = e
		}
	}

	merged := make([]catalog.Entry, 0, len(generated)+len(custom))
	seen := make(map[string]struct{}, len(generated))
	for _, e := range generated {
		seen[e.ID] = struct{}{}
		if c, ok := custom[e.ID]; ok {
			merged = append(merged, c)
			continue
		}
		merged = append(merged, e)
	}
	for _, e := range existing {
		if _, ok := seen[e.ID]; !ok && e.Custom {
			merged = append(merged, e)
		}
	}

	if err := s.persist(ctx, merged); err != nil {
		return err
	}
	if err := s.db.Save(ctx, shared.KeyTemplatesVersion, s.version); err != nil {
		return errs.Wrap(err, "failed to save template version")
	}

	s.logger.Info("catalog initialized",
		"version", s.version,
		"generated", len(generated),
		"custom", len(custom),
		"entries", len(merged),
	)
	return nil
}

func indexOf(all []catalog.Entry, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
