// Package quotations is the quotation (budget) store with its settings and statistics.
package quotations

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const copySuffix = " (Cópia)"

//go:generate mockgen -source=store.go -destination=../../../tests/mock/quotations/store.go -package=quotationsmock
type Store interface {
	GetAll(ctx context.Context) []quotation.Quotation
	GetByID(ctx context.Context, id string) (*quotation.Quotation, bool)
	Save(ctx context.Context, q quotation.Quotation) (*quotation.Quotation, error)
	Delete(ctx context.Context, id string) (bool, error)
	Duplicate(ctx context.Context, id string) (*quotation.Quotation, error)
	UpdateStatus(ctx context.Context, id string, status quotation.Status) (*quotation.Quotation, error)
	Search(ctx context.Context, text string) []quotation.Quotation
	Filter(ctx context.Context, c quotation.Criteria) []quotation.Quotation
	GetStats(ctx context.Context) Stats
	ClearAll(ctx context.Context) error
	LoadSampleData(ctx context.Context) ([]quotation.Quotation, error)

	Settings(ctx context.Context) Settings
	SaveSettings(ctx context.Context, s Settings) error
	CompanyInfo(ctx context.Context) CompanyInfo
	SaveCompanyInfo(ctx context.Context, info CompanyInfo) error
}

type storeImpl struct {
	mu     sync.Mutex
	db     shared.Persistence
	calc   quotation.PriceCalculator
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore(db shared.Persistence, calc quotation.PriceCalculator, clk clock.Clock, logger *slog.Logger) Store {
	return &storeImpl{db: db, calc: calc, clock: clk, logger: logger}
}

// load decodes every stored record through the legacy migration. Records that
// cannot be decoded at all are dropped from the view and logged.
func (s *storeImpl) load(ctx context.Context) []quotation.Quotation {
	raws := shared.LoadList[json.RawMessage](ctx, s.db, shared.KeyBudgets)
	out := make([]quotation.Quotation, 0, len(raws))
	migrated := 0
	for _, raw := range raws {
		q, legacy, err := quotation.DecodeRecord(raw)
		if err != nil {
			s.logger.Warn("skipping unreadable quotation record", "error", err)
			continue
		}
		if legacy {
			migrated++
		}
		out = append(out, q)
	}
	if migrated > 0 {
		s.logger.Debug("migrated legacy quotation records", "count", migrated)
	}
	return out
}

func (s *storeImpl) persist(ctx context.Context, all []quotation.Quotation) error {
	if err := s.db.Save(ctx, shared.KeyBudgets, all); err != nil {
		return errs.Wrap(err, "failed to save quotations")
	}
	return nil
}

func (s *storeImpl) GetAll(ctx context.Context) []quotation.Quotation {
	return s.load(ctx)
}

func (s *storeImpl) GetByID(ctx context.Context, id string) (*quotation.Quotation, bool) {
	for _, q := range s.load(ctx) {
		if q.ID == id {
			return &q, true
		}
	}
	return nil, false
}

func (s *storeImpl) Save(ctx context.Context, q quotation.Quotation) (*quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx, q)
}

func (s *storeImpl) saveLocked(ctx context.Context, q quotation.Quotation) (*quotation.Quotation, error) {
	now := s.clock.Now()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.ApplyDefaults(now)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	q.Recalculate(s.calc)
	q.UpdatedAt = now

	all := s.load(ctx)
	replaced := false
	for i := range all {
		if all[i].ID == q.ID {
			all[i] = q
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, q)
	}

	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *storeImpl) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	kept := all[:0]
	for _, q := range all {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if len(kept) == len(all) {
		return false, nil
	}
	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *storeImpl) Duplicate(ctx context.Context, id string) (*quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.GetByID(ctx, id)
	if !ok {
		return nil, errs.ErrQuotationNotFound
	}

	var dup quotation.Quotation
	if err := copier.CopyWithOption(&dup, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "failed to copy quotation")
	}
	dup.ID = uuid.NewString()
	dup.Title = src.Title + copySuffix
	dup.Status = quotation.StatusDraft
	dup.CreatedAt = s.clock.Now()

	return s.saveLocked(ctx, dup)
}

func (s *storeImpl) UpdateStatus(ctx context.Context, id string, status quotation.Status) (*quotation.Quotation, error) {
	if !status.IsValid() {
		return nil, errs.Wrap(errs.ErrInvalidQuotation, "unknown status "+string(status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.GetByID(ctx, id)
	if !ok {
		return nil, errs.ErrQuotationNotFound
	}
	if !q.Status.CanTransitionTo(status) {
		return nil, errs.Wrap(errs.ErrInvalidStatusTransition, string(q.Status)+" -> "+string(status))
	}
	q.Status = status
	return s.saveLocked(ctx, *q)
}

func (s *storeImpl) Search(ctx context.Context, text string) []quotation.Quotation {
	out := []quotation.Quotation{}
	for _, q := range s.load(ctx) {
		if q.MatchesText(text) {
			out = append(out, q)
		}
	}
	return out
}

func (s *storeImpl) Filter(ctx context.Context, c quotation.Criteria) []quotation.Quotation {
	out := []quotation.Quotation{}
	for _, q := range s.load(ctx) {
		if c.Matches(&q) {
			out = append(out, q)
		}
	}
	return out
}

func (s *storeImpl) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Remove(ctx, shared.KeyBudgets); err != nil {
		return errs.Wrap(err, "failed to clear quotations")
	}
	return nil
}

func (s *storeImpl) LoadSampleData(ctx context.Context) ([]quotation.Quotation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	out := make([]quotation.Quotation, 0, 2)
	for _, q := range sampleQuotations(now) {
		saved, err := s.saveLocked(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, *saved)
	}
	return out, nil
}

func sampleQuotations(now time.Time) []quotation.Quotation {
	return []quotation.Quotation{
		{
			Title:       "Pacote Resort Bahia - Família Silva",
			Description: "Pacote completo para família de 4 pessoas",
			ClientName:  "Maria Silva",
			ClientEmail: "maria.silva@email.com",
			ClientPhone: "(11) 99999-9999",
			Type:        quotation.TypeHotel,
			Status:      quotation.StatusApproved,
			Items: []quotation.Item{
				{ID: uuid.NewString(), Name: "Hospedagem All Inclusive", Description: "5 diárias em suíte família", Category: "Hospedagem", Quantity: 5, UnitPrice: 800},
				{ID: uuid.NewString(), Name: "Traslado aeroporto", Description: "Ida e volta", Category: "Transporte", Quantity: 1, UnitPrice: 200},
			},
			Discount:  quotation.Fixed(200),
			Tax:       quotation.Fixed(0),
			Notes:     "Inclui todas as refeições e bebidas. Atividades para crianças incluídas.",
			CreatedAt: now.AddDate(0, 0, -7),
		},
		{
			Title:       "Beto Carrero World - Grupo Escolar",
			Description: "Excursão escolar para 30 alunos",
			ClientName:  "João Santos",
			ClientEmail: "joao.santos@escola.com",
			ClientPhone: "(47) 88888-8888",
			Type:        quotation.TypePark,
			Status:      quotation.StatusSent,
			Items: []quotation.Item{
				{ID: uuid.NewString(), Name: "Ingresso Estudante", Description: "Acesso completo ao parque com desconto escolar", Category: "Ingressos", Quantity: 30, UnitPrice: 80},
				{ID: uuid.NewString(), Name: "Transporte escolar", Description: "Ônibus fretado ida e volta", Category: "Transporte", Quantity: 1, UnitPrice: 300},
			},
			Discount:  quotation.Fixed(300),
			Tax:       quotation.Fixed(0),
			Notes:     "Acompanhantes gratuitos: 1 para cada 10 alunos. Almoço não incluso.",
			CreatedAt: now.AddDate(0, 0, -3),
		},
	}
}
