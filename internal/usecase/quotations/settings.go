package quotations

import (
	"context"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/shared"
)

type Settings struct {
	DefaultValidityDays int    `json:"defaultValidityDays"`
	DefaultCurrency     string `json:"defaultCurrency"`
	DefaultTerms        string `json:"defaultTerms"`
	DefaultNotes        string `json:"defaultNotes,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultValidityDays: quotation.DefaultValidityDays,
		DefaultCurrency:     quotation.DefaultCurrency,
		DefaultTerms:        "Valores sujeitos à disponibilidade e alteração sem aviso prévio.",
	}
}

type CompanyInfo struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Address  string `json:"address,omitempty"`
	Website  string `json:"website,omitempty"`
}

func DefaultCompanyInfo() CompanyInfo {
	return CompanyInfo{
		Name:     "Reserveí Viagens",
		Email:    "contato@reserveiviagens.com",
		Phone:    "(64) 3451-0000",
		WhatsApp: "(64) 99999-9999",
		Address:  "Caldas Novas - GO",
		Website:  "https://www.reserveiviagens.com",
	}
}

func (s *storeImpl) Settings(ctx context.Context) Settings {
	out := DefaultSettings()
	var stored Settings
	if !s.db.Load(ctx, shared.KeyBudgetSettings, &stored) {
		return out
	}
	if stored.DefaultValidityDays > 0 {
		out.DefaultValidityDays = stored.DefaultValidityDays
	}
	if stored.DefaultCurrency != "" {
		out.DefaultCurrency = stored.DefaultCurrency
	}
	if stored.DefaultTerms != "" {
		out.DefaultTerms = stored.DefaultTerms
	}
	out.DefaultNotes = stored.DefaultNotes
	return out
}

func (s *storeImpl) SaveSettings(ctx context.Context, settings Settings) error {
	if settings.DefaultValidityDays < 0 {
		return errs.Wrap(errs.ErrInvalidQuotation, "validity days must not be negative")
	}
	if err := s.db.Save(ctx, shared.KeyBudgetSettings, settings); err != nil {
		return errs.Wrap(err, "failed to save quotation settings")
	}
	return nil
}

func (s *storeImpl) CompanyInfo(ctx context.Context) CompanyInfo {
	var info CompanyInfo
	if !s.db.Load(ctx, shared.KeyCompanyInfo, &info) || info.Name == "" {
		return DefaultCompanyInfo()
	}
	return info
}

func (s *storeImpl) SaveCompanyInfo(ctx context.Context, info CompanyInfo) error {
	if err := s.db.Save(ctx, shared.KeyCompanyInfo, info); err != nil {
		return errs.Wrap(err, "failed to save company info")
	}
	return nil
}
