package request

import (
	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/patch"
	"rsv-catalog/internal/usecase/templates"
)

type TemplateListQuery struct {
	Category string   `form:"category"`
	Q        string   `form:"q"`
	Region   string   `form:"region"`
	Season   string   `form:"season" binding:"omitempty,oneof=alta baixa all"`
	Min      *float64 `form:"min" binding:"omitempty,gte=0"`
	Max      *float64 `form:"max" binding:"omitempty,gte=0"`
}

func (q *TemplateListQuery) ToFilter() templates.ListFilter {
	return templates.ListFilter{
		Category: q.Category,
		Query:    q.Q,
		Region:   q.Region,
		Season:   templates.Season(q.Season),
		MinPrice: q.Min,
		MaxPrice: q.Max,
	}
}

type CreateTemplateRequest struct {
	Name              string                    `json:"name" binding:"required,max=200"`
	Description       string                    `json:"description"`
	Type              quotation.Type            `json:"type" binding:"required"`
	MainCategory      string                    `json:"mainCategory"`
	SubCategory       string                    `json:"subCategory"`
	Title             string                    `json:"title"`
	Tags              []string                  `json:"tags"`
	Location          catalog.Location          `json:"location"`
	Items             []quotation.Item          `json:"items"`
	Highlights        []quotation.Highlight     `json:"highlights"`
	Benefits          []quotation.Benefit       `json:"benefits"`
	ImportantNotes    []quotation.ImportantNote `json:"importantNotes"`
	Discount          quotation.Adjustment      `json:"discount"`
	Tax               quotation.Adjustment      `json:"tax"`
	Notes             string                    `json:"notes"`
	InvestmentDetails string                    `json:"investmentDetails"`
	Contacts          catalog.Contacts          `json:"contacts"`
	ChangeDescription string                    `json:"changeDescription"`
}

func (r *CreateTemplateRequest) ToDomain() catalog.Entry {
	return catalog.Entry{
		Name:              r.Name,
		Description:       r.Description,
		Type:              r.Type,
		MainCategory:      r.MainCategory,
		SubCategory:       r.SubCategory,
		Title:             r.Title,
		Tags:              r.Tags,
		Location:          r.Location,
		Items:             r.Items,
		Highlights:        r.Highlights,
		Benefits:          r.Benefits,
		ImportantNotes:    r.ImportantNotes,
		Discount:          r.Discount,
		Tax:               r.Tax,
		Notes:             r.Notes,
		InvestmentDetails: r.InvestmentDetails,
		Contacts:          r.Contacts,
	}
}

// UpdateTemplateRequest only replaces the fields that are present.
type UpdateTemplateRequest struct {
	Name              *string                    `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string                    `json:"description"`
	Type              *quotation.Type            `json:"type"`
	MainCategory      *string                    `json:"mainCategory"`
	SubCategory       *string                    `json:"subCategory"`
	Title             *string                    `json:"title"`
	Tags              *[]string                  `json:"tags"`
	Location          *catalog.Location          `json:"location"`
	Items             *[]quotation.Item          `json:"items"`
	Highlights        *[]quotation.Highlight     `json:"highlights"`
	Benefits          *[]quotation.Benefit       `json:"benefits"`
	ImportantNotes    *[]quotation.ImportantNote `json:"importantNotes"`
	Discount          *quotation.Adjustment      `json:"discount"`
	Tax               *quotation.Adjustment      `json:"tax"`
	Notes             *string                    `json:"notes"`
	InvestmentDetails *string                    `json:"investmentDetails"`
	Contacts          *catalog.Contacts          `json:"contacts"`
	ChangeDescription string                     `json:"changeDescription"`
}

func (r *UpdateTemplateRequest) ToDomain(existing *catalog.Entry) catalog.Entry {
	e := existing.Clone()
	e.Name = patch.Coalesce(r.Name, e.Name)
	e.Description = patch.Coalesce(r.Description, e.Description)
	e.Type = patch.Coalesce(r.Type, e.Type)
	e.MainCategory = patch.Coalesce(r.MainCategory, e.MainCategory)
	e.SubCategory = patch.Coalesce(r.SubCategory, e.SubCategory)
	e.Title = patch.Coalesce(r.Title, e.Title)
	e.Tags = patch.CoalesceSlice(r.Tags, e.Tags)
	e.Location = patch.Coalesce(r.Location, e.Location)
	e.Items = patch.CoalesceSlice(r.Items, e.Items)
	e.Highlights = patch.CoalesceSlice(r.Highlights, e.Highlights)
	e.Benefits = patch.CoalesceSlice(r.Benefits, e.Benefits)
	e.ImportantNotes = patch.CoalesceSlice(r.ImportantNotes, e.ImportantNotes)
	e.Discount = patch.Coalesce(r.Discount, e.Discount)
	e.Tax = patch.Coalesce(r.Tax, e.Tax)
	e.Notes = patch.Coalesce(r.Notes, e.Notes)
	e.InvestmentDetails = patch.Coalesce(r.InvestmentDetails, e.InvestmentDetails)
	e.Contacts = patch.Coalesce(r.Contacts, e.Contacts)
	return e
}

type FromQuotationRequest struct {
	QuotationID string `json:"quotationId" binding:"required"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

type InstantiateRequest struct {
	ClientName     string `json:"clientName" binding:"required"`
	ClientEmail    string `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone    string `json:"clientPhone"`
	ClientDocument string `json:"clientDocument"`
}

func (r *InstantiateRequest) ToDomain() templates.Client {
	return templates.Client{
		Name:     r.ClientName,
		Email:    r.ClientEmail,
		Phone:    r.ClientPhone,
		Document: r.ClientDocument,
	}
}

type ShareTemplateRequest struct {
	Users   []string `json:"users" binding:"required,min=1,dive,required"`
	Message string   `json:"message" binding:"max=1000"`
}

type CommentRequest struct {
	Content  string   `json:"content" binding:"required,max=2000"`
	ParentID string   `json:"parentId"`
	Mentions []string `json:"mentions"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"required,max=16"`
}

type TrendQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}
