package response

import (
	"rsv-catalog/internal/domain/quotation"
)

type QuotationListResponse struct {
	Quotations []quotation.Quotation `json:"quotations"`
	Total      int                   `json:"total"`
}

func FromQuotations(all []quotation.Quotation) QuotationListResponse {
	if all == nil {
		all = []quotation.Quotation{}
	}
	return QuotationListResponse{Quotations: all, Total: len(all)}
}

type ShareLinksResponse struct {
	ShareURL string `json:"shareUrl"`
	Mailto   string `json:"mailto"`
}
