//go:build e2e

package quotation_test

import (
	"net/http"
	"testing"

	"rsv-catalog/internal/domain/quotation"
	reqdto "rsv-catalog/internal/handler/dto/request"
	resdto "rsv-catalog/internal/handler/dto/response"
	"rsv-catalog/internal/pkg/config"
	"rsv-catalog/internal/usecase/session"
	"rsv-catalog/tests/common/builder"
	"rsv-catalog/tests/common/dbtest"
	"rsv-catalog/tests/common/httptest"
	"rsv-catalog/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type QuotationTestSuite struct {
	e2e.SharedSuite
}

func TestQuotationPostgres(t *testing.T) {
	suite.Run(t, &QuotationTestSuite{SharedSuite: e2e.SharedSuite{Driver: config.StorageDriverPostgres}})
}

func TestQuotationRedis(t *testing.T) {
	suite.Run(t, &QuotationTestSuite{SharedSuite: e2e.SharedSuite{Driver: config.StorageDriverRedis}})
}

func (s *QuotationTestSuite) SetupTest() {
	s.ResetStorage()
}

func (s *QuotationTestSuite) create() quotation.Quotation {
	var q quotation.Quotation
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/quotations", builder.NewQuotationBuilder().BuildDTO(), "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &q)
	return q
}

func (s *QuotationTestSuite) TestLifecycle() {
	q := s.create()
	s.InDelta(330.75, q.Total, 0.001)

	s.Run("status is persisted", func() {
		q := s.create()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/quotations/"+q.ID+"/status",
			reqdto.StatusRequest{Status: quotation.StatusSent}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		s.Restart()

		var got quotation.Quotation
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations/"+q.ID, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(quotation.StatusSent, got.Status)
		s.InDelta(330.75, got.Total, 0.001)
	})

	s.Run("duplicate starts as draft", func() {
		q := s.create()
		var dup quotation.Quotation
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/quotations/"+q.ID+"/duplicate", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &dup)
		s.NotEqual(q.ID, dup.ID)
		s.Equal(quotation.StatusDraft, dup.Status)

		var list resdto.QuotationListResponse
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Equal(2, list.Total)
	})

	s.Run("delete", func() {
		q := s.create()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/quotations/"+q.ID, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations/"+q.ID, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Quotation not found")
	})
}

func (s *QuotationTestSuite) TestLegacyRecordsAreMigratedOnRead() {
	if s.DB == nil {
		s.T().Skip("seeds through SQL")
	}
	key := s.Config.Storage.KeyPrefix + "rsv360_budgets"
	dbtest.StoreRaw(s.T(), s.DB, key, []byte(`[{
		"id": "legacy-1",
		"title": "Pacote antigo",
		"clientName": "Carlos",
		"status": "draft",
		"items": [{"id": "a", "name": "Diária", "quantity": 2, "unitPrice": 100}],
		"subtotal": 200,
		"discount": 10,
		"discountType": "percentage",
		"taxes": 0,
		"total": 180,
		"createdAt": "2024-01-10T10:00:00Z",
		"updatedAt": "2024-01-10T10:00:00Z"
	}]`))

	var got quotation.Quotation
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations/legacy-1", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
	s.Equal("Carlos", got.ClientName)
	s.Equal(quotation.Percentage(10), got.Discount)
	s.InDelta(180, got.Total, 0.001)
}

func (s *QuotationTestSuite) TestSettingsAndCompany() {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations/settings", nil, "")
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/quotations/company", nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *QuotationTestSuite) TestClearAll() {
	s.create()
	s.create()

	var tok session.Token
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/token", reqdto.TokenRequest{UserID: "default_user"}, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &tok)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/quotations", nil, tok.AccessToken)
	s.Equal(http.StatusNoContent, rec.Code)

	s.NotContains(s.StoredKeys(), s.Config.Storage.KeyPrefix+"rsv360_budgets")
}
