package export

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/pkg/money"
	"rsv-catalog/internal/usecase/quotations"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
)

// contentTypes maps each format to its MIME type. All three carry the same HTML body.
var contentTypes = map[Format]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatDOC:  "application/msword",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHTML, nil
	}
	if _, ok := contentTypes[f]; !ok {
		return "", errs.Wrap(errs.ErrUnsupportedFormat, s)
	}
	return f, nil
}

type File struct {
	Filename    string
	ContentType string
	Body        []byte
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9]`)

func Filename(q *quotation.Quotation, f Format) string {
	return fmt.Sprintf("cotacao-%s-%s.%s", q.ID, unsafeFilename.ReplaceAllString(q.Title, "-"), f)
}

func (r *Renderer) ExportFile(q *quotation.Quotation, company quotations.CompanyInfo, f Format, generatedAt time.Time) (*File, error) {
	ct, ok := contentTypes[f]
	if !ok {
		return nil, errs.Wrap(errs.ErrUnsupportedFormat, string(f))
	}
	body, err := r.Render(q, company, generatedAt)
	if err != nil {
		return nil, err
	}
	return &File{Filename: Filename(q, f), ContentType: ct, Body: body}, nil
}

// ShareLink embeds the whole quotation in the query string of the share page.
func ShareLink(q *quotation.Quotation, baseURL string) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", errs.Wrap(err, "failed to encode quotation")
	}
	return strings.TrimRight(baseURL, "/") + "/cotacoes/share?data=" + url.QueryEscape(string(raw)), nil
}

// DecodeShared reads the data parameter of a share link. The value arrives
// already unescaped from the query string.
func DecodeShared(data string) (*quotation.Quotation, error) {
	if strings.TrimSpace(data) == "" {
		return nil, errs.Wrap(errs.ErrInvalidQuotation, "empty share payload")
	}
	q, _, err := quotation.DecodeRecord([]byte(data))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidQuotation)
	}
	return &q, nil
}

func MailtoLink(q *quotation.Quotation, company quotations.CompanyInfo, baseURL string) (string, error) {
	link, err := ShareLink(q, baseURL)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf(`Olá!

Segue a cotação solicitada:

Título: %s
Cliente: %s
Total: %s

Para visualizar a cotação completa, acesse:
%s

Atenciosamente,
%s`, q.Title, q.ClientName, money.FormatBRL(q.Total), link, company.Name)

	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		q.ClientEmail,
		mailtoEscape("Cotação - "+q.Title),
		mailtoEscape(body),
	), nil
}

// mailtoEscape percent-encodes spaces, since mail clients do not read '+' as one.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
