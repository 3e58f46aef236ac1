package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/anyulbade/dcd-pricer/internal/dto"
)

//go:embed templates/termsheet.html
var termSheetTemplate string

var termSheetTmpl = template.Must(template.New("termsheet").Funcs(template.FuncMap{
	"pct":  func(v float64) string { return fmt.Sprintf("%.3f%%", v*100) },
	"date": func(t time.Time) string { return t.Format(tradeDateLayout) },
}).Parse(termSheetTemplate))

type TermSheetService struct {
	quotes *QuoteService
}

func NewTermSheetService(quotes *QuoteService) *TermSheetService {
	return &TermSheetService{quotes: quotes}
}

type TermSheet struct {
	dto.QuoteResponse
	GeneratedAt string  `json:"generated_at"`
	Strike      float64 `json:"strike"`
}

// Generate prices the request for display only; term sheets are not
// journaled.
func (s *TermSheetService) Generate(ctx context.Context, req *dto.QuoteRequest) (*TermSheet, error) {
	quote, err := s.quotes.Price(ctx, req)
	if err != nil {
		return nil, err
	}
	return &TermSheet{
		QuoteResponse: *quote,
		GeneratedAt:   s.quotes.now().UTC().Format("2006-01-02 15:04:05 MST"),
		Strike:        req.Product.Strike,
	}, nil
}

func (s *TermSheetService) RenderHTML(sheet *TermSheet) (string, error) {
	var buf bytes.Buffer
	if err := termSheetTmpl.Execute(&buf, sheet); err != nil {
		return "", fmt.Errorf("render term sheet: %w", err)
	}
	return buf.String(), nil
}
