package dto

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

type ValidationError struct {
	Index   int    `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Scenarios are the two expiry outcomes in money terms, rounded to cents.
type Scenarios struct {
	BaseCurrency    string          `json:"base_currency"`
	QuoteCurrency   string          `json:"quote_currency"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	KeptAmount      decimal.Decimal `json:"kept_amount"`
	ExtraIncome     decimal.Decimal `json:"extra_income"`
	// Premium is in base-currency units, like the notional it is
	// amortized against.
	Premium         decimal.Decimal `json:"premium"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
}

type Insight struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Level  string  `json:"level"`
	Note   string  `json:"note"`
}

type QuoteResponse struct {
	QuoteID        *uuid.UUID          `json:"quote_id,omitempty"`
	Result         model.PricingResult `json:"result"`
	ThetaPerDay    float64             `json:"theta_per_day"`
	EnhancementBps float64             `json:"enhancement_bps"`
	MoneynessPct   float64             `json:"moneyness_pct"`
	RateTiers      []model.RateTier    `json:"rate_tiers,omitempty"`
	Scenarios      Scenarios           `json:"scenarios"`
	Insights       []Insight           `json:"insights"`
	Warnings       []string            `json:"warnings"`
}

// MatrixResponse mirrors model.RateMatrix with failed cells as null, since
// JSON has no NaN.
type MatrixResponse struct {
	CurrencyPair string       `json:"currency_pair"`
	Strikes      []float64    `json:"strikes"`
	Maturities   []int        `json:"maturities"`
	Rates        [][]*float64 `json:"rates"`
	Failed       int          `json:"failed"`
}

func NewMatrixResponse(pair string, m *model.RateMatrix) MatrixResponse {
	rates := make([][]*float64, len(m.Rates))
	for i, row := range m.Rates {
		rates[i] = make([]*float64, len(row))
		for j := range row {
			if math.IsNaN(row[j]) {
				continue
			}
			v := row[j]
			rates[i][j] = &v
		}
	}
	return MatrixResponse{
		CurrencyPair: pair,
		Strikes:      m.Strikes,
		Maturities:   m.Maturities,
		Rates:        rates,
		Failed:       m.Failed,
	}
}

type PayoffResponse struct {
	CurrencyPair  string              `json:"currency_pair"`
	Strike        float64             `json:"strike"`
	DepositAmount float64             `json:"deposit_amount"`
	Points        []model.PayoffPoint `json:"points"`
}

type QuoteListResponse struct {
	Data       []model.QuoteRecord `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

type ConventionListResponse struct {
	Data []model.Convention `json:"data"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Conventions int       `json:"conventions"`
	Holidays    int       `json:"holidays"`
	CheckedAt   time.Time `json:"checked_at"`
}
