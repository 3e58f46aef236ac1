package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Convention struct {
	Pair           string `json:"pair" yaml:"pair"`
	DayCountBasis  int    `json:"day_count_basis" yaml:"day_count_basis"`
	SettlementDays int    `json:"settlement_days" yaml:"settlement_days"`
	Label          string `json:"label,omitempty" yaml:"label"`
}

type MarketInputs struct {
	Spot         float64   `json:"spot"`
	DomesticRate float64   `json:"domestic_rate"`
	ForeignRate  float64   `json:"foreign_rate"`
	Volatility   float64   `json:"volatility"`
	TradeDate    time.Time `json:"trade_date"`
}

// RateTier applies Rate to maturities in [MinDays, MaxDays].
type RateTier struct {
	MinDays int     `json:"min_days" yaml:"min_days"`
	MaxDays int     `json:"max_days" yaml:"max_days"`
	Rate    float64 `json:"rate" yaml:"rate"`
}

// RateCurve maps a deposit maturity to its base deposit rate.
type RateCurve interface {
	Rate(maturityDays int) (float64, error)
}

type ProductInputs struct {
	CurrencyPair   string     `json:"currency_pair"`
	Notional       float64    `json:"notional"`
	MaturityDays   int        `json:"maturity_days"`
	Strike         float64    `json:"strike"`
	SettlementDays *int       `json:"settlement_days,omitempty"`
	DayCountBasis  *int       `json:"day_count_basis,omitempty"`
	BaseRate       float64    `json:"base_rate"`
	SlopeBpsPerDay float64    `json:"slope_bps_per_day"`
	Tiers          []RateTier `json:"tiers,omitempty"`
	// Curve is an already validated curve. When set it wins over Tiers and
	// the linear slope.
	Curve          RateCurve  `json:"-"`
}

type Greeks struct {
	Delta      float64 `json:"delta"`
	Gamma      float64 `json:"gamma"`
	Theta      float64 `json:"theta"`
	Vega       float64 `json:"vega"`
	Rho        float64 `json:"rho"`
	RhoForeign float64 `json:"rho_foreign"`
}

type Schedule struct {
	TradeDate         time.Time `json:"trade_date"`
	OptionExpiry      time.Time `json:"option_expiry"`
	DepositSettlement time.Time `json:"deposit_settlement"`
	SettlementDays    int       `json:"settlement_days"`
}

type PricingResult struct {
	CurrencyPair          string   `json:"currency_pair"`
	DayCountBasis         int      `json:"day_count_basis"`
	PremiumPerUnit        float64  `json:"premium_per_unit"`
	Premium               float64  `json:"premium"`
	Greeks                Greeks   `json:"greeks"`
	Forward               float64  `json:"forward"`
	AdjustedBaseRate      float64  `json:"adjusted_base_rate"`
	RateEnhancement       float64  `json:"rate_enhancement"`
	EnhancedRate          float64  `json:"enhanced_rate"`
	ConversionProbability float64  `json:"conversion_probability"`
	OptionYearFraction    float64  `json:"option_year_fraction"`
	DepositYearFraction   float64  `json:"deposit_year_fraction"`
	ConvertedAmount       float64  `json:"converted_amount"`
	Schedule              Schedule `json:"schedule"`
}

// RateMatrix rows follow Maturities, columns follow Strikes. Failed cells hold NaN.
type RateMatrix struct {
	Strikes    []float64   `json:"strikes"`
	Maturities []int       `json:"maturities"`
	Rates      [][]float64 `json:"rates"`
	Failed     int         `json:"failed"`
}

type PayoffPoint struct {
	Spot      float64 `json:"spot"`
	Value     float64 `json:"value"`
	Converted bool    `json:"converted"`
}

type QuoteRecord struct {
	ID                    uuid.UUID       `json:"id"`
	CurrencyPair          string          `json:"currency_pair"`
	Spot                  float64         `json:"spot"`
	Strike                float64         `json:"strike"`
	DomesticRate          float64         `json:"domestic_rate"`
	ForeignRate           float64         `json:"foreign_rate"`
	Volatility            float64         `json:"volatility"`
	MaturityDays          int             `json:"maturity_days"`
	SettlementDays        int             `json:"settlement_days"`
	DayCountBasis         int             `json:"day_count_basis"`
	Notional              decimal.Decimal `json:"notional"`
	Premium               decimal.Decimal `json:"premium"`
	AdjustedBaseRate      float64         `json:"adjusted_base_rate"`
	EnhancedRate          float64         `json:"enhanced_rate"`
	ConversionProbability float64         `json:"conversion_probability"`
	TradeDate             time.Time       `json:"trade_date"`
	OptionExpiry          time.Time       `json:"option_expiry"`
	DepositSettlement     time.Time       `json:"deposit_settlement"`
	CreatedAt             time.Time       `json:"created_at"`
}
