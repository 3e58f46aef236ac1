package dto

import "github.com/anyulbade/dcd-pricer/internal/model"

type MarketRequest struct {
	Spot         float64 `json:"spot" binding:"required,gt=0"`
	DomesticRate float64 `json:"domestic_rate"`
	ForeignRate  float64 `json:"foreign_rate"`
	Volatility   float64 `json:"volatility" binding:"gte=0"`
	// TradeDate is YYYY-MM-DD; empty means today (UTC).
	TradeDate string `json:"trade_date"`
}

type ProductRequest struct {
	CurrencyPair   string           `json:"currency_pair"`
	Notional       float64          `json:"notional" binding:"required,gt=0"`
	MaturityDays   int              `json:"maturity_days" binding:"required,gt=0"`
	Strike         float64          `json:"strike" binding:"required,gt=0"`
	SettlementDays *int             `json:"settlement_days" binding:"omitempty,gte=0"`
	DayCountBasis  *int             `json:"day_count_basis" binding:"omitempty,oneof=360 365"`
	RateMode       string           `json:"rate_mode" binding:"omitempty,oneof=linear tiered"`
	BaseRate       float64          `json:"base_rate"`
	SlopeBpsPerDay float64          `json:"slope_bps_per_day"`
	Tiers          []model.RateTier `json:"tiers"`
}

type QuoteRequest struct {
	Market  MarketRequest  `json:"market"`
	Product ProductRequest `json:"product"`
}

// MatrixRequest takes either explicit grids or min/max/steps ranges. Zero
// range fields fall back to the configured matrix defaults around spot.
type MatrixRequest struct {
	Market        MarketRequest  `json:"market"`
	Product       ProductRequest `json:"product"`
	Strikes       []float64      `json:"strikes" binding:"omitempty,max=200"`
	Maturities    []int          `json:"maturities" binding:"omitempty,max=200"`
	StrikeMin     float64        `json:"strike_min"`
	StrikeMax     float64        `json:"strike_max"`
	StrikeSteps   int            `json:"strike_steps" binding:"omitempty,min=2,max=200"`
	MaturityMin   int            `json:"maturity_min"`
	MaturityMax   int            `json:"maturity_max"`
	MaturitySteps int            `json:"maturity_steps" binding:"omitempty,min=2,max=200"`
}

type PayoffRequest struct {
	Market   MarketRequest  `json:"market"`
	Product  ProductRequest `json:"product"`
	SpotLow  float64        `json:"spot_low"`
	SpotHigh float64        `json:"spot_high"`
	Points   int            `json:"points" binding:"omitempty,min=2,max=1000"`
}
