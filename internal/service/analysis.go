package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/dcd-pricer/internal/config"
	"github.com/anyulbade/dcd-pricer/internal/convention"
	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/model"
)

const (
	enhancementHighBps     = 500
	enhancementModerateBps = 200
	conversionLow          = 0.20
	conversionModerate     = 0.50
	vegaHigh               = 20
	vegaModerate           = 10
)

// BuildScenarios values both expiry outcomes. Interest accrues on the
// deposit basis; the converted amount is in the quote currency.
func BuildScenarios(res *model.PricingResult, p model.ProductInputs) dto.Scenarios {
	base, quote, _ := convention.SplitPair(res.CurrencyPair)

	principal := decimal.NewFromFloat(p.Notional)
	yf := decimal.NewFromFloat(res.DepositYearFraction)
	interest := principal.Mul(decimal.NewFromFloat(res.EnhancedRate)).Mul(yf).Round(2)

	return dto.Scenarios{
		BaseCurrency:    base,
		QuoteCurrency:   quote,
		Principal:       principal.Round(2),
		Interest:        interest,
		KeptAmount:      principal.Add(interest).Round(2),
		ExtraIncome:     principal.Mul(decimal.NewFromFloat(res.RateEnhancement)).Mul(yf).Round(2),
		Premium:         decimal.NewFromFloat(res.Premium).Round(2),
		ConvertedAmount: principal.Mul(decimal.NewFromFloat(p.Strike)).Round(2),
	}
}

// EnhancementBps is the pickup over the quoted base rate. In tiered mode
// the tier rate is the base.
func EnhancementBps(res *model.PricingResult, p model.ProductInputs) float64 {
	base := p.BaseRate
	if len(p.Tiers) > 0 {
		base = res.AdjustedBaseRate
	}
	return (res.EnhancedRate - base) * 10000
}

func MoneynessPct(m model.MarketInputs, p model.ProductInputs) float64 {
	return (m.Spot/p.Strike - 1) * 100
}

func BuildInsights(res *model.PricingResult, m model.MarketInputs, p model.ProductInputs) []dto.Insight {
	bps := EnhancementBps(res, p)
	enhancement := dto.Insight{Metric: "rate_enhancement_bps", Value: bps}
	switch {
	case bps > enhancementHighBps:
		enhancement.Level, enhancement.Note = "high", "attractive for yield seekers"
	case bps > enhancementModerateBps:
		enhancement.Level, enhancement.Note = "moderate", "balanced risk and reward"
	default:
		enhancement.Level, enhancement.Note = "low", "consider a longer maturity or a closer strike"
	}

	prob := res.ConversionProbability
	conversion := dto.Insight{Metric: "conversion_probability", Value: prob}
	switch {
	case prob < conversionLow:
		conversion.Level, conversion.Note = "low", "conversion unlikely"
	case prob < conversionModerate:
		conversion.Level, conversion.Note = "moderate", "conversion plausible"
	default:
		conversion.Level, conversion.Note = "high", "conversion more likely than not, monitor carefully"
	}

	vega := res.Greeks.Vega * 100
	sensitivity := dto.Insight{Metric: "vega_pct", Value: vega}
	switch {
	case math.Abs(vega) > vegaHigh:
		sensitivity.Level, sensitivity.Note = "high", "premium moves sharply with volatility"
	case math.Abs(vega) > vegaModerate:
		sensitivity.Level, sensitivity.Note = "moderate", "premium moderately exposed to volatility"
	default:
		sensitivity.Level, sensitivity.Note = "low", "premium stable under volatility moves"
	}

	moneyness := MoneynessPct(m, p)
	spot := dto.Insight{Metric: "moneyness_pct", Value: moneyness, Level: "otm", Note: "strike above spot"}
	if moneyness >= 0 {
		spot.Level, spot.Note = "itm", "spot at or above strike"
	}

	return []dto.Insight{enhancement, conversion, sensitivity, spot}
}

// Warnings flags inputs outside the typical ranges. They never block pricing.
func Warnings(r config.Ranges, m model.MarketInputs, p model.ProductInputs) []string {
	warnings := []string{}
	check := func(name string, v float64, rng config.Range) {
		if !rng.Contains(v) {
			warnings = append(warnings, fmt.Sprintf("%s %g outside typical range [%g, %g]", name, v, rng.Min, rng.Max))
		}
	}
	check("spot", m.Spot, r.Spot)
	check("domestic_rate", m.DomesticRate, r.Rate)
	check("foreign_rate", m.ForeignRate, r.Rate)
	check("volatility", m.Volatility, r.Volatility)
	check("maturity_days", float64(p.MaturityDays), r.MaturityDays)
	check("notional", p.Notional, r.Notional)
	return warnings
}
