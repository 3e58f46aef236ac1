// Package pricing computes DCD enhanced rates: a deposit rate from a rate
// curve plus the amortized premium of the short FX call the depositor sells.
package pricing

import (
	"time"

	"github.com/anyulbade/dcd-pricer/internal/calendar"
	"github.com/anyulbade/dcd-pricer/internal/convention"
	"github.com/anyulbade/dcd-pricer/internal/model"
)

// OptionDayCountBasis is the Actual/365 Fixed basis of the option year
// fraction. The deposit year fraction uses the pair's convention instead.
const OptionDayCountBasis = 365

type Calculator struct {
	conventions *convention.Table
	cal         *calendar.Calendar
	pricer      OptionPricer
}

// NewCalculator wires the calculator. A nil calendar means weekends only; a
// nil pricer means Garman-Kohlhagen.
func NewCalculator(conventions *convention.Table, cal *calendar.Calendar, pricer OptionPricer) *Calculator {
	if cal == nil {
		cal = calendar.New()
	}
	if pricer == nil {
		pricer = GarmanKohlhagen{}
	}
	return &Calculator{conventions: conventions, cal: cal, pricer: pricer}
}

func (c *Calculator) Conventions() *convention.Table {
	return c.conventions
}

// EnhancedRate prices one DCD. It is a pure function of its inputs.
func (c *Calculator) EnhancedRate(m model.MarketInputs, p model.ProductInputs) (*model.PricingResult, error) {
	if err := validateMarket(m); err != nil {
		return nil, err
	}
	terms, err := c.resolve(p)
	if err != nil {
		return nil, err
	}
	return c.price(m, p, terms)
}

// terms is everything about a product that does not vary across a matrix sweep.
type terms struct {
	conv           model.Convention
	basis          int
	settlementDays int
	curve          RateCurve
}

func (c *Calculator) resolve(p model.ProductInputs) (terms, error) {
	conv, err := c.conventions.Lookup(p.CurrencyPair)
	if err != nil {
		return terms{}, err
	}

	t := terms{conv: conv, basis: conv.DayCountBasis, settlementDays: conv.SettlementDays}
	if p.DayCountBasis != nil {
		if *p.DayCountBasis != 360 && *p.DayCountBasis != 365 {
			return terms{}, invalid("day_count_basis", "must be 360 or 365, got %d", *p.DayCountBasis)
		}
		t.basis = *p.DayCountBasis
	}
	if p.SettlementDays != nil {
		if *p.SettlementDays < 0 {
			return terms{}, invalid("settlement_days", "must be non-negative, got %d", *p.SettlementDays)
		}
		t.settlementDays = *p.SettlementDays
	}
	if isBad(p.Notional) || p.Notional <= 0 {
		return terms{}, invalid("notional", "must be positive")
	}

	t.curve, err = curveFor(p)
	if err != nil {
		return terms{}, err
	}
	return t, nil
}

func (c *Calculator) price(m model.MarketInputs, p model.ProductInputs, t terms) (*model.PricingResult, error) {
	if p.MaturityDays <= 0 {
		return nil, invalid("maturity_days", "must be positive, got %d", p.MaturityDays)
	}
	if isBad(p.Strike) || p.Strike <= 0 {
		return nil, invalid("strike", "must be positive")
	}

	optionYF := float64(p.MaturityDays) / OptionDayCountBasis
	depositYF := float64(p.MaturityDays) / float64(t.basis)

	opt, err := c.pricer.Price(OptionParams{
		Spot:         m.Spot,
		Strike:       p.Strike,
		DomesticRate: m.DomesticRate,
		ForeignRate:  m.ForeignRate,
		Volatility:   m.Volatility,
		YearFraction: optionYF,
	})
	if err != nil {
		return nil, err
	}

	adjusted, err := t.curve.Rate(p.MaturityDays)
	if err != nil {
		return nil, err
	}

	premium := opt.Price * p.Notional
	enhancement := premium / (p.Notional * depositYF)

	return &model.PricingResult{
		CurrencyPair:          t.conv.Pair,
		DayCountBasis:         t.basis,
		PremiumPerUnit:        opt.Price,
		Premium:               premium,
		Greeks:                opt.Greeks,
		Forward:               opt.Forward,
		AdjustedBaseRate:      adjusted,
		RateEnhancement:       enhancement,
		EnhancedRate:          adjusted + enhancement,
		ConversionProbability: opt.ExerciseProbability,
		OptionYearFraction:    optionYF,
		DepositYearFraction:   depositYF,
		ConvertedAmount:       p.Notional * p.Strike,
		Schedule:              c.schedule(m.TradeDate, p.MaturityDays, t.settlementDays),
	}, nil
}

// schedule places the option expiry maturityDays calendar days after the
// trade date, rolled Modified Following, and the deposit settlement
// settlementDays business days after expiry.
func (c *Calculator) schedule(tradeDate time.Time, maturityDays, settlementDays int) model.Schedule {
	trade := time.Date(tradeDate.Year(), tradeDate.Month(), tradeDate.Day(), 0, 0, 0, 0, time.UTC)
	expiry := c.cal.Adjust(trade.AddDate(0, 0, maturityDays))
	return model.Schedule{
		TradeDate:         trade,
		OptionExpiry:      expiry,
		DepositSettlement: c.cal.AddBusinessDays(expiry, settlementDays),
		SettlementDays:    settlementDays,
	}
}

func validateMarket(m model.MarketInputs) error {
	if isBad(m.Spot) || m.Spot <= 0 {
		return invalid("spot", "must be positive")
	}
	if isBad(m.Volatility) || m.Volatility < 0 {
		return invalid("volatility", "must be non-negative")
	}
	if isBad(m.DomesticRate) {
		return invalid("domestic_rate", "must be finite")
	}
	if isBad(m.ForeignRate) {
		return invalid("foreign_rate", "must be finite")
	}
	if m.TradeDate.IsZero() {
		return invalid("trade_date", "is required")
	}
	return nil
}
