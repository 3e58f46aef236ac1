package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/dcd-pricer/internal/config"
	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/model"
	"github.com/anyulbade/dcd-pricer/internal/pricing"
	"github.com/anyulbade/dcd-pricer/internal/repository"
)

const tradeDateLayout = "2006-01-02"

type QuoteService struct {
	calc    *pricing.Calculator
	market  *config.Market
	journal repository.QuoteJournal
	now     func() time.Time
}

func NewQuoteService(calc *pricing.Calculator, market *config.Market, journal repository.QuoteJournal) *QuoteService {
	if journal == nil {
		journal = repository.NewNoopJournal()
	}
	return &QuoteService{calc: calc, market: market, journal: journal, now: time.Now}
}

func (s *QuoteService) Conventions() []model.Convention {
	return s.calc.Conventions().All()
}

// Price prices one DCD without touching the journal.
func (s *QuoteService) Price(_ context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	resp, _, _, err := s.price(req)
	return resp, err
}

// Quote prices one DCD and journals it. A journal failure is logged and the
// quote is still returned.
func (s *QuoteService) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	resp, m, p, err := s.price(req)
	if err != nil {
		return nil, err
	}

	rec := newQuoteRecord(m, p, &resp.Result)
	if err := s.journal.Insert(ctx, rec); err != nil {
		log.Warn().Err(err).Str("pair", resp.Result.CurrencyPair).Msg("quote not journaled")
	} else if rec.ID != uuid.Nil {
		resp.QuoteID = &rec.ID
	}
	return resp, nil
}

func (s *QuoteService) price(req *dto.QuoteRequest) (*dto.QuoteResponse, model.MarketInputs, model.ProductInputs, error) {
	m, p, err := s.inputs(&req.Market, &req.Product)
	if err != nil {
		return nil, m, p, err
	}

	res, err := s.calc.EnhancedRate(m, p)
	if err != nil {
		return nil, m, p, err
	}

	log.Debug().
		Str("pair", res.CurrencyPair).
		Int("maturity_days", p.MaturityDays).
		Float64("strike", p.Strike).
		Float64("enhanced_rate", res.EnhancedRate).
		Msg("quote priced")

	return &dto.QuoteResponse{
		Result:         *res,
		ThetaPerDay:    res.Greeks.Theta / pricing.OptionDayCountBasis,
		EnhancementBps: EnhancementBps(res, p),
		MoneynessPct:   MoneynessPct(m, p),
		RateTiers:      p.Tiers,
		Scenarios:      BuildScenarios(res, p),
		Insights:       BuildInsights(res, m, p),
		Warnings:       Warnings(s.market.Ranges, m, p),
	}, m, p, nil
}

// Matrix builds the strike x maturity grid. Explicit grids win over ranges;
// missing ranges come from the configured defaults around spot.
func (s *QuoteService) Matrix(ctx context.Context, req *dto.MatrixRequest) (*dto.MatrixResponse, error) {
	m, p, err := s.inputs(&req.Market, &req.Product)
	if err != nil {
		return nil, err
	}

	strikes := req.Strikes
	if len(strikes) == 0 {
		d := s.market.Matrix
		lo, hi, steps := req.StrikeMin, req.StrikeMax, req.StrikeSteps
		if lo == 0 && hi == 0 {
			lo, hi = m.Spot*(1-d.StrikeRangePct), m.Spot*(1+d.StrikeRangePct)
		}
		if steps == 0 {
			steps = d.StrikeSteps
		}
		if strikes, err = pricing.StrikeGrid(lo, hi, steps); err != nil {
			return nil, err
		}
	}

	maturities := req.Maturities
	if len(maturities) == 0 {
		d := s.market.Matrix
		lo, hi, steps := req.MaturityMin, req.MaturityMax, req.MaturitySteps
		if lo == 0 && hi == 0 {
			lo, hi = d.MaturityMin, d.MaturityMax
		}
		if steps == 0 {
			steps = d.MaturitySteps
		}
		if maturities, err = pricing.MaturityGrid(lo, hi, steps); err != nil {
			return nil, err
		}
	}

	start := s.now()
	matrix, err := s.calc.BuildMatrix(ctx, m, p, strikes, maturities)
	if err != nil {
		return nil, err
	}

	event := log.Debug()
	if matrix.Failed > 0 {
		event = log.Warn()
	}
	event.
		Str("pair", p.CurrencyPair).
		Int("cells", len(strikes)*len(maturities)).
		Int("failed", matrix.Failed).
		Dur("elapsed", s.now().Sub(start)).
		Msg("rate matrix built")

	resp := dto.NewMatrixResponse(p.CurrencyPair, matrix)
	if conv, err := s.calc.Conventions().Lookup(p.CurrencyPair); err == nil {
		resp.CurrencyPair = conv.Pair
	}
	return &resp, nil
}

func (s *QuoteService) Payoff(_ context.Context, req *dto.PayoffRequest) (*dto.PayoffResponse, error) {
	m, p, err := s.inputs(&req.Market, &req.Product)
	if err != nil {
		return nil, err
	}

	res, err := s.calc.EnhancedRate(m, p)
	if err != nil {
		return nil, err
	}

	d := s.market.Payoff
	low, high, n := req.SpotLow, req.SpotHigh, req.Points
	if low == 0 && high == 0 {
		low, high = d.SpotLow, d.SpotHigh
	}
	if n == 0 {
		n = d.Points
	}
	spots, err := pricing.SpotGrid(m.Spot, low, high, n)
	if err != nil {
		return nil, err
	}

	return &dto.PayoffResponse{
		CurrencyPair:  res.CurrencyPair,
		Strike:        p.Strike,
		DepositAmount: p.Notional * (1 + res.EnhancedRate*res.DepositYearFraction),
		Points:        pricing.PayoffProfile(res, p, spots),
	}, nil
}

func (s *QuoteService) ListQuotes(ctx context.Context, limit, offset int) ([]model.QuoteRecord, int, error) {
	return s.journal.List(ctx, limit, offset)
}

func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*model.QuoteRecord, error) {
	return s.journal.GetByID(ctx, id)
}

// PurgeExpired drops journal rows older than retention.
func (s *QuoteService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	return s.journal.PurgeOlderThan(ctx, s.now().Add(-retention))
}

func (s *QuoteService) inputs(mr *dto.MarketRequest, pr *dto.ProductRequest) (model.MarketInputs, model.ProductInputs, error) {
	trade := s.now().UTC()
	if mr.TradeDate != "" {
		t, err := time.Parse(tradeDateLayout, mr.TradeDate)
		if err != nil {
			return model.MarketInputs{}, model.ProductInputs{}, &pricing.InputValidationError{
				Field:   "trade_date",
				Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", mr.TradeDate),
			}
		}
		trade = t
	}

	m := model.MarketInputs{
		Spot:         mr.Spot,
		DomesticRate: mr.DomesticRate,
		ForeignRate:  mr.ForeignRate,
		Volatility:   mr.Volatility,
		TradeDate:    time.Date(trade.Year(), trade.Month(), trade.Day(), 0, 0, 0, 0, time.UTC),
	}

	p := model.ProductInputs{
		CurrencyPair:   pr.CurrencyPair,
		Notional:       pr.Notional,
		MaturityDays:   pr.MaturityDays,
		Strike:         pr.Strike,
		SettlementDays: pr.SettlementDays,
		DayCountBasis:  pr.DayCountBasis,
		BaseRate:       pr.BaseRate,
		SlopeBpsPerDay: pr.SlopeBpsPerDay,
	}
	var curve *pricing.TieredCurve
	switch {
	case len(pr.Tiers) > 0:
		c, err := pricing.NewTieredCurve(pr.Tiers)
		if err != nil {
			return m, p, err
		}
		curve = c
	case pr.RateMode == "tiered":
		curve = s.market.TierCurve()
		if curve == nil {
			return m, p, fmt.Errorf("tiered mode requested but no validated default tiers are loaded")
		}
	}
	if curve != nil {
		p.Curve = curve
		p.Tiers = curve.Tiers()
	}
	return m, p, nil
}

func newQuoteRecord(m model.MarketInputs, p model.ProductInputs, res *model.PricingResult) *model.QuoteRecord {
	return &model.QuoteRecord{
		CurrencyPair:          res.CurrencyPair,
		Spot:                  m.Spot,
		Strike:                p.Strike,
		DomesticRate:          m.DomesticRate,
		ForeignRate:           m.ForeignRate,
		Volatility:            m.Volatility,
		MaturityDays:          p.MaturityDays,
		SettlementDays:        res.Schedule.SettlementDays,
		DayCountBasis:         res.DayCountBasis,
		Notional:              decimal.NewFromFloat(p.Notional).Round(2),
		Premium:               decimal.NewFromFloat(res.Premium).Round(2),
		AdjustedBaseRate:      res.AdjustedBaseRate,
		EnhancedRate:          res.EnhancedRate,
		ConversionProbability: res.ConversionProbability,
		TradeDate:             res.Schedule.TradeDate,
		OptionExpiry:          res.Schedule.OptionExpiry,
		DepositSettlement:     res.Schedule.DepositSettlement,
	}
}
