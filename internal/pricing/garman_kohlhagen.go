package pricing

import (
	"math"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

// MaxVolatility bounds the accepted volatility; above it the closed form
// loses all precision.
const MaxVolatility = 10.0

type OptionParams struct {
	Spot         float64
	Strike       float64
	DomesticRate float64
	ForeignRate  float64
	Volatility   float64
	YearFraction float64
}

type OptionResult struct {
	Price   float64
	Greeks  model.Greeks
	Forward float64
	// ExerciseProbability is the risk-neutral probability N(d2) that the
	// spot at expiry ends at or above the strike.
	ExerciseProbability float64
}

// OptionPricer prices the call embedded in a DCD.
type OptionPricer interface {
	Price(p OptionParams) (OptionResult, error)
}

// GarmanKohlhagen prices European FX calls in closed form. The foreign rate
// plays the role of a continuous dividend yield.
type GarmanKohlhagen struct{}

func (GarmanKohlhagen) Price(p OptionParams) (OptionResult, error) {
	if err := p.validate(); err != nil {
		return OptionResult{}, err
	}

	s, k, t, sigma := p.Spot, p.Strike, p.YearFraction, p.Volatility
	rd, rf := p.DomesticRate, p.ForeignRate

	dfDom := math.Exp(-rd * t)
	dfFor := math.Exp(-rf * t)
	if isBad(dfDom) || dfDom == 0 {
		return OptionResult{}, &PricingFailure{Param: "domestic_rate", Reason: "discount factor overflow"}
	}
	if isBad(dfFor) || dfFor == 0 {
		return OptionResult{}, &PricingFailure{Param: "foreign_rate", Reason: "discount factor overflow"}
	}
	forward := s * dfFor / dfDom

	sqrtT := math.Sqrt(t)
	var nd1, nd2, pdf, gamma float64
	if sigma == 0 {
		// Deterministic limit: the forward either reaches the strike or not.
		// Compared in discounted terms so F == K is exact when rd == rf.
		if s*dfFor >= k*dfDom {
			nd1, nd2 = 1, 1
		}
	} else {
		d1 := (math.Log(s/k) + (rd-rf+0.5*sigma*sigma)*t) / (sigma * sqrtT)
		d2 := d1 - sigma*sqrtT
		nd1 = normCDF(d1)
		nd2 = normCDF(d2)
		pdf = normPDF(d1)
		gamma = dfFor * pdf / (s * sigma * sqrtT)
	}

	price := math.Max(s*dfFor*nd1-k*dfDom*nd2, 0)

	res := OptionResult{
		Price: price,
		Greeks: model.Greeks{
			Delta:      dfFor * nd1,
			Gamma:      gamma,
			Theta:      -s*dfFor*pdf*sigma/(2*sqrtT) + rf*s*dfFor*nd1 - rd*k*dfDom*nd2,
			Vega:       s * dfFor * pdf * sqrtT,
			Rho:        k * t * dfDom * nd2,
			RhoForeign: -s * t * dfFor * nd1,
		},
		Forward:             forward,
		ExerciseProbability: nd2,
	}

	if isBad(res.Price) || isBad(res.Forward) || isBad(res.Greeks.Gamma) || isBad(res.Greeks.Theta) {
		return OptionResult{}, &PricingFailure{Param: "volatility", Reason: "non-finite result"}
	}

	return res, nil
}

func (p OptionParams) validate() error {
	checks := []struct {
		name  string
		value float64
		ok    bool
		rule  string
	}{
		{"spot", p.Spot, p.Spot > 0, "must be positive"},
		{"strike", p.Strike, p.Strike > 0, "must be positive"},
		{"year_fraction", p.YearFraction, p.YearFraction > 0, "must be positive"},
		{"volatility", p.Volatility, p.Volatility >= 0, "must be non-negative"},
		{"volatility", p.Volatility, p.Volatility <= MaxVolatility, "numerical overflow above maximum volatility"},
		{"domestic_rate", p.DomesticRate, true, ""},
		{"foreign_rate", p.ForeignRate, true, ""},
	}
	for _, c := range checks {
		if isBad(c.value) {
			return &PricingFailure{Param: c.name, Reason: "must be finite"}
		}
		if !c.ok {
			return &PricingFailure{Param: c.name, Reason: c.rule}
		}
	}
	return nil
}

func isBad(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
