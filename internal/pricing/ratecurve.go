package pricing

import (
	"math"
	"sort"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

type RateCurve = model.RateCurve

// AdjustedRate applies a linear term structure: the slope is expressed in
// basis points per day of maturity.
func AdjustedRate(baseRate float64, maturityDays int, slopeBpsPerDay float64) (float64, error) {
	if maturityDays <= 0 {
		return 0, invalid("maturity_days", "must be positive, got %d", maturityDays)
	}
	if math.IsNaN(baseRate) || math.IsInf(baseRate, 0) {
		return 0, invalid("base_rate", "must be finite")
	}
	if math.IsNaN(slopeBpsPerDay) || math.IsInf(slopeBpsPerDay, 0) {
		return 0, invalid("slope_bps_per_day", "must be finite")
	}
	return baseRate + slopeBpsPerDay*float64(maturityDays)/10000, nil
}

type LinearCurve struct {
	Base           float64
	SlopeBpsPerDay float64
}

func (c LinearCurve) Rate(maturityDays int) (float64, error) {
	return AdjustedRate(c.Base, maturityDays, c.SlopeBpsPerDay)
}

// TieredCurve selects the rate of the tier whose day range contains the
// maturity. Tiers are validated once, in NewTieredCurve.
type TieredCurve struct {
	tiers []model.RateTier
}

func NewTieredCurve(tiers []model.RateTier) (*TieredCurve, error) {
	if len(tiers) == 0 {
		return nil, invalid("tiers", "at least one tier is required")
	}

	sorted := make([]model.RateTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinDays < sorted[j].MinDays })

	for i, t := range sorted {
		if t.MinDays < 1 {
			return nil, invalid("tiers", "tier %d-%d: min_days must be at least 1", t.MinDays, t.MaxDays)
		}
		if t.MaxDays < t.MinDays {
			return nil, invalid("tiers", "tier %d-%d: max_days before min_days", t.MinDays, t.MaxDays)
		}
		if math.IsNaN(t.Rate) || math.IsInf(t.Rate, 0) {
			return nil, invalid("tiers", "tier %d-%d: rate must be finite", t.MinDays, t.MaxDays)
		}
		if i > 0 && t.MinDays <= sorted[i-1].MaxDays {
			prev := sorted[i-1]
			return nil, invalid("tiers", "tier %d-%d overlaps tier %d-%d", t.MinDays, t.MaxDays, prev.MinDays, prev.MaxDays)
		}
	}

	return &TieredCurve{tiers: sorted}, nil
}

func (c *TieredCurve) Rate(maturityDays int) (float64, error) {
	if maturityDays <= 0 {
		return 0, invalid("maturity_days", "must be positive, got %d", maturityDays)
	}
	i := sort.Search(len(c.tiers), func(i int) bool { return c.tiers[i].MaxDays >= maturityDays })
	if i < len(c.tiers) && c.tiers[i].MinDays <= maturityDays {
		return c.tiers[i].Rate, nil
	}
	return 0, invalid("maturity_days", "no rate tier covers %d days", maturityDays)
}

// Tiers returns the validated tiers in ascending order.
func (c *TieredCurve) Tiers() []model.RateTier {
	out := make([]model.RateTier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

func curveFor(p model.ProductInputs) (RateCurve, error) {
	if p.Curve != nil {
		return p.Curve, nil
	}
	if len(p.Tiers) > 0 {
		return NewTieredCurve(p.Tiers)
	}
	return LinearCurve{Base: p.BaseRate, SlopeBpsPerDay: p.SlopeBpsPerDay}, nil
}
