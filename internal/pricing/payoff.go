package pricing

import "github.com/anyulbade/dcd-pricer/internal/model"

// SpotGrid spans [spot*low, spot*high] with n points.
func SpotGrid(spot, low, high float64, n int) ([]float64, error) {
	if isBad(spot) || spot <= 0 {
		return nil, invalid("spot", "must be positive")
	}
	if low <= 0 || low >= high {
		return nil, invalid("spot_range", "need 0 < low < high")
	}
	if n < 2 {
		return nil, invalid("points", "must be at least 2")
	}
	return linspace(spot*low, spot*high, n), nil
}

// PayoffProfile values the DCD at expiry in base-currency equivalent. At or
// above the strike the principal is converted at the strike and is worth
// notional*strike/s; below it the enhanced deposit is repaid.
func PayoffProfile(res *model.PricingResult, p model.ProductInputs, spots []float64) []model.PayoffPoint {
	deposit := p.Notional * (1 + res.EnhancedRate*res.DepositYearFraction)

	points := make([]model.PayoffPoint, len(spots))
	for i, s := range spots {
		if s >= p.Strike {
			points[i] = model.PayoffPoint{Spot: s, Value: p.Notional * p.Strike / s, Converted: true}
			continue
		}
		points[i] = model.PayoffPoint{Spot: s, Value: deposit}
	}
	return points
}
