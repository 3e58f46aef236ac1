package pricing

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

// BuildMatrix sweeps EnhancedRate over maturities (rows) x strikes (columns),
// in the order given. A cell that fails to price is NaN and counted in
// Failed; only invalid shared inputs or a cancelled context abort the sweep.
func (c *Calculator) BuildMatrix(ctx context.Context, m model.MarketInputs, p model.ProductInputs, strikes []float64, maturities []int) (*model.RateMatrix, error) {
	if len(strikes) == 0 {
		return nil, invalid("strikes", "grid is empty")
	}
	if len(maturities) == 0 {
		return nil, invalid("maturities", "grid is empty")
	}
	if err := validateMarket(m); err != nil {
		return nil, err
	}
	t, err := c.resolve(p)
	if err != nil {
		return nil, err
	}

	rates := make([][]float64, len(maturities))
	for i := range rates {
		rates[i] = make([]float64, len(strikes))
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, maturity := range maturities {
		for j, strike := range strikes {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cell := p
				cell.MaturityDays = maturity
				cell.Strike = strike
				res, err := c.price(m, cell, t)
				if err != nil {
					rates[i][j] = math.NaN()
					failed.Add(1)
					return nil
				}
				rates[i][j] = res.EnhancedRate
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.RateMatrix{
		Strikes:    append([]float64(nil), strikes...),
		Maturities: append([]int(nil), maturities...),
		Rates:      rates,
		Failed:     int(failed.Load()),
	}, nil
}

// StrikeGrid returns steps evenly spaced strikes from min to max inclusive.
func StrikeGrid(lo, hi float64, steps int) ([]float64, error) {
	if isBad(lo) || isBad(hi) || lo <= 0 {
		return nil, invalid("strike_min", "must be positive")
	}
	if lo >= hi {
		return nil, invalid("strike_max", "must be greater than strike_min")
	}
	if steps < 2 {
		return nil, invalid("strike_steps", "must be at least 2")
	}
	return linspace(lo, hi, steps), nil
}

// MaturityGrid returns steps evenly spaced maturities, truncated to whole days.
func MaturityGrid(lo, hi, steps int) ([]int, error) {
	if lo < 1 {
		return nil, invalid("maturity_min", "must be at least 1 day")
	}
	if lo >= hi {
		return nil, invalid("maturity_max", "must be greater than maturity_min")
	}
	if steps < 2 {
		return nil, invalid("maturity_steps", "must be at least 2")
	}
	points := linspace(float64(lo), float64(hi), steps)
	out := make([]int, steps)
	for i, v := range points {
		out[i] = int(v)
	}
	return out, nil
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
