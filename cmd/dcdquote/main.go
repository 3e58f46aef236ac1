package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/dcd-pricer/internal/config"
	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/pricing"
	"github.com/anyulbade/dcd-pricer/internal/service"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	configPath := "configs/dcd.yaml"
	for i, a := range args {
		if a == "-config" && i+1 < len(args) {
			configPath = args[i+1]
		} else if v, ok := strings.CutPrefix(a, "-config="); ok {
			configPath = v
		}
	}

	market, err := config.LoadMarket(configPath)
	if err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("failed to load market config")
		return 1
	}
	d := market.Quote

	fs := flag.NewFlagSet("dcdquote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("config", configPath, "market configuration file")
	pair := fs.String("pair", d.Pair, "currency pair, e.g. EUR/USD")
	spot := fs.Float64("spot", d.Spot, "spot rate")
	rd := fs.Float64("rd", d.DomesticRate, "domestic (quote currency) rate, decimal")
	rf := fs.Float64("rf", d.ForeignRate, "foreign (base currency) rate, decimal")
	vol := fs.Float64("vol", d.Volatility, "annualised volatility, decimal")
	days := fs.Int("days", d.MaturityDays, "maturity in calendar days")
	notional := fs.Float64("notional", d.Notional, "deposit notional in base currency")
	strike := fs.Float64("strike", d.Strike, "conversion strike")
	base := fs.Float64("base", d.BaseRate, "deposit base rate, decimal")
	slope := fs.Float64("slope", 0, "base rate slope in bps per day")
	tiered := fs.Bool("tiered", false, "use the configured tiered base rate")
	tradeDate := fs.String("trade-date", "", "trade date YYYY-MM-DD (default today)")
	matrix := fs.Bool("matrix", false, "print the strike x maturity rate matrix")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	table, err := market.ConventionTable()
	if err != nil {
		log.Error().Err(err).Msg("invalid convention table")
		return 1
	}
	cal, err := market.Calendar()
	if err != nil {
		log.Error().Err(err).Msg("invalid holiday calendar")
		return 1
	}
	svc := service.NewQuoteService(pricing.NewCalculator(table, cal, nil), market, nil)

	mr := dto.MarketRequest{Spot: *spot, DomesticRate: *rd, ForeignRate: *rf, Volatility: *vol, TradeDate: *tradeDate}
	pr := dto.ProductRequest{
		CurrencyPair:   *pair,
		Notional:       *notional,
		MaturityDays:   *days,
		Strike:         *strike,
		BaseRate:       *base,
		SlopeBpsPerDay: *slope,
	}
	if *tiered {
		pr.RateMode = "tiered"
	}

	ctx := context.Background()
	if *matrix {
		resp, err := svc.Matrix(ctx, &dto.MatrixRequest{Market: mr, Product: pr})
		if err != nil {
			log.Error().Err(err).Msg("matrix failed")
			return 1
		}
		if *asJSON {
			return writeJSON(stdout, resp)
		}
		printMatrix(stdout, resp)
		return 0
	}

	resp, err := svc.Quote(ctx, &dto.QuoteRequest{Market: mr, Product: pr})
	if err != nil {
		log.Error().Err(err).Msg("quote failed")
		return 1
	}
	if *asJSON {
		return writeJSON(stdout, resp)
	}
	printQuote(stdout, resp)
	return 0
}

func writeJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("encode output")
		return 1
	}
	return 0
}

func printQuote(w io.Writer, q *dto.QuoteResponse) {
	r := q.Result
	s := q.Scenarios
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pair\t%s\n", r.CurrencyPair)
	fmt.Fprintf(tw, "Trade / expiry / settlement\t%s / %s / %s (T+%d)\n",
		r.Schedule.TradeDate.Format("2006-01-02"),
		r.Schedule.OptionExpiry.Format("2006-01-02"),
		r.Schedule.DepositSettlement.Format("2006-01-02"),
		r.Schedule.SettlementDays)
	fmt.Fprintf(tw, "Day count\tActual/%d\n", r.DayCountBasis)
	fmt.Fprintf(tw, "Base rate\t%.4f%%\n", r.AdjustedBaseRate*100)
	fmt.Fprintf(tw, "Enhanced rate\t%.4f%% (+%.1f bps)\n", r.EnhancedRate*100, q.EnhancementBps)
	fmt.Fprintf(tw, "Premium\t%s %s\n", s.BaseCurrency, s.Premium.StringFixed(2))
	fmt.Fprintf(tw, "Conversion probability\t%.2f%%\n", r.ConversionProbability*100)
	fmt.Fprintf(tw, "Kept amount\t%s %s\n", s.BaseCurrency, s.KeptAmount.StringFixed(2))
	fmt.Fprintf(tw, "Converted amount\t%s %s\n", s.QuoteCurrency, s.ConvertedAmount.StringFixed(2))
	fmt.Fprintf(tw, "Delta / gamma / vega\t%.4f / %.4f / %.4f\n", r.Greeks.Delta, r.Greeks.Gamma, r.Greeks.Vega)
	fmt.Fprintf(tw, "Theta per day\t%.6f\n", q.ThetaPerDay)
	for _, warn := range q.Warnings {
		fmt.Fprintf(tw, "Warning\t%s\n", warn)
	}
	tw.Flush()
}

func printMatrix(w io.Writer, m *dto.MatrixResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t", m.CurrencyPair)
	for _, k := range m.Strikes {
		fmt.Fprintf(tw, "%.4f\t", k)
	}
	fmt.Fprintln(tw)
	for i, days := range m.Maturities {
		fmt.Fprintf(tw, "%dd\t", days)
		for _, cell := range m.Rates[i] {
			if cell == nil {
				fmt.Fprint(tw, "-\t")
				continue
			}
			fmt.Fprintf(tw, "%.3f%%\t", *cell*100)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
