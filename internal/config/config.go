package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/anyulbade/dcd-pricer/internal/calendar"
	"github.com/anyulbade/dcd-pricer/internal/convention"
	"github.com/anyulbade/dcd-pricer/internal/model"
	"github.com/anyulbade/dcd-pricer/internal/pricing"
)

type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	AutoMigrate   bool
	GinMode       string
	PersistQuotes bool
	RetentionDays int
	PurgeCron     string
	ConfigPath    string

	Market *Market
}

// Market is the pricing configuration read from the YAML file.
type Market struct {
	Conventions  []model.Convention `yaml:"conventions"`
	Holidays     []string           `yaml:"holidays"`
	DefaultTiers []model.RateTier   `yaml:"default_tiers"`
	Ranges       Ranges             `yaml:"validation_ranges"`
	Matrix       MatrixDefaults     `yaml:"matrix"`
	Payoff       PayoffDefaults     `yaml:"payoff"`
	Quote        QuoteDefaults      `yaml:"quote_defaults"`

	tierCurve *pricing.TieredCurve
}

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Ranges are the typical market values. Inputs outside them are priced but
// flagged with a warning.
type Ranges struct {
	Spot         Range `yaml:"spot"`
	Rate         Range `yaml:"rate"`
	Volatility   Range `yaml:"volatility"`
	MaturityDays Range `yaml:"maturity_days"`
	Notional     Range `yaml:"notional"`
}

type MatrixDefaults struct {
	StrikeRangePct float64 `yaml:"strike_range_pct"`
	StrikeSteps    int     `yaml:"strike_steps"`
	MaturityMin    int     `yaml:"maturity_min"`
	MaturityMax    int     `yaml:"maturity_max"`
	MaturitySteps  int     `yaml:"maturity_steps"`
}

type PayoffDefaults struct {
	SpotLow  float64 `yaml:"spot_low"`
	SpotHigh float64 `yaml:"spot_high"`
	Points   int     `yaml:"points"`
}

// QuoteDefaults seed the CLI flags.
type QuoteDefaults struct {
	Pair         string  `yaml:"pair"`
	Spot         float64 `yaml:"spot"`
	DomesticRate float64 `yaml:"domestic_rate"`
	ForeignRate  float64 `yaml:"foreign_rate"`
	Volatility   float64 `yaml:"volatility"`
	MaturityDays int     `yaml:"maturity_days"`
	Notional     float64 `yaml:"notional"`
	BaseRate     float64 `yaml:"base_rate"`
	Strike       float64 `yaml:"strike"`
}

func Load() (*Config, error) {
	retention, err := strconv.Atoi(getEnv("QUOTE_RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("QUOTE_RETENTION_DAYS: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "dcd"),
		DBPassword:    getEnv("DB_PASSWORD", "dcd_secret"),
		DBName:        getEnv("DB_NAME", "dcd"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		AutoMigrate:   getEnv("AUTO_MIGRATE", "false") == "true",
		GinMode:       getEnv("GIN_MODE", "debug"),
		PersistQuotes: getEnv("PERSIST_QUOTES", "false") == "true",
		RetentionDays: retention,
		PurgeCron:     getEnv("PURGE_CRON", "0 0 3 * * *"),
		ConfigPath:    getEnv("CONFIG_PATH", "configs/dcd.yaml"),
	}

	cfg.Market, err = LoadMarket(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadMarket reads the market file at path. A missing file yields the
// built-in defaults; sections absent from the file are defaulted one by one.
func LoadMarket(path string) (*Market, error) {
	m := &Market{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read market config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("parse market config: %w", err)
		}
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultMarket is the configuration used when no file is present.
func DefaultMarket() *Market {
	m := &Market{}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		panic("built-in market defaults are invalid: " + err.Error())
	}
	return m
}

func (m *Market) applyDefaults() {
	if len(m.Conventions) == 0 {
		m.Conventions = convention.Defaults()
	}
	if len(m.DefaultTiers) == 0 {
		m.DefaultTiers = []model.RateTier{
			{MinDays: 1, MaxDays: 21, Rate: 0.0200},
			{MinDays: 22, MaxDays: 60, Rate: 0.0210},
			{MinDays: 61, MaxDays: 90, Rate: 0.0230},
			{MinDays: 91, MaxDays: 180, Rate: 0.0250},
			{MinDays: 181, MaxDays: 365, Rate: 0.0280},
		}
	}

	r := &m.Ranges
	if r.Spot == (Range{}) {
		r.Spot = Range{Min: 0.5, Max: 2.0}
	}
	if r.Rate == (Range{}) {
		r.Rate = Range{Min: 0, Max: 0.10}
	}
	if r.Volatility == (Range{}) {
		r.Volatility = Range{Min: 0.05, Max: 0.50}
	}
	if r.MaturityDays == (Range{}) {
		r.MaturityDays = Range{Min: 1, Max: 365}
	}
	if r.Notional == (Range{}) {
		r.Notional = Range{Min: 10_000, Max: 100_000_000}
	}

	if m.Matrix == (MatrixDefaults{}) {
		m.Matrix = MatrixDefaults{StrikeRangePct: 0.05, StrikeSteps: 10, MaturityMin: 30, MaturityMax: 180, MaturitySteps: 6}
	}
	if m.Payoff == (PayoffDefaults{}) {
		m.Payoff = PayoffDefaults{SpotLow: 0.8, SpotHigh: 1.2, Points: 100}
	}
	if m.Quote == (QuoteDefaults{}) {
		m.Quote = QuoteDefaults{
			Pair:         "EUR/USD",
			Spot:         1.0500,
			DomesticRate: 0.035,
			ForeignRate:  0.050,
			Volatility:   0.12,
			MaturityDays: 91,
			Notional:     1_000_000,
			BaseRate:     0.02,
			Strike:       1.0300,
		}
	}
}

// Validate checks the file and builds the default tier curve. Tiered quotes
// use that curve as is, so a bad tier set fails here and not per request.
func (m *Market) Validate() error {
	if _, err := convention.NewTable(m.Conventions); err != nil {
		return fmt.Errorf("conventions: %w", err)
	}
	curve, err := pricing.NewTieredCurve(m.DefaultTiers)
	if err != nil {
		return fmt.Errorf("default_tiers: %w", err)
	}
	m.tierCurve = curve
	if _, err := m.Calendar(); err != nil {
		return err
	}
	if m.Matrix.StrikeRangePct <= 0 || m.Matrix.StrikeRangePct >= 1 {
		return fmt.Errorf("matrix.strike_range_pct must be in (0, 1)")
	}
	if m.Matrix.StrikeSteps < 2 || m.Matrix.MaturitySteps < 2 {
		return fmt.Errorf("matrix steps must be at least 2")
	}
	if m.Matrix.MaturityMin < 1 || m.Matrix.MaturityMin >= m.Matrix.MaturityMax {
		return fmt.Errorf("matrix maturity range %d-%d is invalid", m.Matrix.MaturityMin, m.Matrix.MaturityMax)
	}
	if m.Payoff.SpotLow <= 0 || m.Payoff.SpotLow >= m.Payoff.SpotHigh || m.Payoff.Points < 2 {
		return fmt.Errorf("payoff grid is invalid")
	}
	return nil
}

// Calendar builds the business-day calendar from the configured holidays.
func (m *Market) Calendar() (*calendar.Calendar, error) {
	cal, err := calendar.Parse(m.Holidays)
	if err != nil {
		return nil, fmt.Errorf("holidays: %w", err)
	}
	return cal, nil
}

// TierCurve is the validated default tier curve; nil until Validate succeeds.
func (m *Market) TierCurve() *pricing.TieredCurve {
	return m.tierCurve
}

// ConventionTable builds the immutable lookup table.
func (m *Market) ConventionTable() (*convention.Table, error) {
	return convention.NewTable(m.Conventions)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
