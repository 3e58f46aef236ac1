// Package convention holds the per-currency-pair market conventions used to
// turn a day count into a deposit year fraction and to default the
// settlement lag. A Table is built once at startup and never mutated.
package convention

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

// LookupError reports a currency pair missing from the table.
type LookupError struct {
	Pair string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown currency pair %q", e.Pair)
}

type Table struct {
	byPair map[string]model.Convention
	pairs  []string
}

// Defaults is the built-in table used when no conventions file is configured.
func Defaults() []model.Convention {
	return []model.Convention{
		{Pair: "EUR/USD", DayCountBasis: 360, SettlementDays: 2, Label: "European"},
		{Pair: "GBP/USD", DayCountBasis: 365, SettlementDays: 2, Label: "UK/US"},
		{Pair: "USD/JPY", DayCountBasis: 360, SettlementDays: 2, Label: "USD/Asian"},
		{Pair: "AUD/USD", DayCountBasis: 365, SettlementDays: 2, Label: "Australian"},
		{Pair: "USD/CHF", DayCountBasis: 360, SettlementDays: 2, Label: "USD/Swiss"},
		{Pair: "USD/CAD", DayCountBasis: 365, SettlementDays: 1, Label: "North American"},
		{Pair: "NZD/USD", DayCountBasis: 365, SettlementDays: 2, Label: "New Zealand"},
	}
}

func NewTable(conventions []model.Convention) (*Table, error) {
	if len(conventions) == 0 {
		return nil, fmt.Errorf("convention table is empty")
	}

	t := &Table{byPair: make(map[string]model.Convention, len(conventions))}
	for _, c := range conventions {
		pair := NormalizePair(c.Pair)
		if _, _, err := SplitPair(pair); err != nil {
			return nil, err
		}
		if c.DayCountBasis != 360 && c.DayCountBasis != 365 {
			return nil, fmt.Errorf("pair %s: day count basis must be 360 or 365, got %d", pair, c.DayCountBasis)
		}
		if c.SettlementDays < 0 {
			return nil, fmt.Errorf("pair %s: settlement days must be non-negative", pair)
		}
		if _, dup := t.byPair[pair]; dup {
			return nil, fmt.Errorf("pair %s: duplicate convention", pair)
		}
		c.Pair = pair
		t.byPair[pair] = c
		t.pairs = append(t.pairs, pair)
	}
	sort.Strings(t.pairs)

	return t, nil
}

func (t *Table) Lookup(pair string) (model.Convention, error) {
	c, ok := t.byPair[NormalizePair(pair)]
	if !ok {
		return model.Convention{}, &LookupError{Pair: pair}
	}
	return c, nil
}

// All returns the conventions sorted by pair.
func (t *Table) All() []model.Convention {
	out := make([]model.Convention, 0, len(t.pairs))
	for _, p := range t.pairs {
		out = append(out, t.byPair[p])
	}
	return out
}

// NormalizePair upper-cases and trims a pair; "eurusd" becomes "EUR/USD".
func NormalizePair(pair string) string {
	p := strings.ToUpper(strings.TrimSpace(pair))
	if len(p) == 6 && !strings.Contains(p, "/") {
		p = p[:3] + "/" + p[3:]
	}
	return p
}

// SplitPair returns the base and quote currencies of "BASE/QUOTE".
func SplitPair(pair string) (string, string, error) {
	parts := strings.Split(NormalizePair(pair), "/")
	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
		return "", "", fmt.Errorf("malformed currency pair %q", pair)
	}
	return parts[0], parts[1], nil
}
