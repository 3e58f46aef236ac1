package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/dcd-pricer/internal/model"
)

// QuoteJournal stores priced quotes for later retrieval.
type QuoteJournal interface {
	Insert(ctx context.Context, q *model.QuoteRecord) error
	List(ctx context.Context, limit, offset int) ([]model.QuoteRecord, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteRecord, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

const quoteColumns = `id, currency_pair, spot, strike, domestic_rate, foreign_rate, volatility,
	maturity_days, settlement_days, day_count_basis, notional, premium,
	adjusted_base_rate, enhanced_rate, conversion_probability,
	trade_date, option_expiry, deposit_settlement, created_at`

type QuoteRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

func (r *QuoteRepository) Insert(ctx context.Context, q *model.QuoteRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quotes (currency_pair, spot, strike, domestic_rate, foreign_rate, volatility,
			maturity_days, settlement_days, day_count_basis, notional, premium,
			adjusted_base_rate, enhanced_rate, conversion_probability,
			trade_date, option_expiry, deposit_settlement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`,
		q.CurrencyPair, q.Spot, q.Strike, q.DomesticRate, q.ForeignRate, q.Volatility,
		q.MaturityDays, q.SettlementDays, q.DayCountBasis, q.Notional, q.Premium,
		q.AdjustedBaseRate, q.EnhancedRate, q.ConversionProbability,
		q.TradeDate, q.OptionExpiry, q.DepositSettlement,
	).Scan(&q.ID, &q.CreatedAt)
}

// List returns one page of quotes, newest first, and the total row count.
func (r *QuoteRepository) List(ctx context.Context, limit, offset int) ([]model.QuoteRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.QuoteRecord, 0, limit)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}
	return quotes, total, rows.Err()
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	return scanQuote(row)
}

// PurgeOlderThan deletes quotes created before cutoff and returns how many went.
func (r *QuoteRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge quotes: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanQuote(row pgx.Row) (*model.QuoteRecord, error) {
	var q model.QuoteRecord
	err := row.Scan(
		&q.ID, &q.CurrencyPair, &q.Spot, &q.Strike, &q.DomesticRate, &q.ForeignRate, &q.Volatility,
		&q.MaturityDays, &q.SettlementDays, &q.DayCountBasis, &q.Notional, &q.Premium,
		&q.AdjustedBaseRate, &q.EnhancedRate, &q.ConversionProbability,
		&q.TradeDate, &q.OptionExpiry, &q.DepositSettlement, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// NoopJournal is used when quote persistence is switched off.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (NoopJournal) Insert(_ context.Context, _ *model.QuoteRecord) error { return nil }

func (NoopJournal) List(_ context.Context, _, _ int) ([]model.QuoteRecord, int, error) {
	return []model.QuoteRecord{}, 0, nil
}

func (NoopJournal) GetByID(_ context.Context, _ uuid.UUID) (*model.QuoteRecord, error) {
	return nil, pgx.ErrNoRows
}

func (NoopJournal) PurgeOlderThan(_ context.Context, _ time.Time) (int64, error) { return 0, nil }
