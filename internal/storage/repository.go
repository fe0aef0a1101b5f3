package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// QuotesRepository defines contract for DB operations on daily quotes.
type QuotesRepository interface {
	InsertQuotesBatch(quotes []models.Quote) error
	GetClosingPrices(ctx context.Context, ticker string, startDate *time.Time, endDate *time.Time) ([]float64, error)
	HasIngestionForTicker(ticker string) (bool, error)
	UpsertIngestionLog(ticker string, filename string, rowCount int) error
	DeleteQuotesByTicker(ticker string) error
}

type quotesRepository struct {
	db *sql.DB
}

func NewQuotesRepository(db *sql.DB) QuotesRepository {
	return &quotesRepository{db: db}
}

// InsertQuotesBatch inserts multiple quotes into DB in a single transaction.
func (r *quotesRepository) InsertQuotesBatch(quotes []models.Quote) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"daily_quotes",
		"ticker",
		"trade_date",
		"open_price",
		"high_price",
		"low_price",
		"close_price",
		"adj_close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, q := range quotes {
		if _, err := stmt.Exec(
			q.Ticker,
			q.TradeDate,
			q.Open,
			q.High,
			q.Low,
			q.Close,
			q.AdjClose,
			q.Volume,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForTicker checks if a CSV import was already recorded for a ticker.
func (r *quotesRepository) HasIngestionForTicker(ticker string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE ticker = $1)`, ticker).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an import entry for a ticker.
func (r *quotesRepository) UpsertIngestionLog(ticker string, filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (ticker, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, ticker, filename, rowCount)
	return err
}

// DeleteQuotesByTicker removes every stored quote of a ticker.
func (r *quotesRepository) DeleteQuotesByTicker(ticker string) error {
	_, err := r.db.Exec(`DELETE FROM daily_quotes WHERE ticker = $1`, ticker)
	return err
}

// GetClosingPrices returns the adjusted closes of a ticker ordered by trade
// date, optionally bounded (inclusive) by startDate and endDate.
// A ticker with no rows yields an empty slice and no error.
func (r *quotesRepository) GetClosingPrices(ctx context.Context, ticker string, startDate *time.Time, endDate *time.Time) ([]float64, error) {
	// $1 is always ticker. Subsequent placeholders depend on provided dates.
	conditions := "ticker = $1"
	args := []interface{}{ticker}

	if startDate != nil {
		conditions += fmt.Sprintf(" AND trade_date >= $%d", len(args)+1)
		args = append(args, *startDate)
	}
	if endDate != nil {
		conditions += fmt.Sprintf(" AND trade_date <= $%d", len(args)+1)
		args = append(args, *endDate)
	}

	query := fmt.Sprintf(`SELECT adj_close FROM daily_quotes WHERE %s ORDER BY trade_date ASC`, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	closes := make([]float64, 0, 256)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		closes = append(closes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return closes, nil
}
