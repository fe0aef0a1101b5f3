package quotes

import (
	"context"
	"time"
)

// ClosingPriceReader is the slice of storage.QuotesRepository StoreSource needs.
type ClosingPriceReader interface {
	GetClosingPrices(ctx context.Context, ticker string, startDate *time.Time, endDate *time.Time) ([]float64, error)
}

// StoreSource reads closing prices imported into Postgres.
type StoreSource struct {
	repo ClosingPriceReader
}

func NewStoreSource(repo ClosingPriceReader) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Name() string { return "postgres" }

func (s *StoreSource) ClosingPrices(ctx context.Context, ticker string, from, to time.Time) ([]float64, error) {
	start, end := from, to
	return s.repo.GetClosingPrices(ctx, ticker, &start, &end)
}
