// Package quotes retrieves daily closing-price series for instruments.
//
// Every Source returns closes ordered by increasing trade date. A Source
// either returns the full series (possibly empty) or an error; it never
// returns a partial series alongside an error.
package quotes

import (
	"context"
	"time"
)

// Source yields the closing prices of one ticker between from and to
// (both inclusive, compared by calendar date).
type Source interface {
	ClosingPrices(ctx context.Context, ticker string, from, to time.Time) ([]float64, error)
	Name() string
}
