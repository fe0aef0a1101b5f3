// Package analysis holds the pure reductions applied to a series of daily
// closing prices: summary statistics, a trailing simple moving average and
// the first-to-last change.
//
// A series is a []float64 ordered by increasing trade date. The caller owns
// the ordering; nothing here sorts, mutates or retains the input.
package analysis

import (
	"math"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// ComputeSummaryStatistics returns the minimum, maximum and mean of series,
// each rounded with Round2.
//
// Behavior:
//   - Single left-to-right fold seeded with +Inf/-Inf; the mean is the sum
//     divided once by len(series) after the fold.
//   - An empty series fails with ErrEmptySeries instead of yielding the
//     +Inf/-Inf/NaN sentinels the fold would otherwise leave behind.
func ComputeSummaryStatistics(series []float64) (models.Summary, error) {
	if len(series) == 0 {
		return models.Summary{}, ErrEmptySeries
	}

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, v := range series {
		if v <= lo {
			lo = v
		}
		if v >= hi {
			hi = v
		}
		sum += v
	}

	return models.Summary{
		Min: Round2(lo),
		Max: Round2(hi),
		Avg: Round2(sum / float64(len(series))),
	}, nil
}
