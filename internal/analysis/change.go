package analysis

import "github.com/guttosm/quotepulse/internal/domain/models"

// ComputeChange returns the absolute and percent change between the first
// and last price of series.
//
// The absolute change is rounded first and the percent is derived from the
// rounded value: Percent = Round2(Round2(last-first) * 100 / first).
//
// Errors:
//   - ErrEmptySeries when series has no elements.
//   - ErrDivisionByZero when the first price is zero.
func ComputeChange(series []float64) (models.Change, error) {
	if len(series) == 0 {
		return models.Change{}, ErrEmptySeries
	}
	first, last := series[0], series[len(series)-1]
	if first == 0 {
		return models.Change{}, ErrDivisionByZero
	}

	abs := Round2(last - first)
	return models.Change{
		Percent:  Round2(abs * 100 / first),
		Absolute: abs,
	}, nil
}
