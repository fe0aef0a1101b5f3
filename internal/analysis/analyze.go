package analysis

import "github.com/guttosm/quotepulse/internal/domain/models"

// Analyze runs every reduction over the same series and bundles the results
// with the last closing price and the most recent SMA value.
//
// A series too short for a single SMA window is not an error: the moving
// average is left empty and SMAValid is false. Summary and change errors
// are returned as-is so callers can match them with errors.Is.
func Analyze(series []float64, window int) (models.Analysis, error) {
	ma, err := ComputeMovingAverage(window, series)
	if err != nil {
		return models.Analysis{}, err
	}
	summary, err := ComputeSummaryStatistics(series)
	if err != nil {
		return models.Analysis{}, err
	}
	change, err := ComputeChange(series)
	if err != nil {
		return models.Analysis{}, err
	}

	a := models.Analysis{
		Summary:       summary,
		Change:        change,
		MovingAverage: ma,
		Window:        window,
		LastPrice:     series[len(series)-1],
		Observations:  len(series),
	}
	if len(ma) > 0 {
		a.SMA = ma[len(ma)-1]
		a.SMAValid = true
	}
	return a, nil
}
