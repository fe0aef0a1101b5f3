package analysis

// ComputeMovingAverage returns the trailing simple moving average of series
// over window consecutive prices, one value per window position starting at
// index 0. Each value is rounded with Round2.
//
// A series shorter than window has no full window and yields an empty,
// non-nil slice. A window below 1 fails with ErrInvalidWindowSize.
func ComputeMovingAverage(window int, series []float64) ([]float64, error) {
	if window <= 0 {
		return nil, ErrInvalidWindowSize
	}
	if len(series) < window {
		return []float64{}, nil
	}

	out := make([]float64, 0, len(series)-window+1)
	for start := 0; start+window <= len(series); start++ {
		var sum float64
		for _, v := range series[start : start+window] {
			sum += v
		}
		out = append(out, Round2(sum/float64(window)))
	}
	return out, nil
}
