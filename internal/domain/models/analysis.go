package models

import "time"

// Summary holds the minimum, maximum and mean closing price of a series,
// each rounded to two decimal places.
type Summary struct {
	Min float64 `json:"min" yaml:"min" example:"98.12"`
	Max float64 `json:"max" yaml:"max" example:"104.90"`
	Avg float64 `json:"avg" yaml:"avg" example:"101.35"`
}

// Change is the move between the first and the last closing price of a
// series. Percent is relative to the first price.
type Change struct {
	Percent  float64 `json:"percent" yaml:"percent" example:"3.25"`
	Absolute float64 `json:"absolute" yaml:"absolute" example:"3.21"`
}

// Analysis bundles every reduction computed over one price series.
//
// Fields:
//   - Summary: min/max/avg of the series.
//   - Change: first-to-last percent and absolute change.
//   - MovingAverage: trailing SMA, one value per full window.
//   - Window: SMA window size used.
//   - SMA: most recent SMA value; only meaningful when SMAValid is true.
//   - LastPrice: last closing price, unrounded.
//   - Observations: number of prices in the series.
type Analysis struct {
	Summary       Summary   `json:"summary" yaml:"summary"`
	Change        Change    `json:"change" yaml:"change"`
	MovingAverage []float64 `json:"moving_average" yaml:"moving_average"`
	Window        int       `json:"window" yaml:"window"`
	SMA           float64   `json:"sma" yaml:"sma"`
	SMAValid      bool      `json:"sma_valid" yaml:"sma_valid"`
	LastPrice     float64   `json:"last_price" yaml:"last_price"`
	Observations  int       `json:"observations" yaml:"observations"`
}

// Report is the per-instrument record handed to the output layers.
//
// swagger:model Report
type Report struct {
	Ticker      string    `json:"ticker" yaml:"ticker" example:"MSFT"`
	PeriodStart time.Time `json:"period_start" yaml:"period_start"`
	PeriodEnd   time.Time `json:"period_end" yaml:"period_end"`
	Analysis    Analysis  `json:"analysis" yaml:"analysis"`
}
