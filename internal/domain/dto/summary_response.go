package dto

import (
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// SummaryResponse represents the JSON structure returned by the
// GET /api/v1/summary endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// The full moving-average series is included; SMA is its last value.
type SummaryResponse struct {
	Ticker         string    `json:"ticker" example:"MSFT"`
	PeriodStart    string    `json:"period_start" example:"2024-01-02"`
	PeriodEnd      string    `json:"period_end" example:"2024-03-28"`
	LastPrice      float64   `json:"last_price" example:"420.72"`
	ChangePercent  float64   `json:"change_percent" example:"12.04"`
	ChangeAbsolute float64   `json:"change_absolute" example:"45.21"`
	Min            float64   `json:"min" example:"367.75"`
	Max            float64   `json:"max" example:"425.22"`
	Avg            float64   `json:"avg" example:"402.18"`
	Window         int       `json:"window" example:"30"`
	SMA            *float64  `json:"sma,omitempty" example:"411.09"`
	MovingAverage  []float64 `json:"moving_average"`
	Observations   int       `json:"observations" example:"61"`
}

// BatchItem is one ticker's outcome inside a BatchResponse. Exactly one of
// Summary and Error is set.
type BatchItem struct {
	Ticker  string           `json:"ticker" example:"UBER"`
	Summary *SummaryResponse `json:"summary,omitempty"`
	Error   string           `json:"error,omitempty" example:"price series is empty"`
}

// BatchResponse is returned by GET /api/v1/summaries, one item per ticker
// in request order.
type BatchResponse struct {
	Items []BatchItem `json:"items"`
}

// NewSummaryResponse maps a domain report to its API shape.
func NewSummaryResponse(r *models.Report) SummaryResponse {
	a := r.Analysis
	resp := SummaryResponse{
		Ticker:         r.Ticker,
		PeriodStart:    r.PeriodStart.Format(time.DateOnly),
		PeriodEnd:      r.PeriodEnd.Format(time.DateOnly),
		LastPrice:      a.LastPrice,
		ChangePercent:  a.Change.Percent,
		ChangeAbsolute: a.Change.Absolute,
		Min:            a.Summary.Min,
		Max:            a.Summary.Max,
		Avg:            a.Summary.Avg,
		Window:         a.Window,
		MovingAverage:  a.MovingAverage,
		Observations:   a.Observations,
	}
	if a.SMAValid {
		sma := a.SMA
		resp.SMA = &sma
	}
	if resp.MovingAverage == nil {
		resp.MovingAverage = []float64{}
	}
	return resp
}
