package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/quotepulse/internal/analysis"
	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/quotes"
)

// ErrInvalidRange is returned when the period end precedes its start.
var ErrInvalidRange = errors.New("period end is before period start")

// Result is the outcome of analysing one ticker. Exactly one of Report and
// Err is set.
type Result struct {
	Ticker string
	Report *models.Report
	Err    error
}

// AnalysisService fetches closing prices and runs the analysis reductions.
type AnalysisService interface {
	Analyze(ctx context.Context, ticker string, from, to time.Time, window int) (*models.Report, error)
	AnalyzeAll(ctx context.Context, tickers []string, from, to time.Time, window int) []Result
}

type analysisService struct {
	source   quotes.Source
	parallel int
}

// NewAnalysisService wires a quote source. parallel bounds AnalyzeAll; values
// below 1 fall back to NumCPU.
func NewAnalysisService(source quotes.Source, parallel int) AnalysisService {
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}
	return &analysisService{source: source, parallel: parallel}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Analyze returns the report for ticker over [from, to]. Retrieval errors are
// wrapped; analysis sentinel errors pass through unchanged.
func (s *analysisService) Analyze(ctx context.Context, ticker string, from, to time.Time, window int) (*models.Report, error) {
	from, to = dateOnly(from), dateOnly(to)
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	closes, err := s.source.ClosingPrices(ctx, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", ticker, s.source.Name(), err)
	}

	a, err := analysis.Analyze(closes, window)
	if err != nil {
		return nil, err
	}

	logger.Ticker(ticker).Debug().
		Int("observations", a.Observations).
		Float64("change_pct", a.Change.Percent).
		Msg("analysis done")

	return &models.Report{
		Ticker:      ticker,
		PeriodStart: from,
		PeriodEnd:   to,
		Analysis:    a,
	}, nil
}

// AnalyzeAll runs Analyze for every ticker concurrently. Results keep the
// input order and a failing ticker never cancels the others.
func (s *analysisService) AnalyzeAll(ctx context.Context, tickers []string, from, to time.Time, window int) []Result {
	results := make([]Result, len(tickers))

	var g errgroup.Group
	g.SetLimit(s.parallel)

	for i, ticker := range tickers {
		g.Go(func() error {
			rep, err := s.Analyze(ctx, ticker, from, to, window)
			if err != nil {
				logger.Ticker(ticker).Error().Err(err).Msg("analysis failed")
			}
			results[i] = Result{Ticker: ticker, Report: rep, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
