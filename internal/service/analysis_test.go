package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/quotepulse/internal/analysis"
)

type stubSource struct {
	mu     sync.Mutex
	series map[string][]float64
	errs   map[string]error
	calls  []string

	inFlight int32
	peak     int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) ClosingPrices(_ context.Context, ticker string, _, _ time.Time) ([]float64, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	s.calls = append(s.calls, ticker)
	s.mu.Unlock()
	if err := s.errs[ticker]; err != nil {
		return nil, err
	}
	return s.series[ticker], nil
}

var (
	from = time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)
	to   = time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)
)

func TestAnalysisService_Analyze_TableDriven(t *testing.T) {
	boom := errors.New("boom")
	src := &stubSource{
		series: map[string][]float64{
			"MSFT": {10, 11, 12, 13},
			"ZERO": {0, 5},
			"NONE": {},
		},
		errs: map[string]error{"DOWN": boom},
	}
	svc := NewAnalysisService(src, 2)

	cases := []struct {
		name    string
		ticker  string
		window  int
		wantErr error
	}{
		{name: "ok", ticker: "MSFT", window: 2},
		{name: "short series is not an error", ticker: "MSFT", window: 30},
		{name: "retrieval failure wrapped", ticker: "DOWN", window: 2, wantErr: boom},
		{name: "empty series", ticker: "NONE", window: 2, wantErr: analysis.ErrEmptySeries},
		{name: "zero first price", ticker: "ZERO", window: 1, wantErr: analysis.ErrDivisionByZero},
		{name: "bad window", ticker: "MSFT", window: 0, wantErr: analysis.ErrInvalidWindowSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := svc.Analyze(context.Background(), tc.ticker, from, to, tc.window)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) || rep != nil {
					t.Fatalf("want %v, got rep=%+v err=%v", tc.wantErr, rep, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if rep.Ticker != tc.ticker || rep.Analysis.Observations != 4 {
				t.Fatalf("unexpected report %+v", rep)
			}
			if !rep.PeriodStart.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("period start not truncated: %v", rep.PeriodStart)
			}
			if rep.Analysis.Change.Percent != 30 {
				t.Fatalf("unexpected change %+v", rep.Analysis.Change)
			}
		})
	}
}

func TestAnalysisService_Analyze_InvalidRange(t *testing.T) {
	svc := NewAnalysisService(&stubSource{}, 1)
	if _, err := svc.Analyze(context.Background(), "MSFT", to, from, 2); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestAnalysisService_AnalyzeAll_IsolatesFailuresAndKeepsOrder(t *testing.T) {
	src := &stubSource{
		series: map[string][]float64{
			"MSFT": {1, 2, 3},
			"GOOG": {4, 5, 6},
			"AAPL": {7, 8, 9},
		},
		errs: map[string]error{"UBER": errors.New("network down")},
	}
	svc := NewAnalysisService(src, 2)

	tickers := []string{"MSFT", "UBER", "GOOG", "IBM", "AAPL"}
	got := svc.AnalyzeAll(context.Background(), tickers, from, to, 2)

	if len(got) != len(tickers) {
		t.Fatalf("want %d results, got %d", len(tickers), len(got))
	}
	for i, r := range got {
		if r.Ticker != tickers[i] {
			t.Fatalf("result %d: want %s got %s", i, tickers[i], r.Ticker)
		}
		failed := r.Ticker == "UBER" || r.Ticker == "IBM"
		if failed != (r.Err != nil) || failed != (r.Report == nil) {
			t.Fatalf("%s: unexpected result %+v", r.Ticker, r)
		}
	}
	if !errors.Is(got[3].Err, analysis.ErrEmptySeries) {
		t.Fatalf("IBM: want ErrEmptySeries, got %v", got[3].Err)
	}
	if len(src.calls) != len(tickers) {
		t.Fatalf("every ticker must be fetched, got %v", src.calls)
	}
	if peak := atomic.LoadInt32(&src.peak); peak > 2 {
		t.Fatalf("parallel limit exceeded: %d", peak)
	}
}
