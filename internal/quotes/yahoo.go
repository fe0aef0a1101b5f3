package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/guttosm/quotepulse/internal/logger"
)

// ErrUnknownSymbol is returned when Yahoo reports no data for a ticker.
var ErrUnknownSymbol = errors.New("yahoo: unknown symbol or no data")

// YahooSource implements Source using the Yahoo Finance v8 chart API.
// Adjusted closes are preferred; raw closes are used when Yahoo omits them.
type YahooSource struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooSource creates a Yahoo Finance source. proxyURL is optional.
func NewYahooSource(baseURL string, timeout time.Duration, proxyURL string) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err == nil && u.Scheme != "" && u.Host != "" {
			transport.Proxy = http.ProxyURL(u)
		} else {
			logger.L().Warn().Str("proxy", proxyURL).Err(err).Msg("invalid proxy url ignored, connecting directly")
		}
	}
	return &YahooSource{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: baseURL,
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

// chartResponse is the subset of the chart API payload we read.
// Values are pointers because Yahoo sends null for sessions without a print.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type point struct {
	ts    int64
	close float64
}

// ClosingPrices fetches daily bars for ticker over [from, to] and returns
// their closes sorted by timestamp, skipping null sessions.
func (s *YahooSource) ClosingPrices(ctx context.Context, ticker string, from, to time.Time) ([]float64, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(from.Unix()))
	// period2 is exclusive; move it past the end date so that session is included.
	q.Set("period2", fmt.Sprint(to.AddDate(0, 0, 1).Unix()))
	q.Set("interval", "1d")
	q.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", s.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, ticker)
	}

	result := chart.Chart.Result[0]
	var closes []*float64
	if adj := result.Indicators.AdjClose; len(adj) > 0 && len(adj[0].AdjClose) == len(result.Timestamp) {
		closes = adj[0].AdjClose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	points := make([]point, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // no print that session
		}
		points = append(points, point{ts: ts, close: *closes[i]})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].ts < points[j].ts })

	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.close
	}
	return out, nil
}
