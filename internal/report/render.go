package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/service"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (csv|json|yaml)", s)
	}
}

// CSVHeader is the first line of csv output. The last column names the
// moving average window, e.g. "30d avg".
func CSVHeader(window int) []string {
	return []string{"period start", "symbol", "price", "change %", "min", "max", fmt.Sprintf("%dd avg", window)}
}

// Failure records a ticker that produced no report.
type Failure struct {
	Ticker string `json:"ticker" yaml:"ticker"`
	Error  string `json:"error" yaml:"error"`
}

// Document is the json/yaml envelope.
type Document struct {
	PeriodStart string           `json:"period_start" yaml:"period_start"`
	Window      int              `json:"window" yaml:"window"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Reports     []*models.Report `json:"reports" yaml:"reports"`
	Failures    []Failure        `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Render writes results in the given format. window is the moving average
// window the results were computed with. Failed results are left out of
// csv output and listed under failures for json and yaml.
func Render(w io.Writer, format Format, periodStart time.Time, window int, results []service.Result) error {
	switch format {
	case FormatCSV:
		return renderCSV(w, periodStart, window, results)
	case FormatJSON, FormatYAML:
		doc := newDocument(periodStart, window, results)
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func newDocument(periodStart time.Time, window int, results []service.Result) Document {
	doc := Document{
		PeriodStart: periodStart.Format(time.DateOnly),
		Window:      window,
		GeneratedAt: nowFunc().UTC(),
		Reports:     make([]*models.Report, 0, len(results)),
	}
	for _, r := range results {
		if r.Err != nil {
			doc.Failures = append(doc.Failures, Failure{Ticker: r.Ticker, Error: r.Err.Error()})
			continue
		}
		doc.Reports = append(doc.Reports, r.Report)
	}
	return doc
}

var nowFunc = time.Now

func renderCSV(w io.Writer, periodStart time.Time, window int, results []service.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(window)); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := cw.Write(Row(periodStart, r.Report)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row formats one report as a csv record. The SMA cell is empty when the
// series was shorter than the window.
func Row(periodStart time.Time, r *models.Report) []string {
	a := r.Analysis
	sma := ""
	if a.SMAValid {
		sma = dollars(a.SMA)
	}
	return []string{
		periodStart.Format(time.DateOnly),
		r.Ticker,
		dollars(a.LastPrice),
		fixed2(a.Change.Percent) + "%",
		dollars(a.Summary.Min),
		dollars(a.Summary.Max),
		sma,
	}
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func dollars(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
