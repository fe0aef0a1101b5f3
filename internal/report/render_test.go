package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/service"
)

var periodStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func sampleResults() []service.Result {
	return []service.Result{
		{Ticker: "MSFT", Report: &models.Report{
			Ticker: "MSFT",
			Analysis: models.Analysis{
				Summary:   models.Summary{Min: 366.5, Max: 425.22, Avg: 398.1},
				Change:    models.Change{Percent: 14.7, Absolute: 54.1},
				SMA:       410.456,
				SMAValid:  true,
				LastPrice: 420.559,
			},
		}},
		{Ticker: "UBER", Err: errors.New("fetch UBER: timeout")},
		{Ticker: "IBM", Report: &models.Report{
			Ticker: "IBM",
			Analysis: models.Analysis{
				Summary:   models.Summary{Min: 160, Max: 170, Avg: 165},
				Change:    models.Change{Percent: -2.5, Absolute: -4.2},
				LastPrice: 163.2,
			},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"csv": FormatCSV, "JSON": FormatJSON, "yaml": FormatYAML, " yml ": FormatYAML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("%q: want %s got %s err=%v", in, want, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestRender_CSV(t *testing.T) {
	rows := "2024-01-02,MSFT,$420.56,14.70%,$366.50,$425.22,$410.46\n" +
		"2024-01-02,IBM,$163.20,-2.50%,$160.00,$170.00,\n"

	cases := []struct {
		name   string
		window int
		header string
	}{
		{name: "default window", window: 30, header: "period start,symbol,price,change %,min,max,30d avg\n"},
		{name: "custom window", window: 5, header: "period start,symbol,price,change %,min,max,5d avg\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, FormatCSV, periodStart, tc.window, sampleResults()); err != nil {
				t.Fatalf("render: %v", err)
			}
			if want := tc.header + rows; buf.String() != want {
				t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
			}
		})
	}
}

func TestRender_JSONAndYAML(t *testing.T) {
	old := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = old })

	cases := []struct {
		format    Format
		unmarshal func([]byte, any) error
	}{
		{format: FormatJSON, unmarshal: json.Unmarshal},
		{format: FormatYAML, unmarshal: yaml.Unmarshal},
	}

	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tc.format, periodStart, 30, sampleResults()); err != nil {
				t.Fatalf("render: %v", err)
			}
			var doc Document
			if err := tc.unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatalf("decode: %v\n%s", err, buf.String())
			}
			if doc.PeriodStart != "2024-01-02" || doc.Window != 30 || len(doc.Reports) != 2 || len(doc.Failures) != 1 {
				t.Fatalf("unexpected doc: %+v", doc)
			}
			if doc.Failures[0].Ticker != "UBER" || !strings.Contains(doc.Failures[0].Error, "timeout") {
				t.Fatalf("unexpected failure: %+v", doc.Failures[0])
			}
			if doc.Reports[1].Analysis.Change.Percent != -2.5 {
				t.Fatalf("unexpected report: %+v", doc.Reports[1])
			}
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, Format("xml"), periodStart, 30, nil); err == nil {
		t.Fatalf("expected error")
	}
}
