package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/guttosm/quotepulse/internal/storage"
)

// expectedHeaders is the column layout of a Yahoo Finance "Download" history export.
var expectedHeaders = []string{
	"Date",
	"Open",
	"High",
	"Low",
	"Close",
	"Adj Close",
	"Volume",
}

// errNullRow marks a session Yahoo exported without prices.
var errNullRow = errors.New("null row")

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on a header mismatch, malformed cells, or I/O errors.
// Rows Yahoo writes as "null" are skipped and not counted.
func parseAndPersistFile(ctx context.Context, path, ticker string, repo storage.QuotesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if h != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]models.Quote, 0, batch)
	lineNumber := 1

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertQuotesBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		q, err := recordToQuote(ticker, rec)
		if errors.Is(err, errNullRow) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		buf = append(buf, q)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToQuote converts one validated record into a models.Quote.
//
//	0 Date       → TradeDate ("2006-01-02")
//	1 Open       → Open
//	2 High       → High
//	3 Low        → Low
//	4 Close      → Close
//	5 Adj Close  → AdjClose
//	6 Volume     → Volume (integer; "1.2e+07" style accepted)
func recordToQuote(ticker string, rec []string) (models.Quote, error) {
	q := models.Quote{Ticker: ticker}

	for _, cell := range rec[1:] {
		if strings.EqualFold(strings.TrimSpace(cell), "null") {
			return q, errNullRow
		}
	}

	d, err := time.Parse(time.DateOnly, strings.TrimSpace(rec[0]))
	if err != nil {
		return q, fmt.Errorf("invalid Date: %v", err)
	}
	q.TradeDate = d

	prices := []*float64{&q.Open, &q.High, &q.Low, &q.Close, &q.AdjClose}
	for i, dst := range prices {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return q, fmt.Errorf("invalid %s: %v", expectedHeaders[i+1], err)
		}
		*dst = v
	}

	vol := strings.TrimSpace(rec[6])
	if n, err := strconv.ParseInt(vol, 10, 64); err == nil {
		q.Volume = n
	} else if f, ferr := strconv.ParseFloat(vol, 64); ferr == nil {
		q.Volume = int64(f)
	} else {
		return q, fmt.Errorf("invalid Volume: %v", err)
	}

	return q, nil
}
