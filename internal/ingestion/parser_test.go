package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

type fakeRepo struct {
	batches [][]models.Quote
	err     error
}

func (f *fakeRepo) InsertQuotesBatch(quotes []models.Quote) error {
	f.batches = append(f.batches, append([]models.Quote(nil), quotes...))
	return f.err
}
func (f *fakeRepo) GetClosingPrices(context.Context, string, *time.Time, *time.Time) ([]float64, error) {
	return nil, nil
}
func (f *fakeRepo) HasIngestionForTicker(string) (bool, error)   { return false, nil }
func (f *fakeRepo) UpsertIngestionLog(string, string, int) error { return nil }
func (f *fakeRepo) DeleteQuotesByTicker(string) error            { return nil }

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

const validHeader = "Date,Open,High,Low,Close,Adj Close,Volume\n"

func TestParseAndPersistFile_TableDriven(t *testing.T) {
	dir := t.TempDir()
	validRow := "2024-01-02,373.86,375.90,366.77,370.87,368.29,25258600\n"

	cases := []struct {
		name        string
		content     string
		batch       int
		wantErr     bool
		wantBatches int
		wantRows    int
	}{
		{name: "ok single row", content: validHeader + validRow, batch: 5, wantBatches: 1, wantRows: 1},
		{name: "bom header", content: "\ufeff" + validHeader + validRow, batch: 5, wantBatches: 1, wantRows: 1},
		{name: "null row skipped", content: validHeader + validRow + "2024-01-03,null,null,null,null,null,null\n", batch: 5, wantBatches: 1, wantRows: 1},
		{name: "batches split", content: validHeader + validRow + validRow + validRow, batch: 2, wantBatches: 2, wantRows: 3},
		{name: "header only", content: validHeader, batch: 5, wantBatches: 0, wantRows: 0},
		{name: "bad header order", content: "Date,Close,Open,High,Low,Adj Close,Volume\n", batch: 5, wantErr: true},
		{name: "bad header length", content: "Date,Close\n", batch: 5, wantErr: true},
		{name: "bad col count", content: validHeader + "2024-01-02,1\n", batch: 5, wantErr: true},
		{name: "invalid date", content: validHeader + "02/01/2024,1,1,1,1,1,1\n", batch: 5, wantErr: true},
		{name: "invalid price", content: validHeader + "2024-01-02,abc,1,1,1,1,1\n", batch: 5, wantErr: true},
		{name: "invalid volume", content: validHeader + "2024-01-02,1,1,1,1,1,lots\n", batch: 5, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, dir, "MSFT.csv", tc.content)
			repo := &fakeRepo{}
			n, err := parseAndPersistFile(context.Background(), path, "MSFT", repo, tc.batch)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if n != tc.wantRows {
				t.Fatalf("rows: want %d got %d", tc.wantRows, n)
			}
			if len(repo.batches) != tc.wantBatches {
				t.Fatalf("batches: want %d got %d", tc.wantBatches, len(repo.batches))
			}
		})
	}
}

func TestRecordToQuote_Fields(t *testing.T) {
	q, err := recordToQuote("AAPL", []string{"2024-01-02", "187.15", "188.44", "183.89", "185.64", "184.94", "8.24887e+07"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := models.Quote{
		Ticker:    "AAPL",
		TradeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Open:      187.15,
		High:      188.44,
		Low:       183.89,
		Close:     185.64,
		AdjClose:  184.94,
		Volume:    82488700,
	}
	if q != want {
		t.Fatalf("want %+v got %+v", want, q)
	}
}

func TestParseAndPersistFile_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	rows := ""
	for i := 0; i < 1000; i++ {
		rows += "2024-01-02,1,1,1,1,1,100\n"
	}
	path := writeTempFile(t, dir, "IBM.csv", validHeader+rows)

	repo := &fakeRepo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := parseAndPersistFile(ctx, path, "IBM", repo, 100); err == nil {
		t.Fatalf("expected context canceled error")
	}
}
