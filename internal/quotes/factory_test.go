package quotes

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/quotepulse/config"
)

func TestNewSource_TableDriven(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	cases := []struct {
		name     string
		source   string
		withDB   bool
		withRdb  bool
		wantName string
		wantErr  bool
	}{
		{name: "yahoo", source: config.SourceYahoo, wantName: "yahoo"},
		{name: "yahoo cached", source: config.SourceYahoo, withRdb: true, wantName: "yahoo+redis"},
		{name: "postgres", source: config.SourcePostgres, withDB: true, wantName: "postgres"},
		{name: "postgres without db", source: config.SourcePostgres, wantErr: true},
		{name: "unknown", source: "bloomberg", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Config{
				Quotes: config.QuotesConfig{Source: tc.source, YahooBaseURL: "http://x", YahooTimeout: time.Second},
				Redis:  config.RedisConfig{TTL: time.Minute},
			}
			var (
				src Source
				err error
			)
			switch {
			case tc.withDB:
				src, err = NewSource(cfg, db, nil)
			case tc.withRdb:
				src, err = NewSource(cfg, nil, rdb)
			default:
				src, err = NewSource(cfg, nil, nil)
			}
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if src.Name() != tc.wantName {
				t.Fatalf("want %q got %q", tc.wantName, src.Name())
			}
		})
	}
}

type fakeRepo struct {
	start, end *time.Time
	closes     []float64
}

func (f *fakeRepo) GetClosingPrices(_ context.Context, _ string, s, e *time.Time) ([]float64, error) {
	f.start, f.end = s, e
	return f.closes, nil
}

func TestStoreSource_PassesBounds(t *testing.T) {
	repo := &fakeRepo{closes: []float64{1, 2}}
	src := NewStoreSource(repo)

	from := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	got, err := src.ClosingPrices(context.Background(), "GOOG", from, to)
	if err != nil || !reflect.DeepEqual(got, repo.closes) {
		t.Fatalf("got %v err=%v", got, err)
	}
	if repo.start == nil || !repo.start.Equal(from) || repo.end == nil || !repo.end.Equal(to) {
		t.Fatalf("bounds not forwarded: %v %v", repo.start, repo.end)
	}
}
