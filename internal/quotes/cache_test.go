package quotes

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingSource struct {
	closes []float64
	err    error
	calls  int
}

func (c *countingSource) Name() string { return "fake" }

func (c *countingSource) ClosingPrices(_ context.Context, _ string, _, _ time.Time) ([]float64, error) {
	c.calls++
	return c.closes, c.err
}

func setupCache(t *testing.T, inner Source) (*CachedSource, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return NewCachedSource(inner, rdb, time.Minute), mr
}

var (
	cacheFrom = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	cacheTo   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
)

func TestCachedSource_MissThenHit(t *testing.T) {
	inner := &countingSource{closes: []float64{1.5, 2.25, 3}}
	c, mr := setupCache(t, inner)

	for i := 0; i < 3; i++ {
		got, err := c.ClosingPrices(context.Background(), "AAPL", cacheFrom, cacheTo)
		if err != nil {
			t.Fatalf("call %d: unexpected err: %v", i, err)
		}
		if !reflect.DeepEqual(got, inner.closes) {
			t.Fatalf("call %d: want %v got %v", i, inner.closes, got)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}

	key := "quotepulse:closes:AAPL:2024-01-02:2024-01-31"
	if !mr.Exists(key) {
		t.Fatalf("expected key %q to be cached", key)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := c.ClosingPrices(context.Background(), "AAPL", cacheFrom, cacheTo); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", inner.calls)
	}
}

func TestCachedSource_EmptyAndErrorsNotCached(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		inner := &countingSource{closes: []float64{}}
		c, mr := setupCache(t, inner)
		for i := 0; i < 2; i++ {
			if _, err := c.ClosingPrices(context.Background(), "UBER", cacheFrom, cacheTo); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		}
		if inner.calls != 2 || len(mr.Keys()) != 0 {
			t.Fatalf("empty series must not be cached: calls=%d keys=%v", inner.calls, mr.Keys())
		}
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		inner := &countingSource{err: boom}
		c, mr := setupCache(t, inner)
		if _, err := c.ClosingPrices(context.Background(), "UBER", cacheFrom, cacheTo); !errors.Is(err, boom) {
			t.Fatalf("want boom, got %v", err)
		}
		if len(mr.Keys()) != 0 {
			t.Fatalf("errors must not be cached: %v", mr.Keys())
		}
	})
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	inner := &countingSource{closes: []float64{10, 11}}
	c, mr := setupCache(t, inner)
	mr.Close()

	got, err := c.ClosingPrices(context.Background(), "IBM", cacheFrom, cacheTo)
	if err != nil {
		t.Fatalf("redis failure must be bypassed, got %v", err)
	}
	if !reflect.DeepEqual(got, inner.closes) {
		t.Fatalf("want %v got %v", inner.closes, got)
	}
}

func TestCachedSource_CorruptEntry(t *testing.T) {
	inner := &countingSource{closes: []float64{7}}
	c, mr := setupCache(t, inner)
	if err := mr.Set("quotepulse:closes:IBM:2024-01-02:2024-01-31", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := c.ClosingPrices(context.Background(), "IBM", cacheFrom, cacheTo)
	if err != nil || !reflect.DeepEqual(got, []float64{7}) {
		t.Fatalf("want [7], got %v err=%v", got, err)
	}
	if c.Name() != "fake+redis" {
		t.Fatalf("unexpected name %q", c.Name())
	}
}
