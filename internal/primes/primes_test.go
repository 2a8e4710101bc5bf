package primes

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestIsPrime_SmallValues(t *testing.T) {
	for _, n := range []int{-5, 0, 1} {
		if IsPrime(n) { t.Fatalf("IsPrime(%d) should be false", n) }
	}
	cases := map[int]bool{2: true, 3: true, 4: false, 7: true, 9: false, 25: false, 97: true, 7919: true, 7921: false}
	for n, want := range cases {
		if got := IsPrime(n); got != want { t.Fatalf("IsPrime(%d)=%v want %v", n, got, want) }
	}
}

func TestCount_KnownBounds(t *testing.T) {
	cases := []struct{ limit, want int }{
		{-3, 0}, {0, 0}, {1, 0}, {2, 1}, {10, 4}, {100, 25}, {1000, 168}, {100_000, 9592},
	}
	for _, c := range cases {
		if got := Count(c.limit); got != c.want { t.Fatalf("Count(%d)=%d want %d", c.limit, got, c.want) }
	}
}

func TestCount_Idempotent(t *testing.T) {
	a := Count(5000)
	b := Count(5000)
	if a != b { t.Fatalf("first=%d second=%d", a, b) }
}

func TestCountRange(t *testing.T) {
	if got := CountRange(-10, 10); got != 4 { t.Fatalf("got %d", got) }
	if got := CountRange(11, 20); got != 4 { t.Fatalf("got %d", got) }
	if got := CountRange(20, 11); got != 0 { t.Fatalf("reversed got %d", got) }
	if got := CountRange(2, 1000); got != Count(1000) { t.Fatalf("mismatch with Count: %d", got) }
}

func TestCountParallel_MatchesSequential(t *testing.T) {
	ctx := context.Background()
	for _, limit := range []int{0, 1, 2, 10, chunkSize - 1, chunkSize, chunkSize + 1, 3*chunkSize + 17} {
		for _, workers := range []int{0, 1, 3, 8} {
			got, err := CountParallel(ctx, limit, workers)
			if err != nil { t.Fatalf("limit=%d workers=%d err=%v", limit, workers, err) }
			if want := Count(limit); got != want { t.Fatalf("limit=%d workers=%d got=%d want=%d", limit, workers, got, want) }
		}
	}
}

func TestCountParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CountParallel(ctx, 1_000_000, 2)
	if !errors.Is(err, context.Canceled) { t.Fatalf("err=%v", err) }
}

func TestMeasure_BenchLine(t *testing.T) {
	r := Measure("count-1k", 1000)
	if r.Count != 168 || r.Limit != 1000 { t.Fatalf("bad result: %+v", r) }
	line := r.BenchLine()
	if !strings.HasPrefix(line, "BENCH:primes:count-1k:168:") { t.Fatalf("line=%q", line) }
}

func BenchmarkCount1M(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Count(1_000_000)
	}
}
