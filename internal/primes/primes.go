package primes

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// IsPrime reports whether n is prime using trial division by odd candidates
// up to floor(sqrt(n)).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	limit := int(math.Sqrt(float64(n)))
	for i := 3; i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Count returns the number of primes in [2, limit]. Returns 0 for limit < 2.
func Count(limit int) int {
	count := 0
	for number := 2; number <= limit; number++ {
		if IsPrime(number) {
			count++
		}
	}
	return count
}

// CountRange returns the number of primes in [lo, hi].
func CountRange(lo, hi int) int {
	if lo < 2 {
		lo = 2
	}
	count := 0
	for number := lo; number <= hi; number++ {
		if IsPrime(number) {
			count++
		}
	}
	return count
}

// chunkSize bounds the work of a single goroutine so cancellation is noticed
// within a few milliseconds even for large limits.
const chunkSize = 50_000

// CountParallel counts primes in [2, limit] over contiguous chunks with at
// most workers goroutines running at once. The result equals Count(limit).
func CountParallel(ctx context.Context, limit, workers int) (int, error) {
	if limit < 2 {
		return 0, ctx.Err()
	}
	if workers < 1 {
		workers = 1
	}
	nchunks := (limit-2)/chunkSize + 1
	counts := make([]int, nchunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < nchunks; i++ {
		i := i
		lo := 2 + i*chunkSize
		hi := lo + chunkSize - 1
		if hi > limit {
			hi = limit
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			counts[i] = CountRange(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("count primes to %d: %w", limit, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("count primes to %d: %w", limit, err)
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// Result is one timed run of Count.
type Result struct {
	Name    string
	Limit   int
	Count   int
	Elapsed time.Duration
}

// Measure runs Count(limit) and records how long it took.
func Measure(name string, limit int) Result {
	start := time.Now()
	n := Count(limit)
	return Result{Name: name, Limit: limit, Count: n, Elapsed: time.Since(start)}
}

// BenchLine renders the result as BENCH:primes:<name>:<count>:<ms>.
func (r Result) BenchLine() string {
	return fmt.Sprintf("BENCH:primes:%s:%d:%d", r.Name, r.Count, r.Elapsed.Milliseconds())
}
