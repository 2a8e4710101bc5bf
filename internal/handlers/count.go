package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/example/primecount/internal/cache"
	"github.com/example/primecount/internal/primes"
	"github.com/example/primecount/internal/store"
	"github.com/example/primecount/internal/types"
	"github.com/example/primecount/pkg/jsonutil"
)

const (
	maxLimitsPerRequest = 100

	SourceStore   = "store"
	SourceCompute = "compute"
)

// CounterFunc counts primes in [2, limit].
type CounterFunc func(ctx context.Context, limit, workers int) (int, error)

// CountDeps bundles dependencies needed by the handler. Store may be nil.
type CountDeps struct {
	Cache          *cache.Cache
	Store          store.ResultStore
	Counter        CounterFunc
	Timeout        time.Duration
	MaxConcurrency int
	MaxLimit       int
	Workers        int
}

type CountHandler struct{ Deps CountDeps }

func NewCountHandler(deps CountDeps) *CountHandler {
	if deps.Counter == nil {
		deps.Counter = primes.CountParallel
	}
	if deps.MaxConcurrency < 1 {
		deps.MaxConcurrency = 1
	}
	return &CountHandler{Deps: deps}
}

func dedupe(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, n := range in {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (h *CountHandler) validate(limit int) error {
	if limit < 0 {
		return errors.New("limit must be non-negative")
	}
	if h.Deps.MaxLimit > 0 && limit > h.Deps.MaxLimit {
		return fmt.Errorf("limit exceeds %d", h.Deps.MaxLimit)
	}
	return nil
}

// compute is the cache-miss path: persisted record first, then a fresh count.
// Store failures are logged and never fail the request.
func (h *CountHandler) compute(limit int) cache.ComputeFunc {
	return func(ctx context.Context) (cache.Value, string, error) {
		if h.Deps.Store != nil {
			rec, found, err := h.Deps.Store.Get(ctx, limit)
			switch {
			case err != nil:
				log.Printf("event=store_get_error limit=%d err=%v", limit, err)
			case found:
				return cache.Value{
					Count:      rec.Count,
					Elapsed:    time.Duration(rec.ElapsedMS) * time.Millisecond,
					ComputedAt: rec.ComputedAt,
				}, SourceStore, nil
			}
		}
		start := time.Now()
		n, err := h.Deps.Counter(ctx, limit, h.Deps.Workers)
		if err != nil {
			return cache.Value{}, "", err
		}
		v := cache.Value{Count: n, Elapsed: time.Since(start), ComputedAt: time.Now().UTC()}
		log.Printf("event=compute limit=%d count=%d dur_ms=%d", limit, n, v.Elapsed.Milliseconds())
		if h.Deps.Store != nil {
			rec := store.Record{Limit: limit, Count: n, ElapsedMS: v.Elapsed.Milliseconds(), ComputedAt: v.ComputedAt}
			if err := h.Deps.Store.Save(ctx, rec); err != nil {
				log.Printf("event=store_save_error limit=%d err=%v", limit, err)
			}
		}
		return v, SourceCompute, nil
	}
}

func (h *CountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req types.CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "bad request")
		return
	}
	if len(req.Limits) == 0 {
		jsonutil.Error(w, http.StatusBadRequest, "limits required")
		return
	}
	if len(req.Limits) > maxLimitsPerRequest {
		jsonutil.Error(w, http.StatusBadRequest, "too many limits")
		return
	}

	limits := dedupe(req.Limits)
	resp := types.CountResponse{Counts: make([]types.CountEntry, 0, len(limits)), Errors: []types.ErrorEntry{}}

	valid := make([]int, 0, len(limits))
	for _, n := range limits {
		if err := h.validate(n); err != nil {
			resp.Errors = append(resp.Errors, types.ErrorEntry{Limit: n, Error: err.Error()})
			continue
		}
		valid = append(valid, n)
	}

	sem := make(chan struct{}, h.Deps.MaxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, limit := range valid {
		limit := limit
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; wg.Done() }()
			ctx := r.Context()
			if h.Deps.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, h.Deps.Timeout)
				defer cancel()
			}
			val, source, err := h.Deps.Cache.GetOrCompute(ctx, limit, h.compute(limit))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				resp.Errors = append(resp.Errors, types.ErrorEntry{Limit: limit, Error: err.Error()})
				return
			}
			resp.Counts = append(resp.Counts, types.NewCountEntry(limit, val.Count, source, val.Elapsed, val.ComputedAt))
			log.Printf("event=count limit=%d source=%s", limit, source)
		}()
	}
	wg.Wait()

	sort.Slice(resp.Counts, func(i, j int) bool { return resp.Counts[i].Limit < resp.Counts[j].Limit })
	sort.Slice(resp.Errors, func(i, j int) bool { return resp.Errors[i].Limit < resp.Errors[j].Limit })

	jsonutil.JSON(w, http.StatusOK, resp)
}
