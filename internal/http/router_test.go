package apihttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/primecount/internal/cache"
	"github.com/example/primecount/internal/handlers"
	apihttp "github.com/example/primecount/internal/http"
	"github.com/example/primecount/internal/rate"
	"github.com/example/primecount/internal/store"
	"github.com/example/primecount/internal/types"
)

type fakeStorePing struct{ pingErr error }

func (f fakeStorePing) Get(context.Context, int) (store.Record, bool, error) { return store.Record{}, false, nil }
func (f fakeStorePing) Save(context.Context, store.Record) error            { return nil }
func (f fakeStorePing) Ping(context.Context) error                          { return f.pingErr }

type errString string

func (e errString) Error() string { return string(e) }

func newServer(t *testing.T, rpm int, st store.ResultStore) *httptest.Server {
	t.Helper()
	ch := handlers.NewCountHandler(handlers.CountDeps{Cache: cache.New(time.Minute), Store: st, Timeout: 3 * time.Second, MaxConcurrency: 4, MaxLimit: 100_000, Workers: 2})
	lm := rate.NewLimiterMap(rpm, rpm, time.Minute)
	t.Cleanup(lm.Stop)
	ts := httptest.NewServer(apihttp.NewRouter(ch, lm, st))
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	cases := []struct {
		name string
		st   store.ResultStore
		want int
	}{
		{"nil store", nil, http.StatusOK},
		{"ping ok", fakeStorePing{}, http.StatusOK},
		{"ping error", fakeStorePing{pingErr: errString("down")}, http.StatusInternalServerError},
	}
	for _, c := range cases {
		ts := newServer(t, 100, c.st)
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil { t.Fatalf("%s: request error: %v", c.name, err) }
		resp.Body.Close()
		if resp.StatusCode != c.want { t.Fatalf("%s: status=%d", c.name, resp.StatusCode) }
		if resp.Header.Get("X-Request-ID") == "" { t.Fatalf("%s: missing request id", c.name) }
	}
}

func TestCountEndpoint(t *testing.T) {
	ts := newServer(t, 100, nil)
	b, _ := json.Marshal(types.CountRequest{Limits: []int{10, 1000}})
	resp, err := http.Post(ts.URL+"/api/count", "application/json", bytes.NewReader(b))
	if err != nil { t.Fatalf("post: %v", err) }
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK { t.Fatalf("status=%d", resp.StatusCode) }
	var out types.CountResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil { t.Fatalf("decode: %v", err) }
	if types.SumCounts(out.Counts) != 172 { t.Fatalf("counts=%+v", out.Counts) }
}

func TestRateLimit429(t *testing.T) {
	ts := newServer(t, 10, nil)
	var got429 int
	for i := 0; i < 11; i++ {
		resp, err := http.Get(ts.URL + "/api/is-prime/7")
		if err != nil { t.Fatalf("request error: %v", err) }
		if resp.StatusCode == http.StatusTooManyRequests { got429++ }
		resp.Body.Close()
	}
	if got429 != 1 { t.Fatalf("got429=%d want 1", got429) }
}

func TestCORSPreflight(t *testing.T) {
	ts := newServer(t, 100, nil)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/count", nil)
	resp, err := ts.Client().Do(req)
	if err != nil { t.Fatalf("options: %v", err) }
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent { t.Fatalf("status=%d", resp.StatusCode) }
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" { t.Fatalf("missing cors header") }
}
