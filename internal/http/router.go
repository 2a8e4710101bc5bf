package apihttp

import (
	"net/http"

	"github.com/example/primecount/internal/handlers"
	"github.com/example/primecount/internal/rate"
	"github.com/example/primecount/internal/store"
	"github.com/example/primecount/pkg/jsonutil"
	"github.com/go-chi/chi/v5"
)

// NewRouter wires routes and middlewares. st may be nil when persistence is off.
func NewRouter(ch *handlers.CountHandler, lm *rate.LimiterMap, st store.ResultStore) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger)
	r.Use(CORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if st != nil {
			if err := st.Ping(r.Context()); err != nil {
				jsonutil.JSON(w, http.StatusInternalServerError, map[string]string{"status": "unhealthy"})
				return
			}
		}
		jsonutil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(RateLimit(lm))
		api.Post("/count", ch.ServeHTTP)
		api.Get("/is-prime/{n}", handlers.IsPrimeHandler)
	})

	return r
}
