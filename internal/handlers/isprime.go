package handlers

import (
	"net/http"
	"strconv"

	"github.com/example/primecount/internal/primes"
	"github.com/example/primecount/internal/types"
	"github.com/example/primecount/pkg/jsonutil"
	"github.com/go-chi/chi/v5"
)

// maxN keeps trial division under a million iterations.
const maxN int64 = 1_000_000_000_000

// IsPrimeHandler serves GET /api/is-prime/{n}.
func IsPrimeHandler(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "n must be an integer")
		return
	}
	if int64(n) > maxN {
		jsonutil.Error(w, http.StatusBadRequest, "n too large")
		return
	}
	jsonutil.JSON(w, http.StatusOK, types.IsPrimeResponse{N: n, Prime: primes.IsPrime(n)})
}
