package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/primecount/internal/primes"
)

const (
	targetLimit = 1_000_000
	warmupLimit = 1000
)

func run(w io.Writer) error {
	// warm-up pass; result unused
	_ = primes.Count(warmupLimit)

	result := primes.Count(targetLimit)
	_, err := fmt.Fprintf(w, "RESULT:%d\n", result)
	return err
}

func main() {
	if err := run(os.Stdout); err != nil {
		os.Exit(1)
	}
}
