package main

import (
	"context"
	"fmt"
	"time"

	"github.com/example/primecount/internal/primes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sanitizePort returns a sensible default when empty.
func sanitizePort(p string) string {
	if p == "" {
		return "8080"
	}
	return p
}

// connectMongo dials and pings so a bad URI fails at startup, not on first request.
func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return cli, nil
}

// selfCheck runs the fixed warm-up bound and verifies the known answer.
func selfCheck() (primes.Result, error) {
	res := primes.Measure("warmup-1k", 1000)
	if res.Count != 168 {
		return res, fmt.Errorf("self check: count to 1000 = %d, want 168", res.Count)
	}
	return res, nil
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d < 5*time.Second {
		return 5 * time.Second
	}
	return d
}
