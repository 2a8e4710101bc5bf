package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/primecount/internal/cache"
	"github.com/example/primecount/internal/config"
	"github.com/example/primecount/internal/handlers"
	apihttp "github.com/example/primecount/internal/http"
	"github.com/example/primecount/internal/rate"
	"github.com/example/primecount/internal/store"
)

func main() {
	cfg := config.Load()

	res, err := selfCheck()
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("event=self_check %s", res.BenchLine())

	var st store.ResultStore
	if cfg.StoreEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoClient, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			cancel()
			log.Fatalf("%v", err)
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		ms, err := store.NewMongoResultStore(ctx, mongoClient, cfg.MongoDB)
		cancel()
		if err != nil {
			log.Fatalf("result store init error: %v", err)
		}
		st = ms
	} else {
		log.Println("warning: STORE_ENABLED=false; counts are kept in memory only")
	}

	ch := handlers.NewCountHandler(handlers.CountDeps{
		Cache:          cache.New(cfg.CacheTTL),
		Store:          st,
		Timeout:        cfg.CountTimeout,
		MaxConcurrency: cfg.MaxConcurrency,
		MaxLimit:       cfg.MaxLimit,
		Workers:        cfg.CountWorkers,
	})
	lm := rate.NewLimiterMap(cfg.RateLimitRPM, cfg.RateLimitRPM, 5*time.Minute)
	defer lm.Stop()

	port := sanitizePort(cfg.Port)
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      apihttp.NewRouter(ch, lm, st),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.CountTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("shutting down...")
	shCtx, shCancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.CountTimeout))
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
