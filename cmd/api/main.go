package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/akinsella123/CourseFindr/internal/adapters/http"
	"github.com/akinsella123/CourseFindr/internal/bootstrap"
	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/observability/logging"
	"github.com/akinsella123/CourseFindr/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close(context.Background())

	// Warm the fitted space so the first request does not pay for the
	// initial fit. Failure is non-fatal: Recommend refits on demand.
	if _, err := app.RefitUC.Refit(ctx); err != nil {
		logger.Warn("initial space fit failed", "error", err)
	}

	m := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(app.RecommendUC, app.ExtractUC, app.CatalogUC, m, cfg).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", "error", err)
	}
}
