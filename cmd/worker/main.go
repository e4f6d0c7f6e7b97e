package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinsella123/CourseFindr/internal/bootstrap"
	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/observability/logging"
	"github.com/akinsella123/CourseFindr/internal/observability/metrics"
)

// periodicRefitInterval guards against missed events: even without
// catalog traffic the space is refreshed on this cadence.
const periodicRefitInterval = 10 * time.Minute

func main() {
	cfg := config.Load()
	logger := logging.Setup("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close(context.Background())

	wm := metrics.NewWorkerMetrics("worker")
	go serveMetrics(ctx, cfg.WorkerMetricsPort, wm, logger)

	triggers := make(chan struct{}, 1)
	go refitLoop(ctx, app, wm, cfg, triggers)

	// Initial fit so readers do not start against an empty space.
	requestRefit(triggers)

	go func() {
		ticker := time.NewTicker(periodicRefitInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				requestRefit(triggers)
			}
		}
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeCatalogChanged(ctx, func(_ context.Context, courseID string) error {
		slog.Debug("catalog_changed", "course_id", courseID)
		requestRefit(triggers)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

// requestRefit coalesces bursts of events into one pending trigger.
func requestRefit(triggers chan<- struct{}) {
	select {
	case triggers <- struct{}{}:
	default:
	}
}

// refitLoop debounces triggers so a burst of catalog mutations causes
// one refit after the quiet period rather than one per event.
func refitLoop(ctx context.Context, app *bootstrap.App, wm *metrics.WorkerMetrics, cfg config.Config, triggers <-chan struct{}) {
	debounce := time.Duration(cfg.RefitDebounceSec) * time.Second
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	var pendingSince time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-triggers:
			if pendingSince.IsZero() {
				pendingSince = time.Now()
				timer.Reset(debounce)
			}
		case <-timer.C:
			wm.ObserveQueueLag("worker", time.Since(pendingSince))
			pendingSince = time.Time{}
			runRefit(ctx, app, wm)
		}
	}
}

func runRefit(ctx context.Context, app *bootstrap.App, wm *metrics.WorkerMetrics) {
	refitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	wm.StartRefit()
	start := time.Now()
	space, err := app.RefitUC.Refit(refitCtx)
	wm.FinishRefit("worker", time.Since(start), err)

	if err != nil {
		slog.Error("space_refit_failed", "error", err)
		return
	}
	wm.SetSpaceStats(space.CourseCount, len(space.Vocabulary))
}

func serveMetrics(ctx context.Context, port string, wm *metrics.WorkerMetrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", wm.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("worker metrics listening", "port", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("worker metrics server error", "error", err)
	}
}
