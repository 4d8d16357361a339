package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/rudis-go/internal/infra/buildinfo"
	"github.com/yndnr/rudis-go/internal/infra/confloader"
	"github.com/yndnr/rudis-go/internal/infra/shutdown"
	"github.com/yndnr/rudis-go/internal/server/config"
	"github.com/yndnr/rudis-go/internal/server/httpserver"
	"github.com/yndnr/rudis-go/internal/server/textserver"
	"github.com/yndnr/rudis-go/internal/storage/memory"
	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		addr        = flag.String("addr", "", "Text protocol listen address (overrides server.text.addr)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rudis-server %s\n", buildinfo.String())
		return nil
	}

	overrides := map[string]any{}
	if *addr != "" {
		overrides["server.text.addr"] = *addr
	}

	cfg, err := config.Load(*configFile, overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting rudis-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	store := memory.New(memory.WithBitmapCapacity(uint(cfg.Storage.BitmapCapacity)))

	metrics := metric.NewRegistry()
	if err := metrics.Register(metric.NewKeyCollector(keyCounts(store))); err != nil {
		return fmt.Errorf("register key collector: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	textSrv := textserver.New(textConfig(cfg), store,
		textserver.WithLogger(log.With("component", "text")),
		textserver.WithMetrics(metrics),
	)

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, log)

	// Hooks run in reverse order, so the text server stops first.
	if cfg.Server.HTTP.Enabled {
		httpSrv := httpserver.New(cfg.Server.HTTP.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			KeyCounts:      keyCounts(store),
			ActiveConns:    textSrv.ActiveConns,
			BitmapCapacity: store.Bitmaps.Capacity(),
			Ready:          textSrv.Running,
			Metrics:        metrics,
			Logger:         log.With("component", "http"),
		}))
		if err := httpSrv.Start(func(err error) {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}); err != nil {
			return fmt.Errorf("start http server: %w", err)
		}
		log.Info("HTTP server listening", "address", httpSrv.Addr().String())
		shutdownHandler.OnShutdown("http server", httpSrv.Shutdown)
	}

	if err := textSrv.Start(ctx); err != nil {
		return fmt.Errorf("start text server: %w", err)
	}
	shutdownHandler.OnShutdown("text server", func(ctx context.Context) error {
		cancel()
		return textSrv.Shutdown(ctx)
	})

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func textConfig(cfg *config.ServerConfig) *textserver.Config {
	t := cfg.Server.Text
	return &textserver.Config{
		Addr:         t.Addr,
		ReadBuffer:   t.ReadBuffer,
		IdleTimeout:  t.IdleTimeout,
		WriteTimeout: t.WriteTimeout,
		RateLimit:    t.RateLimit,
	}
}

// keyCounts adapts the store's per-type counts to metric label values.
func keyCounts(store *memory.Store) metric.KeyCountFunc {
	return func() map[string]int {
		counts := store.KeyCounts()
		out := make(map[string]int, len(counts))
		for typ, n := range counts {
			out[string(typ)] = n
		}
		return out
	}
}

// watchConfig re-reads path on every write and applies log.level.
func watchConfig(path string, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.OnChange(func(string) {
		reloadLogLevel(path, log)
	})
	w.StartAsync()
	return w, nil
}

// reloadLogLevel applies log.level from path. Other settings need a
// restart. An invalid file leaves the current level in place.
func reloadLogLevel(path string, log logger.Logger) {
	cfg, err := config.Load(path, nil)
	if err != nil {
		log.Warn("config reload failed", "error", err)
		return
	}
	old := logger.GetLevel()
	logger.SetLevel(cfg.Log.Level)
	if now := logger.GetLevel(); now != old {
		log.Info("log level changed", "from", old, "to", now)
	}
}
