package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/redikv/internal/infra/buildinfo"
	"github.com/yndnr/redikv/internal/infra/confloader"
	"github.com/yndnr/redikv/internal/infra/shutdown"
	"github.com/yndnr/redikv/internal/server/config"
	"github.com/yndnr/redikv/internal/server/httpserver"
	"github.com/yndnr/redikv/internal/server/redisserver"
	"github.com/yndnr/redikv/internal/storage/memory"
	"github.com/yndnr/redikv/internal/telemetry/logger"
	"github.com/yndnr/redikv/internal/telemetry/metric"
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
		dotEnv      = flag.String("dotenv", ".env", "Path to .env file (ignored when missing)")
		addr        = flag.String("addr", "", "Override server.redis.addr")
		logLevel    = flag.String("log-level", "", "Override log.level")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("redikv-server %s\n", buildinfo.String())
		return nil
	}

	opts := config.LoadOptions{
		File:      *configFile,
		DotEnv:    *dotEnv,
		Overrides: flagOverrides(*addr, *logLevel),
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	info := buildinfo.Get()
	log.Info("starting redikv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	backend := memory.New(
		memory.WithShardCount(cfg.Storage.ShardCount),
		memory.WithHashShardCount(cfg.Storage.HashShardCount),
	)

	metrics := metric.NewRegistry()
	metrics.SetBuildInfo(info.Version, info.Commit, info.GoVersion)
	metrics.MustRegister(metric.NewKeyspaceCollector(backend))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisSrv := redisserver.New(redisConfig(cfg), backend, log, metrics)
	if err := redisSrv.Start(ctx); err != nil {
		return fmt.Errorf("start redis server: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	// Hooks run in reverse registration order.
	shutdownHandler.OnShutdown("redis server", func(ctx context.Context) error {
		log.Info("shutting down redis server")
		return redisSrv.Shutdown(ctx)
	})

	if cfg.Server.Metrics.Enabled {
		adminSrv := httpserver.New(cfg.Server.Metrics.Addr, httpserver.NewRouter(httpserver.RouterConfig{
			Metrics:     metrics,
			MetricsPath: cfg.Server.Metrics.Path,
			Stats:       backend,
			Ready:       redisSrv.Ready,
			Connections: redisSrv.ActiveConnections,
			Logger:      log,
		}))
		shutdownHandler.OnShutdown("http server", func(ctx context.Context) error {
			log.Info("shutting down HTTP server")
			return adminSrv.Shutdown(ctx)
		})

		go func() {
			log.Info("HTTP server listening", "addr", cfg.Server.Metrics.Addr)
			if err := adminSrv.ListenAndServe(); err != nil {
				log.Error("HTTP server error", "error", err)
				shutdownHandler.Trigger()
			}
		}()
	}

	if *configFile != "" {
		watcher, err := watchConfig(opts, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func flagOverrides(addr, logLevel string) map[string]any {
	m := map[string]any{}
	if addr != "" {
		m["server.redis.addr"] = addr
	}
	if logLevel != "" {
		m["log.level"] = logLevel
	}
	return m
}

func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

func redisConfig(cfg *config.ServerConfig) redisserver.Config {
	r := cfg.Server.Redis
	return redisserver.Config{
		Address:        r.Addr,
		IdleTimeout:    r.IdleTimeout,
		WriteTimeout:   r.WriteTimeout,
		RateLimit:      r.RateLimit,
		RateBurst:      r.RateBurst,
		MaxConnections: r.MaxConnections,
		Limits:         cfg.Protocol.Limits(),
	}
}

// watchConfig reloads the configuration file on change. Only log.level
// takes effect at runtime; other sections need a restart.
func watchConfig(opts config.LoadOptions, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(opts.File); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		cfg, err := config.Load(opts)
		if err != nil {
			log.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		if cfg.Log.Level == logger.GetLevel() {
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn("log level not applied", "level", cfg.Log.Level, "error", err)
			return
		}
		log.Info("log level changed", "level", cfg.Log.Level)
	})
	w.StartAsync()
	return w, nil
}
