package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ccplugins/pluginserve/pkg/api"
	"github.com/ccplugins/pluginserve/pkg/config"
	"github.com/ccplugins/pluginserve/pkg/marketplace"
	"github.com/ccplugins/pluginserve/pkg/observability"
)

func main() {
	port := flag.String("port", "", "Port to listen on (overrides PLUGINSERVE_PORT)")
	marketplacesDir := flag.String("marketplaces-dir", "", "Directory holding marketplace directories (overrides PLUGINSERVE_MARKETPLACES_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *marketplacesDir != "" {
		cfg.Marketplace.RootDir = *marketplacesDir
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, cfg.Observability.LogJSON)

	ctx := context.Background()
	otelProviders, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}

	service, err := marketplace.NewService(marketplace.Options{
		RootDir:   cfg.Marketplace.RootDir,
		CacheSize: cfg.Marketplace.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatalf("Failed to create marketplace service: %v", err)
	}
	logger.Infof("Serving plugins from %s", service.RootDir())

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		metrics.RegisterCacheStats(func() (int64, int64, int64, int) {
			stats := service.CacheStats()
			return stats.Hits, stats.Misses, stats.Evictions, stats.Size
		})
		metrics.RegisterScanStats(func() (int64, float64) {
			stats := service.ScanStats()
			return stats.Scans, stats.Duration
		})
	}

	server := api.NewServer(service, logger, metrics)

	var handler http.Handler = server
	if cfg.Observability.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "pluginserve")
	}

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: server.HealthHandler(),
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)
	shutdown.RegisterServer(apiServer)
	shutdown.RegisterServer(healthServer)
	if otelProviders != nil {
		shutdown.RegisterShutdownFunc(otelProviders.Shutdown)
	}

	go func() {
		logger.Infof("Health/metrics server listening on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Health server failed: %v", err)
		}
	}()

	go func() {
		logger.Infof("Plugin marketplace server listening on %s", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
	}
}
