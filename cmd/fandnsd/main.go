package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fandns/fandns/internal/dns/common/clock"
	"github.com/fandns/fandns/internal/dns/common/log"
	"github.com/fandns/fandns/internal/dns/config"
	"github.com/fandns/fandns/internal/dns/gateways/transport"
	"github.com/fandns/fandns/internal/dns/gateways/upstream"
	"github.com/fandns/fandns/internal/dns/repos/records"
	"github.com/fandns/fandns/internal/dns/repos/replycache"
	"github.com/fandns/fandns/internal/dns/services/proxy"
)

const (
	version = "0.1.0-dev"
	appName = "fandnsd"
)

// Application holds the wired components of the server.
type Application struct {
	config    *config.AppConfig
	transport *transport.UDPTransport
	proxy     *proxy.Proxy
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":        appName,
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"resolver":   cfg.Resolver,
		"forwarding": cfg.ForwardingMode(),
	}, "Starting fandns server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "fandns server stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	source, err := buildAnswerSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build answer source: %w", err)
	}

	exchanger, cache, err := buildForwarding(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build forwarding path: %w", err)
	}

	proxyService, err := proxy.New(proxy.Options{
		Source:   source,
		Upstream: exchanger,
		Cache:    cache,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver proxy: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	return &Application{
		config:    cfg,
		transport: transport.NewUDPTransport(addr, logger),
		proxy:     proxyService,
	}, nil
}

// buildAnswerSource loads the static record table backing local synthesis.
func buildAnswerSource(cfg *config.AppConfig) (proxy.AnswerSource, error) {
	store, err := records.New(records.Options{
		FallbackAddress: cfg.SynthAddress,
		FallbackTTL:     cfg.SynthTTL,
	})
	if err != nil {
		return nil, err
	}
	if cfg.RecordsDir != "" {
		if err := store.LoadDirectory(cfg.RecordsDir); err != nil {
			return nil, err
		}
		log.Info(map[string]any{
			"records_dir": cfg.RecordsDir,
			"entries":     store.Len(),
		}, "Static record table loaded")
	}
	return store, nil
}

// buildForwarding assembles the upstream exchanger and reply cache when
// forwarding mode is configured. Both are nil in local-synthesis mode.
func buildForwarding(cfg *config.AppConfig, logger log.Logger) (proxy.Exchanger, proxy.ReplyCache, error) {
	if !cfg.ForwardingMode() {
		return nil, nil, nil
	}

	exchanger, err := upstream.New(upstream.Options{
		Address: cfg.Resolver,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info(map[string]any{
		"resolver": cfg.Resolver,
		"timeout":  cfg.UpstreamTimeout,
	}, "Upstream resolver configured")

	if cfg.DisableCache {
		log.Info(map[string]any{"disabled": true}, "Forwarded-answer caching disabled")
		return exchanger, nil, nil
	}
	cache, err := replycache.New(int(cfg.CacheSize), clock.RealClock{})
	if err != nil {
		return nil, nil, err
	}
	log.Info(map[string]any{
		"type": "LRU",
		"size": cfg.CacheSize,
	}, "Forwarded-answer cache configured")
	return exchanger, cache, nil
}

// Run starts the server and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.proxy); err != nil {
		return fmt.Errorf("failed to start UDP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "UDP",
	}, "DNS server started")

	<-ctx.Done()

	log.Info(nil, "Shutdown initiated")
	if err := app.transport.Stop(); err != nil {
		log.Warn(map[string]any{"error": err}, "Error during transport shutdown")
		return err
	}
	return nil
}
