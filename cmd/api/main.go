package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"reliefdesk/internal/clock"
	"reliefdesk/internal/donation"
	"reliefdesk/internal/http/handlers"
	httpapi "reliefdesk/internal/http/httpapi"
	"reliefdesk/internal/infra"
	"reliefdesk/internal/infra/geoip"
	"reliefdesk/internal/middleware"
	"reliefdesk/internal/session"
)

func main() {
	loadedEnv := infra.LoadEnvFiles()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	logger.Debug().Strs("env_files", loadedEnv).Msg("configuration loaded")

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		countryLookup = geoip.NewCache(resolver, 0).CountryCode
	}

	ids, err := donation.NewIDSource(cfg.IDScheme)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid id scheme")
	}
	clk := clock.NewSystem()
	registry, err := session.NewRegistry(func(sessionID string) (*donation.Manager, error) {
		return donation.NewManager(donation.Options{
			Presets: cfg.PresetAmounts,
			IDs:     ids,
			Clock:   clk,
			Logger:  logger.With().Str("session_id", sessionID).Logger(),
		})
	}, cfg.SessionIdleTTL, clk, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session registry")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx, cfg.SessionSweepInterval)

	app := handlers.NewApp(registry, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   countryLookup,
		SecureCookies:   cfg.SessionCookieSecure,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Clock:           clk,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("id_scheme", cfg.IDScheme).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
