package main

import (
	"context"
	"net/http"
	"os"
	"time"

	gw "whiskerverse/internal/adapters/auth/gateway"
	pg "whiskerverse/internal/adapters/storage/postgres"
	"whiskerverse/internal/domain/catalog"
	"whiskerverse/internal/platform/config"
	"whiskerverse/internal/platform/logger"
	"whiskerverse/internal/ports/auth"
	"whiskerverse/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// El catálogo embebido es parte del binario: si no carga, no hay
	// juego que servir.
	cat, err := catalog.Default()
	if err != nil {
		log.Error("catalog error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var verifier auth.AuthVerifier
	if cfg.GatewayBaseURL != "" {
		client, err := gw.NewClient(gw.Config{
			BaseURL: cfg.GatewayBaseURL,
			APIKey:  cfg.GatewayAPIKey,
			Timeout: 5 * time.Second,
		})
		if err != nil {
			log.Error("gateway client error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = gw.NewVerifier(client)
	}

	opts := router.Options{
		AuthVerifier:    verifier,
		Catalog:         cat,
		AdminPlayerID:   cfg.AdminPlayerID,
		CooldownSeconds: cfg.CooldownSeconds,
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("schema error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
	} else {
		log.Warn("no DB_DSN set, using in-memory storage", nil)
	}

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
