package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CristopherG19/app-restaurante-cgch/internal/config"
	"github.com/CristopherG19/app-restaurante-cgch/internal/infra"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
	"github.com/CristopherG19/app-restaurante-cgch/internal/router"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"
	"github.com/CristopherG19/app-restaurante-cgch/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger. Dev gets pretty output, prod JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mysql")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async jobs (facturación electrónica, PDF, email).
	// Handlers are wired here, at the composition root, so the pool has
	// full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cpeClient := infra.NewCPEClient(cfg.CPESidecarURL)
	cpeBreaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	ventaRepo := repository.NewVentaRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)
	configSvc := service.NewConfiguracionService(configRepo, rdb)

	negocioNombre := configSvc.GetString(ctx, "negocio_razon_social", "Over Chef")
	handlers := worker.Handlers{
		CPE:   worker.NewCPEWorker(cpeClient, cpeBreaker, ventaRepo, dispatcher, cfg.PDFStoragePath, cfg.NegocioRUC, negocioNombre),
		Email: worker.NewEmailWorker(mailer, negocioNombre),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
