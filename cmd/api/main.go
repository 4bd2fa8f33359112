package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shoppos/internal/config"
	"shoppos/internal/db"
	"shoppos/internal/httpserver"
	"shoppos/internal/logger"
	"shoppos/internal/relay"
	paymentrepo "shoppos/internal/repository/payment"
	productrepo "shoppos/internal/repository/product"
	salerepo "shoppos/internal/repository/sale"
	productsvc "shoppos/internal/service/product"
	salesvc "shoppos/internal/service/sale"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New("api", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect to db", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := relay.NewHub(log, relay.NewMetrics(registry))
	go hub.Run(ctx)

	productRepo := productrepo.NewPostgres(dbpool, log)
	saleRepo := salerepo.NewPostgres(dbpool, log)
	paymentRepo := paymentrepo.NewPostgres(dbpool, log)

	srv := httpserver.New(cfg.HTTPAddr, log, dbpool, httpserver.Deps{
		Products:    productsvc.New(productRepo),
		Sales:       salesvc.New(saleRepo, productRepo),
		Payments:    paymentRepo,
		Hub:         hub,
		Metrics:     registry,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	} else {
		log.Info("server stopped")
	}
}
