package main

import (
	"context"
	"os"

	"shoppos/internal/config"
	"shoppos/internal/db"
	"shoppos/internal/logger"
	"shoppos/internal/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New("migrate", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	log.Info("migrations applied")
}
