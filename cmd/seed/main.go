package main

import (
	"context"
	"os"

	"shoppos/internal/config"
	"shoppos/internal/db"
	"shoppos/internal/logger"
	"shoppos/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New("seed", cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, log); err != nil {
		log.Error("seed apply", "error", err)
		os.Exit(1)
	}
}
