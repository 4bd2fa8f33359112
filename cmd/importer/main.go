package main

import (
	"context"
	"flag"
	"os"

	"shoppos/internal/config"
	"shoppos/internal/db"
	"shoppos/internal/importer"
	"shoppos/internal/logger"
	productrepo "shoppos/internal/repository/product"
)

func main() {
	path := flag.String("file", "", "path to catalog CSV export")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New("importer", cfg.LogLevel)

	if *path == "" {
		log.Error("missing -file flag")
		os.Exit(2)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Error("open csv", "path", *path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Error("connect db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, log))
	count, err := imp.Run(ctx)
	if err != nil {
		log.Error("import failed", "imported", count, "error", err)
		os.Exit(1)
	}
	log.Info("import complete", "imported", count)
}
