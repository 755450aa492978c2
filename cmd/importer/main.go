package main

import (
	"context"
	"log"
	"os"

	"supsindex-navigator/internal/config"
	"supsindex-navigator/internal/db"
	"supsindex-navigator/internal/importer"
	affiliationrepo "supsindex-navigator/internal/repository/affiliation"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if len(os.Args) < 2 {
		logger.Fatalf("usage: importer <affiliations.csv>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := affiliationrepo.NewPostgres(pool)
	count, err := importer.NewCSVImporter(file, repo).Run(ctx)
	if err != nil {
		logger.Fatalf("import after %d rows: %v", count, err)
	}
	logger.Printf("imported %d affiliation codes", count)
}
