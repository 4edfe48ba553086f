package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"moviehub/internal/movies"
	"moviehub/pkg/database"
)

func main() {
	out := flag.String("out", "data/movies.csv", "output CSV path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := movies.NewRepo(db)
	items, err := repo.All(ctx)
	if err != nil {
		log.Fatalf("load movies failed: %v", err)
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	if err := movies.WriteCSV(f, items); err != nil {
		log.Fatalf("write csv: %v", err)
	}

	log.Printf("✅ exported %d movies to %s", len(items), *out)
}
