package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"moviehub/internal/movies"
	"moviehub/internal/scraper"
	"moviehub/pkg/database"
)

// Re-ingests a previously exported CSV through the same upsert path the
// scraper uses, so an import is idempotent and overwrites by natural key.
func main() {
	in := flag.String("in", "data/movies.csv", "input CSV path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open %s: %v", *in, err)
	}
	defer f.Close()

	items, err := movies.ReadCSV(f)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}

	store := scraper.NewStore(db)
	saved := 0
	for _, m := range items {
		if err := store.Upsert(ctx, m); err != nil {
			log.Printf("skip %s: %v", m.SourceImdbURL, err)
			continue
		}
		saved++
	}

	log.Printf("✅ imported %d of %d movies from %s", saved, len(items), *in)
}
