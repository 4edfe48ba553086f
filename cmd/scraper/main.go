package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"moviehub/internal/scraper"
	"moviehub/pkg/config"
	"moviehub/pkg/database"
)

func main() {
	// cancellation between movies on Ctrl-C; each upsert stays atomic
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	cfg := config.LoadScraperConfig()
	pipeline := scraper.NewPipeline(
		scraper.NewIMDb(cfg),
		scraper.NewRottenTomatoes(cfg),
		scraper.NewStore(db),
		cfg.Delay,
	)

	stats, err := pipeline.Run(ctx)
	if err != nil {
		log.Printf("batch stopped early: %v", err)
	}

	log.Printf("✅ %d movies listed, %d saved, %d skipped", stats.Total, stats.Saved, stats.Skipped)
}
