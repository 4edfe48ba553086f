package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"moviehub/pkg/models"
)

// PrimarySource enumerates detail-page locators and scrapes one normalized
// primary-only record per locator.
type PrimarySource interface {
	Name() string
	MovieURLs(ctx context.Context) ([]string, error)
	ScrapeMovie(ctx context.Context, url string) (models.Movie, error)
}

// SecondarySource resolves a (title, year) identity against the ratings
// site. A nil match with nil error is an explicit miss, not an error.
type SecondarySource interface {
	Name() string
	Resolve(ctx context.Context, title string, year *int) (*TomatoMatch, error)
}

// Upserter persists one canonical record under its natural key.
type Upserter interface {
	Upsert(ctx context.Context, m models.Movie) error
}

// Pipeline drives one ingestion batch: for each locator in order, extract
// from the primary source, resolve and enrich from the secondary source,
// merge, upsert. Strictly sequential with a fixed pause between locators;
// both sites are rate-sensitive and politeness beats throughput here.
type Pipeline struct {
	Primary   PrimarySource
	Secondary SecondarySource
	Store     Upserter
	Delay     time.Duration
}

func NewPipeline(primary PrimarySource, secondary SecondarySource, store Upserter, delay time.Duration) *Pipeline {
	return &Pipeline{
		Primary:   primary,
		Secondary: secondary,
		Store:     store,
		Delay:     delay,
	}
}

type Stats struct {
	Total   int
	Saved   int
	Skipped int
}

// Run executes the batch. Every failure is isolated to its locator: the
// movie is logged and skipped, and the batch keeps going. Only the initial
// locator listing is batch-fatal. Cancellation is honored between locators,
// never mid-upsert, so each record's write stays atomic.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	urls, err := p.Primary.MovieURLs(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list movie urls: %w", err)
	}

	log.Printf("[scraper] %s listed %d movies", p.Primary.Name(), len(urls))
	stats := Stats{Total: len(urls)}

	for i, url := range urls {
		if i > 0 && p.Delay > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(p.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return stats, err
		}

		movie, err := p.Primary.ScrapeMovie(ctx, url)
		if err != nil {
			log.Printf("[scraper] skip %s: %v", url, err)
			stats.Skipped++
			continue
		}

		match, err := p.Secondary.Resolve(ctx, movie.Title, movie.Year)
		if err != nil {
			// degrade to a primary-only record instead of skipping
			log.Printf("[scraper] %s: %s lookup failed: %v", url, p.Secondary.Name(), err)
			match = nil
		}

		if err := p.Store.Upsert(ctx, Merge(movie, match)); err != nil {
			log.Printf("[scraper] skip %s: %v", url, err)
			stats.Skipped++
			continue
		}
		stats.Saved++
	}

	return stats, nil
}
