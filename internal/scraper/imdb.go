package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"moviehub/pkg/config"
	"moviehub/pkg/models"
)

const imdbBase = "https://www.imdb.com"

// IMDb is the primary source: it enumerates detail-page URLs from the top
// chart and extracts the full field set from each detail page.
type IMDb struct {
	http      *resty.Client
	listURL   string
	maxMovies int
	castLimit int
}

func NewIMDb(cfg config.ScraperConfig) *IMDb {
	return &IMDb{
		http:      newClient(cfg.HTTPTimeout),
		listURL:   cfg.ListURL,
		maxMovies: cfg.MaxMovies,
		castLimit: cfg.CastLimit,
	}
}

func (s *IMDb) Name() string { return "imdb" }

// MovieURLs returns the chart's detail-page URLs in page order, deduped,
// query strings stripped, capped at the configured batch size.
func (s *IMDb) MovieURLs(ctx context.Context) ([]string, error) {
	doc, err := fetchDocument(ctx, s.http, s.listURL)
	if err != nil {
		return nil, fmt.Errorf("imdb: chart: %w", err)
	}
	return extractMovieURLs(doc, s.maxMovies), nil
}

func extractMovieURLs(doc *goquery.Document, max int) []string {
	seen := make(map[string]bool)
	var urls []string

	doc.Find("a.ipc-title-link-wrapper").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if !strings.Contains(href, "/title/tt") {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = imdbBase + href
		}
		if i := strings.IndexByte(href, '?'); i >= 0 {
			href = href[:i]
		}
		if seen[href] {
			return
		}
		seen[href] = true
		urls = append(urls, href)
	})

	if max > 0 && len(urls) > max {
		urls = urls[:max]
	}
	return urls
}

// rawDetail is the raw extraction record for one detail page: one entry per
// named field, empty value meaning the selector found nothing. Extraction
// of one field never aborts the others.
type rawDetail struct {
	Title       string
	YearText    string
	RatingText  string
	Director    string
	PosterURL   string
	PlotSummary string
	RuntimeText string
	Genres      []string
	Cast        []rawCastEntry
}

type rawCastEntry struct {
	Actor     string
	Character string
}

var runtimeHintRe = regexp.MustCompile(`^\d+h( \d+m)?$|^\d+m$`)

func extractDetail(doc *goquery.Document) rawDetail {
	var raw rawDetail

	raw.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	raw.YearText = strings.TrimSpace(doc.Find("h1 ~ ul a").First().Text())
	raw.RatingText = strings.TrimSpace(doc.Find(`div[data-testid="hero-rating-bar__aggregate-rating__score"] span`).First().Text())
	raw.Director = strings.TrimSpace(doc.Find(`li[data-testid="title-pc-principal-credit"] a`).First().Text())
	raw.PosterURL = doc.Find(`div[data-testid="hero-media__poster"] img`).First().AttrOr("src", "")
	raw.PlotSummary = strings.TrimSpace(doc.Find(`span[data-testid="plot-l"]`).First().Text())

	doc.Find(`div[data-testid="genres"] a`).Each(func(_ int, link *goquery.Selection) {
		if g := strings.TrimSpace(link.Text()); g != "" {
			raw.Genres = append(raw.Genres, g)
		}
	})

	// runtime sits in the title metadata list as e.g. "2h 22m"
	doc.Find("h1 ~ ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := strings.TrimSpace(li.Text())
		if runtimeHintRe.MatchString(text) {
			raw.RuntimeText = text
			return false
		}
		return true
	})

	doc.Find(`div[data-testid="title-cast-item"]`).Each(func(_ int, item *goquery.Selection) {
		raw.Cast = append(raw.Cast, rawCastEntry{
			Actor:     strings.TrimSpace(item.Find(`a[data-testid="title-cast-item__actor"]`).First().Text()),
			Character: strings.TrimSpace(item.Find(`a[data-testid="cast-item-character-name"]`).First().Text()),
		})
	})

	return raw
}

// ScrapeMovie fetches one detail page and returns the normalized
// primary-only record. It fails only when the page cannot be fetched or
// yields no title; individual missing fields just come back absent.
func (s *IMDb) ScrapeMovie(ctx context.Context, url string) (models.Movie, error) {
	doc, err := fetchDocument(ctx, s.http, url)
	if err != nil {
		return models.Movie{}, fmt.Errorf("imdb: %w", err)
	}

	raw := extractDetail(doc)
	if raw.Title == "" {
		return models.Movie{}, fmt.Errorf("imdb: no title at %s", url)
	}

	genres := raw.Genres
	if genres == nil {
		genres = []string{}
	}

	return models.Movie{
		Title:          raw.Title,
		Year:           parseYear(raw.YearText),
		ImdbRating:     parseRating(raw.RatingText),
		Director:       optString(raw.Director),
		PosterURL:      optString(raw.PosterURL),
		PlotSummary:    optString(raw.PlotSummary),
		Genres:         genres,
		RuntimeMinutes: parseRuntimeMinutes(raw.RuntimeText),
		Cast:           normalizeCast(raw.Cast, s.castLimit),
		SourceImdbURL:  url,
	}, nil
}
