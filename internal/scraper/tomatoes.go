package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"moviehub/pkg/config"
)

const tomatoesBase = "https://www.rottentomatoes.com"

// TomatoMatch is what the secondary source contributes to one film once its
// identity has been resolved.
type TomatoMatch struct {
	URL           string
	Tomatometer   *int
	AudienceScore *int
}

// RottenTomatoes is the secondary source. It has no identifier shared with
// IMDb, so films are located by title search and exact release-year match.
type RottenTomatoes struct {
	http *resty.Client
}

func NewRottenTomatoes(cfg config.ScraperConfig) *RottenTomatoes {
	return &RottenTomatoes{http: newClient(cfg.HTTPTimeout)}
}

func (s *RottenTomatoes) Name() string { return "rottentomatoes" }

type searchCandidate struct {
	Title    string
	YearText string
	URL      string
}

func extractSearchCandidates(doc *goquery.Document) []searchCandidate {
	var cands []searchCandidate
	doc.Find("search-page-media-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a[slot="title"]`).First()
		href := link.AttrOr("href", "")
		if href == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = tomatoesBase + href
		}
		cands = append(cands, searchCandidate{
			Title:    strings.TrimSpace(link.Text()),
			YearText: strings.TrimSpace(row.AttrOr("releaseyear", "")),
			URL:      href,
		})
	})
	return cands
}

// pickCandidate returns the first candidate, in the source's own result
// order, whose release year matches exactly. Candidates without a parseable
// year are skipped, not treated as errors.
func pickCandidate(cands []searchCandidate, year int) *searchCandidate {
	for i := range cands {
		if y := parseYear(cands[i].YearText); y != nil && *y == year {
			return &cands[i]
		}
	}
	return nil
}

func extractScores(doc *goquery.Document) (tomatometer, audience *int) {
	tomatometer = parseScore(doc.Find(`rt-text[slot="criticsScore"]`).First().Text())
	audience = parseScore(doc.Find(`rt-text[slot="audienceScore"]`).First().Text())
	return tomatometer, audience
}

// Resolve locates the film on Rotten Tomatoes and fetches its score pair.
// A nil match with nil error is an explicit miss: no candidate shares the
// release year, or the primary record has no year to match on (year
// equality being the only identity evidence we accept). Errors mean the
// site was unreachable; the caller degrades to a primary-only record.
func (s *RottenTomatoes) Resolve(ctx context.Context, title string, year *int) (*TomatoMatch, error) {
	if title == "" || year == nil {
		return nil, nil
	}

	searchURL := tomatoesBase + "/search?search=" + url.QueryEscape(title)
	doc, err := fetchDocument(ctx, s.http, searchURL)
	if err != nil {
		return nil, fmt.Errorf("tomatoes: search %q: %w", title, err)
	}

	cand := pickCandidate(extractSearchCandidates(doc), *year)
	if cand == nil {
		return nil, nil
	}

	detail, err := fetchDocument(ctx, s.http, cand.URL)
	if err != nil {
		return nil, fmt.Errorf("tomatoes: detail %s: %w", cand.URL, err)
	}

	tomatometer, audience := extractScores(detail)
	return &TomatoMatch{
		URL:           cand.URL,
		Tomatometer:   tomatometer,
		AudienceScore: audience,
	}, nil
}
