package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// newClient builds the HTTP client both source scrapers share: browser
// user agent, bounded per-request timeout, anti-bot transport. Both sites
// serve reduced or blocked pages to clients that look automated.
func newClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", browserUserAgent)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	return client
}

func fetchDocument(ctx context.Context, client *resty.Client, url string) (*goquery.Document, error) {
	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
