// Package news collects market headlines from configured HTML pages.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"crypto-trade-journal/internal/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (compatible; TradeJournal/1.0)"

// Headline is one news item.
type Headline struct {
	Source string `json:"source"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// Scraper reads headlines from every configured source.
type Scraper struct {
	client   *resty.Client
	logger   *zap.Logger
	sources  []config.NewsSource
	maxItems int
}

// NewScraper creates a new headline scraper.
func NewScraper(cfg config.News, logger *zap.Logger) *Scraper {
	return &Scraper{
		client:   resty.New().SetTimeout(15 * time.Second).SetHeader("User-Agent", userAgent),
		logger:   logger,
		sources:  cfg.Sources,
		maxItems: cfg.MaxItems,
	}
}

// Headlines fetches all sources in order. A failing source is logged and
// skipped. Links are de-duplicated and the list is capped at the configured size.
func (s *Scraper) Headlines(ctx context.Context) ([]Headline, error) {
	out := []Headline{}
	seen := make(map[string]struct{})

	for _, src := range s.sources {
		items, err := s.scrapeSource(ctx, src)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			s.logger.Warn("Failed to scrape news source", zap.String("source", src.Name), zap.Error(err))
			continue
		}

		for _, h := range items {
			if _, dup := seen[h.URL]; dup {
				continue
			}
			seen[h.URL] = struct{}{}
			out = append(out, h)
			if s.maxItems > 0 && len(out) >= s.maxItems {
				return out, nil
			}
		}
	}
	return out, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src config.NewsSource) ([]Headline, error) {
	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %q: %w", src.URL, err)
	}

	resp, err := s.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(src.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", src.URL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: status %s", src.URL, resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", src.URL, err)
	}

	return Extract(doc, src, base), nil
}

// Extract reads headlines from a parsed page using the source selectors.
// Relative links are resolved against base.
func Extract(doc *goquery.Document, src config.NewsSource, base *url.URL) []Headline {
	var out []Headline

	doc.Find(src.ItemSelector).Each(func(_ int, item *goquery.Selection) {
		titleSel := item
		if src.TitleSelector != "" {
			titleSel = item.Find(src.TitleSelector).First()
		}
		title := strings.Join(strings.Fields(titleSel.Text()), " ")
		if title == "" {
			return
		}

		linkSel := item
		if src.LinkSelector != "" {
			linkSel = item.Find(src.LinkSelector).First()
		}
		href, ok := linkSel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		out = append(out, Headline{
			Source: src.Name,
			Title:  title,
			URL:    base.ResolveReference(ref).String(),
		})
	})
	return out
}
