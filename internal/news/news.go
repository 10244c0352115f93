package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultBaseURL = "https://finviz.com"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Lookup returns the most recent headline for a symbol.
type Lookup interface {
	LatestHeadline(ctx context.Context, symbol string) (string, error)
}

// Headline is a single row of the quote page news table.
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// FinvizLookup scrapes the Finviz quote page.
type FinvizLookup struct {
	BaseURL string
	Client  *http.Client
}

func NewFinvizLookup(proxyURL string) *FinvizLookup {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FinvizLookup{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 15 * time.Second, Transport: transport},
	}
}

// LatestHeadline returns the first headline, or "" when the page lists none.
func (f *FinvizLookup) LatestHeadline(ctx context.Context, symbol string) (string, error) {
	items, err := f.Headlines(ctx, symbol, 1)
	if err != nil || len(items) == 0 {
		return "", err
	}
	return items[0].Title, nil
}

// Headlines returns up to limit headlines in page order.
func (f *FinvizLookup) Headlines(ctx context.Context, symbol string, limit int) ([]Headline, error) {
	pageURL := fmt.Sprintf("%s/quote.ashx?t=%s", f.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s news: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("finviz returned status %d for %s", resp.StatusCode, symbol)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse finviz html: %w", err)
	}

	var out []Headline
	doc.Find("table.fullview-news-outer tr").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(out) >= limit {
			return false
		}
		link := s.Find("td").Last().Find("a").First()
		title := cleanText(link.Text())
		href, ok := link.Attr("href")
		if !ok || title == "" {
			return true
		}
		out = append(out, Headline{
			Title:  title,
			Source: cleanText(s.Find("td").Last().Find("span").Text()),
			URL:    href,
		})
		return true
	})
	return out, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
