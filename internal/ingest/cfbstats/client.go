package cfbstats

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// BaseURL for cfbstats.com leaderboards
	BaseURL = "https://cfbstats.com"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to stay polite with the site
	MinRequestInterval = 2 * time.Second

	// RedZoneCategory is the leaderboard category for red zone stats
	RedZoneCategory = 27
)

// ConferenceIDs maps conference display names to cfbstats leaderboard scopes.
var ConferenceIDs = map[string]string{
	"American":         "823",
	"ACC":              "821",
	"Big 12":           "25354",
	"Big Ten":          "827",
	"C-USA":            "24312",
	"FBS Independents": "99001",
	"MAC":              "875",
	"Mountain West":    "5486",
	"Pac-12":           "905",
	"SEC":              "911",
	"Sun Belt":         "818",
}

// Client fetches leaderboard pages with a headless browser and rate limiting
type Client struct {
	lastRequest time.Time
	interval    time.Duration
	baseURL     string

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a new cfbstats scraper client
func NewClient() (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		lastRequest: time.Time{},
		interval:    MinRequestInterval,
		baseURL:     BaseURL,
		allocCtx:    allocCtx,
		cancel:      cancel,
	}, nil
}

// Close releases resources
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// LeaderboardURL builds the leaderboard page URL for a season year,
// conference scope, and stat category.
func (c *Client) LeaderboardURL(year int, scope string, category int) string {
	return fmt.Sprintf("%s/%d/leader/%s/team/offense/split01/category%02d/sort01.html",
		c.baseURL, year, scope, category)
}

// FetchLeaderboard fetches the rendered leaderboard HTML for a conference
func (c *Client) FetchLeaderboard(ctx context.Context, year int, scope string, category int) (string, error) {
	return c.fetchWithRateLimit(ctx, c.LeaderboardURL(year, scope, category))
}

// fetchWithRateLimit fetches content with automatic rate limiting
func (c *Client) fetchWithRateLimit(ctx context.Context, url string) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			waitTime := c.interval - elapsed
			log.Printf("[cfbstats] Rate limiting: waiting %v before next request", waitTime)
			time.Sleep(waitTime)
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()

	return html, err
}

// fetch performs the actual page load using chromedp
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)

	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return htmlContent, nil
}

// ParseHTML converts raw HTML to a goquery Document for parsing
func ParseHTML(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
