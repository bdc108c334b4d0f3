package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// paywallMarkers are scanned case-insensitively in the raw response body.
// Any hit marks the article as likely behind a subscription barrier.
var paywallMarkers = []string{
	"subscribe", "paywall", "metered", "membership", "register to read",
}

// maxBodyBytes bounds how much of a response body is read and parsed.
const maxBodyBytes = 2 << 20 // 2 MiB

// Fetcher retrieves and cleans the textual body of one article at a time.
//
// Fetch never returns an error: every internal failure degrades to an empty
// string with a logged diagnostic, so a slow or unreachable article never
// stalls a batch. There are no retries; a failed fetch is final for that URL.
type Fetcher struct {
	gate           *Gate
	client         *http.Client
	userAgent      string
	allowPaywalled bool
	delay          time.Duration
	log            *logrus.Logger

	// Per-host politeness pacing. Fetches for distinct hosts may proceed in
	// parallel; successive requests to the same host are spaced at least
	// delay apart.
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	UserAgent      string
	Timeout        time.Duration
	Delay          time.Duration
	AllowPaywalled bool
}

// NewFetcher creates a content fetcher behind the given compliance gate.
func NewFetcher(gate *Gate, opts FetcherOptions, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		gate:           gate,
		client:         &http.Client{Timeout: opts.Timeout},
		userAgent:      opts.UserAgent,
		allowPaywalled: opts.AllowPaywalled,
		delay:          opts.Delay,
		log:            log,
		hosts:          make(map[string]*rate.Limiter),
	}
}

// Fetch returns the cleaned article text for the URL, or "" when no usable
// content could be acquired (compliance denial, paywall, HTTP failure, or
// an empty extraction result).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) string {
	if !f.gate.Allowed(rawURL) {
		f.log.Infof("skipping (crawl policy disallow): %s", rawURL)
		return ""
	}

	if err := f.waitHost(ctx, rawURL); err != nil {
		f.log.Warnf("politeness wait aborted for %s: %v", rawURL, err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.log.Warnf("bad article URL %s: %v", rawURL, err)
		return ""
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Warnf("fetch failed for %s: %v", rawURL, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Infof("skipping non-2xx (%d): %s", resp.StatusCode, rawURL)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.log.Warnf("read body failed for %s: %v", rawURL, err)
		return ""
	}
	html := string(body)

	if !f.allowPaywalled && looksPaywalled(html) {
		f.log.Infof("skipping likely paywalled article: %s", rawURL)
		return ""
	}

	text := extractText(html)
	if text == "" {
		f.log.Infof("no extractable content: %s", rawURL)
	}
	return text
}

// waitHost blocks until the per-host pacing allows another request.
func (f *Fetcher) waitHost(ctx context.Context, rawURL string) error {
	if f.delay <= 0 {
		return nil
	}

	host := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		host = parsed.Host
	}

	f.mu.Lock()
	limiter, ok := f.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(f.delay), 1)
		f.hosts[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}

// looksPaywalled reports whether the raw HTML contains a paywall marker word.
func looksPaywalled(html string) bool {
	low := strings.ToLower(html)
	for _, marker := range paywallMarkers {
		if strings.Contains(low, marker) {
			return true
		}
	}
	return false
}

// extractText pulls the main content region out of an HTML document.
// Containers are tried in order: <article>, <div class="article-body">, then
// the whole <body>. Script, style and noscript sub-content is stripped and the
// remaining visible text is whitespace-normalized.
func extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	sel := doc.Find("article").First()
	if sel.Length() == 0 {
		sel = doc.Find("div.article-body").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	if sel.Length() == 0 {
		return ""
	}

	sel.Find("script, style, noscript").Remove()
	return utils.CleanText(sel.Text())
}
