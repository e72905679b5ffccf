package collectors

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxBodyBytes    = 4 << 20
	defaultCacheTTL = time.Hour
)

// StatusError reports a non-200 upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// StatusCode extracts the HTTP status of err, or 0 if err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// FetcherOptions tunes the shared HTTP behaviour.
type FetcherOptions struct {
	UserAgent      string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
	CacheSize      int
	// CacheTTL bounds how long a GET body is reused. It must stay well
	// below the run interval so a weekly run never sees last week's pages.
	CacheTTL time.Duration
}

// Fetcher performs rate-limited GET and POST calls and caches successful
// GET bodies by URL for CacheTTL.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	cache     *expirable.LRU[string, []byte]
	userAgent string
}

// NewFetcher wires an HTTP client; a nil client gets the configured timeout.
func NewFetcher(client *http.Client, opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "TrendEngine/1.0"
	}

	limit := rate.Inf
	if opts.RequestsPerSec > 0 {
		limit = rate.Limit(opts.RequestsPerSec)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	f := &Fetcher{
		client:    client,
		limiter:   rate.NewLimiter(limit, opts.Burst),
		userAgent: opts.UserAgent,
	}
	if opts.CacheSize > 0 {
		if opts.CacheTTL <= 0 {
			opts.CacheTTL = defaultCacheTTL
		}
		f.cache = expirable.NewLRU[string, []byte](opts.CacheSize, nil, opts.CacheTTL)
	}
	return f
}

// Purge drops every cached body. Each weekly fetch starts from a clean cache.
func (f *Fetcher) Purge() {
	if f.cache != nil {
		f.cache.Purge()
	}
}

// GetJSON fetches url and decodes the JSON body into v.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) error {
	body, err := f.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetXML fetches url and decodes the XML body into v.
func (f *Fetcher) GetXML(ctx context.Context, url string, v any) error {
	body, err := f.get(ctx, url, "application/rss+xml, application/xml, text/xml")
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetDocument fetches url and parses it as HTML.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.get(ctx, url, "text/html")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// PostJSON sends payload as JSON and decodes the response into v.
func (f *Fetcher) PostJSON(ctx context.Context, url string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := f.do(req)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(url); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)

	body, err := f.do(req)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		f.cache.Add(url, body)
	}
	return body, nil
}

func (f *Fetcher) do(req *http.Request) ([]byte, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{URL: req.URL.String(), Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
