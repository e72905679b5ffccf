package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	searchBaseURL      = "https://www.google.com/search"
	questionSite       = "quora.com"
	defaultPerQuery    = 3
	searchResultsExtra = 2
)

var (
	questionLinkExpr = regexp.MustCompile(`(?i)^(?:/url\?q=)?(https?://(?:www\.)?quora\.com/[^"&]+)`)
	skippedPaths     = []string{"/profile/", "/topic/", "/space/", "/answer/"}
	blockedMarkers   = []string{"unusual traffic", "captcha"}
)

// Questions discovers Q&A questions by scraping a site-restricted web
// search results page.
type Questions struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*Questions)(nil)

// NewQuestions builds the question collector.
func NewQuestions(fetcher *Fetcher, logger *slog.Logger) *Questions {
	return &Questions{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (q *Questions) Name() string {
	return config.CollectorQuestions
}

// Collect runs one search per query and keeps up to the per-query limit of
// unseen question URLs. Rate limiting or a captcha page stops the run.
func (q *Questions) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no queries configured for %s", req.SourceName)
	}

	base := req.Option(config.OptionBaseURL, searchBaseURL)
	perQuery := intOption(req, config.OptionLimit, defaultPerQuery)

	var (
		results []domain.Question
		seen    = map[string]bool{}
		blocked bool
	)
	for _, query := range req.Targets {
		params := url.Values{}
		params.Set("q", fmt.Sprintf("site:%s %q", questionSite, query))
		params.Set("num", fmt.Sprint(perQuery+searchResultsExtra))

		doc, err := q.fetcher.GetDocument(ctx, base+"?"+params.Encode())
		if err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			if code := StatusCode(err); code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable {
				q.logger.Warn("search is rate limiting, stopping", "query", query)
				blocked = true
				break
			}
			q.logger.Warn("search failed", "query", query, "error", err)
			continue
		}
		if isBlockedPage(doc) {
			q.logger.Warn("captcha page detected, stopping", "query", query)
			blocked = true
			break
		}

		count := 0
		for _, found := range extractQuestions(doc) {
			if count >= perQuery {
				break
			}
			if seen[found.URL] {
				continue
			}
			seen[found.URL] = true
			found.SourceQuery = query
			results = append(results, found)
			count++
		}
	}

	if len(results) == 0 {
		if blocked {
			return domain.Snapshot{}, fmt.Errorf("search blocked before any question was found")
		}
		return domain.Snapshot{}, fmt.Errorf("no questions found for %d queries", len(req.Targets))
	}
	q.logger.Info("questions collected", "count", len(results))
	return domain.Snapshot{Questions: results}, nil
}

func isBlockedPage(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Text())
	for _, marker := range blockedMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// extractQuestions reads question links in document order. The question
// text is the last path segment with hyphens turned into spaces.
func extractQuestions(doc *goquery.Document) []domain.Question {
	var out []domain.Question
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		match := questionLinkExpr.FindStringSubmatch(href)
		if match == nil {
			return
		}
		raw, err := url.QueryUnescape(match[1])
		if err != nil {
			raw = match[1]
		}
		for _, skip := range skippedPaths {
			if strings.Contains(raw, skip) {
				return
			}
		}

		trimmed := strings.TrimRight(raw, "/")
		segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
		if i := strings.Index(raw, "?"); i >= 0 {
			raw = raw[:i]
		}
		out = append(out, domain.Question{
			Question: strings.ReplaceAll(segment, "-", " "),
			URL:      raw,
		})
	})
	return out
}
