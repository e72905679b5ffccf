package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	hackerNewsBaseURL = "https://hn.algolia.com/api/v1"
	hackerNewsItemURL = "https://news.ycombinator.com/item?id="
	hackerNewsSource  = "Hacker News"
	hitsPerQuery      = 5
	defaultLeads      = 10
	defaultLookback   = 7
)

// HackerNews searches recent stories through the Algolia API.
type HackerNews struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*HackerNews)(nil)

// NewHackerNews builds the tech-lead collector.
func NewHackerNews(fetcher *Fetcher, logger *slog.Logger) *HackerNews {
	return &HackerNews{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (h *HackerNews) Name() string {
	return config.CollectorHackerNews
}

type algoliaSearch struct {
	Hits []struct {
		ObjectID    string `json:"objectID"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		Points      int    `json:"points"`
		NumComments int    `json:"num_comments"`
	} `json:"hits"`
}

// Collect returns stories created within the lookback window, deduplicated
// by URL and capped at the configured limit.
func (h *HackerNews) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no queries configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, hackerNewsBaseURL), "/")
	limit := intOption(req, config.OptionLimit, defaultLeads)
	lookback := intOption(req, config.OptionLookback, defaultLookback)
	cutoff := req.Day.UTC().AddDate(0, 0, -lookback).Unix()

	var (
		leads []domain.TechLead
		seen  = map[string]bool{}
	)
	for _, query := range req.Targets {
		params := url.Values{}
		params.Set("query", query)
		params.Set("tags", "story")
		params.Set("numericFilters", fmt.Sprintf("created_at_i>%d", cutoff))
		params.Set("hitsPerPage", fmt.Sprint(hitsPerQuery))

		var result algoliaSearch
		if err := h.fetcher.GetJSON(ctx, base+"/search_by_date?"+params.Encode(), &result); err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			h.logger.Warn("story search failed", "query", query, "error", err)
			continue
		}

		for _, hit := range result.Hits {
			link := hit.URL
			if link == "" {
				link = hackerNewsItemURL + hit.ObjectID
			}
			if seen[link] {
				continue
			}
			seen[link] = true

			title := hit.Title
			if title == "" {
				title = "No title"
			}
			author := hit.Author
			if author == "" {
				author = "unknown"
			}
			leads = append(leads, domain.TechLead{
				Source:   hackerNewsSource,
				Title:    title,
				URL:      link,
				Snippet:  fmt.Sprintf("%d points, %d comments by %s", hit.Points, hit.NumComments, author),
				Points:   hit.Points,
				Comments: hit.NumComments,
			})
		}
	}

	if len(leads) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no stories found for %d queries", len(req.Targets))
	}
	if len(leads) > limit {
		leads = leads[:limit]
	}
	h.logger.Info("tech leads collected", "count", len(leads))
	return domain.Snapshot{TechLeads: leads}, nil
}
