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
	newsBaseURL       = "https://news.google.com/rss/search"
	defaultHeadlines  = 10
	supplementalItems = 3
	unknownValue      = "Unknown"
)

// News reads headlines from a search RSS feed. The first query fills the
// list; later queries add a few headlines each until the limit is reached.
type News struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*News)(nil)

// NewNews builds the headline collector.
func NewNews(fetcher *Fetcher, logger *slog.Logger) *News {
	return &News{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (n *News) Name() string {
	return config.CollectorNews
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Updated string `xml:"updated"`
	Source  string `xml:"source"`
}

// Collect returns headlines deduplicated by case-insensitive title.
func (n *News) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no queries configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, newsBaseURL), "/")
	limit := intOption(req, config.OptionLimit, defaultHeadlines)

	var (
		headlines []domain.NewsHeadline
		seen      = map[string]bool{}
	)
	for i, query := range req.Targets {
		if len(headlines) >= limit {
			break
		}
		params := url.Values{}
		params.Set("q", query)
		params.Set("hl", "en-US")
		params.Set("gl", "US")
		params.Set("ceid", "US:en")

		var feed rssFeed
		if err := n.fetcher.GetXML(ctx, base+"?"+params.Encode(), &feed); err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			n.logger.Warn("news feed failed", "query", query, "error", err)
			continue
		}

		quota := limit
		if i > 0 {
			quota = supplementalItems
		}
		added := 0
		for _, item := range feed.Channel.Items {
			if added >= quota || len(headlines) >= limit {
				break
			}
			headline := parseHeadline(item)
			key := strings.ToLower(headline.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			headlines = append(headlines, headline)
			added++
		}
	}

	if len(headlines) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no headlines found for %d queries", len(req.Targets))
	}
	n.logger.Info("headlines collected", "count", len(headlines))
	return domain.Snapshot{News: headlines}, nil
}

// parseHeadline splits the publisher off the "Title - Publisher" form the
// feed uses, falling back to the source element.
func parseHeadline(item rssItem) domain.NewsHeadline {
	title := strings.TrimSpace(item.Title)
	source := strings.TrimSpace(item.Source)
	if i := strings.LastIndex(title, " - "); i >= 0 {
		source = strings.TrimSpace(title[i+3:])
		title = strings.TrimSpace(title[:i])
	}
	date := item.PubDate
	if date == "" {
		date = item.Updated
	}
	return domain.NewsHeadline{
		Title:  title,
		Source: orDefault(source, unknownValue),
		URL:    strings.TrimSpace(item.Link),
		Date:   orDefault(date, unknownValue),
	}
}
