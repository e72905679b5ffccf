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
	leadSnippetRunes = 200
	defaultLeadHits  = 2
	defaultLeadLabel = "COMMUNITY LEAD"
)

// Leads searches communities for recent threads mentioning a keyword, for
// example people nearby asking about back pain.
type Leads struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*Leads)(nil)

// NewLeads builds the community lead collector.
func NewLeads(fetcher *Fetcher, logger *slog.Logger) *Leads {
	return &Leads{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (l *Leads) Name() string {
	return config.CollectorLeads
}

// Collect searches every community for every keyword over the past month.
// Threads are deduplicated by URL and tagged with the source label.
func (l *Leads) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no communities configured for %s", req.SourceName)
	}
	keywords := splitList(req.Option(config.OptionKeywords, ""))
	if len(keywords) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no keywords configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, redditBaseURL), "/")
	hits := intOption(req, config.OptionLimit, defaultLeadHits)
	label := req.Option(config.OptionLabel, defaultLeadLabel)

	var (
		leads []domain.CommunityLead
		seen  = map[string]bool{}
	)
	for _, community := range req.Targets {
		for _, keyword := range keywords {
			params := url.Values{}
			params.Set("q", keyword)
			params.Set("restrict_sr", "on")
			params.Set("t", "month")
			params.Set("limit", fmt.Sprint(hits))
			params.Set("sort", "relevance")
			params.Set("raw_json", "1")

			searchURL := fmt.Sprintf("%s/r/%s/search.json?%s", base, url.PathEscape(community), params.Encode())
			var listing redditListing
			if err := l.fetcher.GetJSON(ctx, searchURL, &listing); err != nil {
				if ctx.Err() != nil {
					return domain.Snapshot{}, ctx.Err()
				}
				l.logger.Warn("lead search failed", "community", community, "keyword", keyword, "error", err)
				continue
			}

			for _, child := range listing.Data.Children {
				post := child.Data
				link := redditPostURL + post.Permalink
				if post.Permalink == "" || seen[link] {
					continue
				}
				seen[link] = true
				leads = append(leads, domain.CommunityLead{
					Source:  "r/" + community,
					Title:   post.Title,
					URL:     link,
					Snippet: truncate(post.Selftext, leadSnippetRunes),
					Type:    label,
				})
			}
		}
	}

	if len(leads) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no leads found in %d communities", len(req.Targets))
	}
	l.logger.Info("community leads collected", "count", len(leads), "type", label)
	return domain.Snapshot{Leads: leads}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
