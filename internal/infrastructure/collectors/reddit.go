package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	redditBaseURL   = "https://www.reddit.com"
	redditPostURL   = "https://reddit.com"
	forumBodyRunes  = 300
	defaultTopPosts = 10
)

// Reddit reads the weekly top posts of each community from the public
// JSON listing.
type Reddit struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*Reddit)(nil)

// NewReddit builds the forum collector.
func NewReddit(fetcher *Fetcher, logger *slog.Logger) *Reddit {
	return &Reddit{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (r *Reddit) Name() string {
	return config.CollectorReddit
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string `json:"title"`
				Score       int    `json:"score"`
				NumComments int    `json:"num_comments"`
				Permalink   string `json:"permalink"`
				Selftext    string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Collect fetches each community once; duplicates in the target list are
// ignored and communities without posts are left out.
func (r *Reddit) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no communities configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, redditBaseURL), "/")
	limit := intOption(req, config.OptionLimit, defaultTopPosts)

	seen := map[string]bool{}
	results := map[string][]domain.ForumPost{}
	for _, community := range req.Targets {
		if seen[community] {
			continue
		}
		seen[community] = true

		listingURL := fmt.Sprintf("%s/r/%s/top.json?t=week&limit=%d&raw_json=1", base, url.PathEscape(community), limit)
		var listing redditListing
		if err := r.fetcher.GetJSON(ctx, listingURL, &listing); err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			r.logger.Warn("community fetch failed", "community", community, "error", err)
			continue
		}

		posts := make([]domain.ForumPost, 0, len(listing.Data.Children))
		for _, child := range listing.Data.Children {
			post := child.Data
			posts = append(posts, domain.ForumPost{
				Title:     post.Title,
				Score:     post.Score,
				Comments:  post.NumComments,
				URL:       redditPostURL + post.Permalink,
				Body:      truncate(post.Selftext, forumBodyRunes),
				Community: community,
			})
		}
		if len(posts) > 0 {
			results[community] = posts
		}
	}

	if len(results) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no forum posts collected from %d communities", len(seen))
	}
	r.logger.Info("forum posts collected", "communities", len(results))
	return domain.Snapshot{ForumPosts: results}, nil
}

func intOption(req collector.Request, key string, def int) int {
	n, err := strconv.Atoi(req.Option(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
