package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	wikipediaBaseURL = "https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/all-agents"
	pageviewDays     = 14
	weekDays         = 7
)

// Wikipedia collects two weeks of daily pageviews per reference article.
type Wikipedia struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*Wikipedia)(nil)

// NewWikipedia builds the pageview collector.
func NewWikipedia(fetcher *Fetcher, logger *slog.Logger) *Wikipedia {
	return &Wikipedia{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (w *Wikipedia) Name() string {
	return config.CollectorWikipedia
}

// Collect fetches the 14 days ending the day before req.Day. Missing
// articles are skipped; the section is absent only when nothing came back.
func (w *Wikipedia) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no articles configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, wikipediaBaseURL), "/")
	end := req.Day.UTC().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(pageviewDays - 1))
	span := start.Format("20060102") + "00/" + end.Format("20060102") + "00"

	results := map[string]domain.ArticlePageviews{}
	for _, article := range req.Targets {
		slug := strings.ReplaceAll(article, " ", "_")
		pageURL := fmt.Sprintf("%s/%s/daily/%s", base, url.PathEscape(slug), span)

		var payload struct {
			Items []struct {
				Timestamp string `json:"timestamp"`
				Views     int    `json:"views"`
			} `json:"items"`
		}
		if err := w.fetcher.GetJSON(ctx, pageURL, &payload); err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			if StatusCode(err) == http.StatusNotFound {
				w.logger.Debug("article not found", "article", slug)
			} else {
				w.logger.Warn("pageviews failed", "article", slug, "error", err)
			}
			continue
		}
		if len(payload.Items) == 0 {
			continue
		}

		daily := make([]domain.PageviewDay, 0, len(payload.Items))
		for _, item := range payload.Items {
			daily = append(daily, domain.PageviewDay{Date: timestampDate(item.Timestamp), Views: item.Views})
		}
		results[article] = summarizePageviews(daily)
	}

	if len(results) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no pageviews collected for %d articles", len(req.Targets))
	}
	w.logger.Info("pageviews collected", "articles", len(results))
	return domain.Snapshot{ReferencePageviews: results}, nil
}

// summarizePageviews splits the series into prior and current weeks.
func summarizePageviews(daily []domain.PageviewDay) domain.ArticlePageviews {
	slices.SortStableFunc(daily, func(a, b domain.PageviewDay) int {
		return strings.Compare(a.Date, b.Date)
	})

	var current, prior []domain.PageviewDay
	switch {
	case len(daily) >= 2*weekDays:
		prior, current = daily[:weekDays], daily[weekDays:]
	case len(daily) > weekDays:
		prior, current = daily[:len(daily)-weekDays], daily[len(daily)-weekDays:]
	case len(daily) == weekDays:
		prior, current = daily[:weekDays/2], daily
	default:
		current = daily
	}

	out := domain.ArticlePageviews{
		CurrentWeekAvg: averageViews(current),
		PriorWeekAvg:   averageViews(prior),
		Daily:          daily,
	}
	if out.PriorWeekAvg > 0 {
		wow := round2((out.CurrentWeekAvg - out.PriorWeekAvg) / out.PriorWeekAvg * 100)
		out.WeekOverWeekPct = &wow
	}
	return out
}

func averageViews(days []domain.PageviewDay) float64 {
	if len(days) == 0 {
		return 0
	}
	views := make([]float64, len(days))
	for i, d := range days {
		views[i] = float64(d.Views)
	}
	return round2(stat.Mean(views, nil))
}

// timestampDate turns 2026101000 into 2026-10-10.
func timestampDate(ts string) string {
	if len(ts) < 8 {
		return ts
	}
	return ts[:4] + "-" + ts[4:6] + "-" + ts[6:8]
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

