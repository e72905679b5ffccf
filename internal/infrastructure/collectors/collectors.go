package collectors

import (
	"log/slog"

	"TrendEngine/internal/collector"
)

// Register adds every built-in collector to reg, sharing one fetcher.
func Register(reg *collector.Registry, fetcher *Fetcher, logger *slog.Logger) {
	logger = orDiscard(logger)
	reg.Register(NewSearchMetrics(fetcher, logger.With("collector", "search_metrics")))
	reg.Register(NewWikipedia(fetcher, logger.With("collector", "wikipedia")))
	reg.Register(NewReddit(fetcher, logger.With("collector", "reddit")))
	reg.Register(NewQuestions(fetcher, logger.With("collector", "questions")))
	reg.Register(NewHackerNews(fetcher, logger.With("collector", "hackernews")))
	reg.Register(NewPubMed(fetcher, logger.With("collector", "pubmed")))
	reg.Register(NewNews(fetcher, logger.With("collector", "news")))
	reg.Register(NewLeads(fetcher, logger.With("collector", "leads")))
}
