package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	pubMedBaseURL    = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	pubMedArticleURL = "https://pubmed.ncbi.nlm.nih.gov/%s/"
	defaultStudies   = 5
)

// PubMed lists the newest studies matching a literature query through the
// E-utilities JSON endpoints.
type PubMed struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*PubMed)(nil)

// NewPubMed builds the research collector.
func NewPubMed(fetcher *Fetcher, logger *slog.Logger) *PubMed {
	return &PubMed{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (p *PubMed) Name() string {
	return config.CollectorPubMed
}

type esearchResponse struct {
	Result struct {
		IDs []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type esummaryDoc struct {
	Title   string `json:"title"`
	Journal string `json:"fulljournalname"`
	PubDate string `json:"pubdate"`
}

// Collect runs each query sorted by publication date and keeps the first
// occurrence of every article, up to the configured limit.
func (p *PubMed) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	if len(req.Targets) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no queries configured for %s", req.SourceName)
	}

	base := strings.TrimSuffix(req.Option(config.OptionBaseURL, pubMedBaseURL), "/")
	limit := intOption(req, config.OptionLimit, defaultStudies)

	var (
		studies []domain.ResearchStudy
		seen    = map[string]bool{}
	)
	for _, query := range req.Targets {
		if len(studies) >= limit {
			break
		}
		found, err := p.search(ctx, base, query, limit)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Snapshot{}, ctx.Err()
			}
			p.logger.Warn("literature search failed", "error", err)
			continue
		}
		for _, study := range found {
			if seen[study.PMID] || len(studies) >= limit {
				continue
			}
			seen[study.PMID] = true
			studies = append(studies, study)
		}
	}

	if len(studies) == 0 {
		return domain.Snapshot{}, fmt.Errorf("no studies found for %d queries", len(req.Targets))
	}
	p.logger.Info("studies collected", "count", len(studies))
	return domain.Snapshot{Research: studies}, nil
}

func (p *PubMed) search(ctx context.Context, base, query string, limit int) ([]domain.ResearchStudy, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("sort", "date")
	params.Set("retmax", fmt.Sprint(limit))
	params.Set("retmode", "json")

	var ids esearchResponse
	if err := p.fetcher.GetJSON(ctx, base+"/esearch.fcgi?"+params.Encode(), &ids); err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}
	if len(ids.Result.IDs) == 0 {
		return nil, nil
	}

	params = url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids.Result.IDs, ","))
	params.Set("retmode", "json")

	var summary esummaryResponse
	if err := p.fetcher.GetJSON(ctx, base+"/esummary.fcgi?"+params.Encode(), &summary); err != nil {
		return nil, fmt.Errorf("esummary: %w", err)
	}

	studies := make([]domain.ResearchStudy, 0, len(ids.Result.IDs))
	for _, id := range ids.Result.IDs {
		var doc esummaryDoc
		if raw, ok := summary.Result[id]; ok {
			if err := json.Unmarshal(raw, &doc); err != nil {
				p.logger.Debug("summary skipped", "pmid", id, "error", err)
				continue
			}
		}
		studies = append(studies, domain.ResearchStudy{
			Title:   orDefault(strings.TrimSpace(doc.Title), "No title"),
			Journal: orDefault(doc.Journal, "Unknown journal"),
			Date:    doc.PubDate,
			PMID:    id,
			URL:     fmt.Sprintf(pubMedArticleURL, id),
		})
	}
	return studies, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
