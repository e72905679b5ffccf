package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gonum.org/v1/gonum/stat"

	"TrendEngine/internal/collector"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
)

const (
	seriesWeekBack    = 8
	seriesWindow      = 28
	trendThresholdPct = 5.0
	directionRising   = "rising"
	directionFalling  = "falling"
	directionStable   = "stable"
)

// SearchMetrics imports keyword search interest from an exported trends
// file or an HTTP endpoint speaking the same JSON shape. Raw daily series
// are reduced to weekly metrics on the way in.
type SearchMetrics struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

var _ collector.Collector = (*SearchMetrics)(nil)

// NewSearchMetrics builds the search interest collector.
func NewSearchMetrics(fetcher *Fetcher, logger *slog.Logger) *SearchMetrics {
	return &SearchMetrics{fetcher: fetcher, logger: orDiscard(logger)}
}

// Name identifies the collector inside the registry.
func (s *SearchMetrics) Name() string {
	return config.CollectorSearchMetrics
}

type trendsRequest struct {
	Keywords []string `json:"keywords"`
	Date     string   `json:"date"`
}

// Collect loads the export and keeps the configured keywords. The endpoint
// option wins over the file option.
func (s *SearchMetrics) Collect(ctx context.Context, req collector.Request) (domain.Snapshot, error) {
	var raw json.RawMessage
	switch endpoint, file := req.Option(config.OptionEndpoint, ""), req.Option(config.OptionFile, ""); {
	case endpoint != "":
		payload := trendsRequest{Keywords: req.Targets, Date: req.Day.Format("2006-01-02")}
		if err := s.fetcher.PostJSON(ctx, endpoint, payload, &raw); err != nil {
			return domain.Snapshot{}, fmt.Errorf("search metrics endpoint: %w", err)
		}
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("read search metrics: %w", err)
		}
		raw = data
	default:
		return domain.Snapshot{}, fmt.Errorf("source %s needs a %s or %s option", req.SourceName, config.OptionFile, config.OptionEndpoint)
	}

	snap, err := decodeTrendsExport(raw)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap = keepKeywords(snap, req.Targets)
	if snap.SearchMetrics == nil && snap.SuggestionQueries == nil {
		return domain.Snapshot{}, fmt.Errorf("search metrics export holds no usable keywords")
	}

	s.logger.Info("search metrics imported", "keywords", len(snap.SearchMetrics), "suggestions", len(snap.SuggestionQueries))
	return snap, nil
}

func decodeTrendsExport(raw []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode search metrics: %w", err)
	}
	var series struct {
		Series map[string][]float64 `json:"series"`
	}
	if err := json.Unmarshal(raw, &series); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode search series: %w", err)
	}

	if len(series.Series) > 0 && snap.SearchMetrics == nil {
		snap.SearchMetrics = map[string]domain.KeywordMetric{}
	}
	for keyword, values := range series.Series {
		if _, ok := snap.SearchMetrics[keyword]; ok || len(values) == 0 {
			continue
		}
		snap.SearchMetrics[keyword] = MetricFromSeries(values)
	}
	return domain.Snapshot{SearchMetrics: snap.SearchMetrics, SuggestionQueries: snap.SuggestionQueries}, nil
}

// keepKeywords drops keywords outside targets, matching case-insensitively.
// An empty target list keeps everything.
func keepKeywords(snap domain.Snapshot, targets []string) domain.Snapshot {
	if len(targets) == 0 {
		return snap
	}
	wanted := map[string]bool{}
	for _, t := range targets {
		wanted[strings.ToLower(t)] = true
	}
	if snap.SearchMetrics != nil {
		kept := map[string]domain.KeywordMetric{}
		for k, v := range snap.SearchMetrics {
			if wanted[strings.ToLower(k)] {
				kept[k] = v
			}
		}
		snap.SearchMetrics = kept
	}
	if snap.SuggestionQueries != nil {
		kept := map[string]domain.KeywordSuggestions{}
		for k, v := range snap.SuggestionQueries {
			if wanted[strings.ToLower(k)] {
				kept[k] = v
			}
		}
		snap.SuggestionQueries = kept
	}
	return snap
}

// MetricFromSeries reduces a daily interest series to weekly statistics:
// the last value against the value a week earlier, plus the average and
// direction of the last 28 days. An empty series yields a zero metric.
func MetricFromSeries(series []float64) domain.KeywordMetric {
	if len(series) == 0 {
		return domain.KeywordMetric{}
	}
	current := float64(int(series[len(series)-1]))
	prior := float64(int(series[0]))
	if len(series) >= seriesWeekBack {
		prior = float64(int(series[len(series)-seriesWeekBack]))
	}

	window := series
	if len(series) > seriesWindow {
		window = series[len(series)-seriesWindow:]
	}

	metric := domain.KeywordMetric{
		Current:         current,
		PriorWeek:       prior,
		FourWeekAverage: round2(stat.Mean(window, nil)),
		TrendDirection:  trendDirection(window),
	}
	if prior != 0 {
		wow := round2((current - prior) / prior * 100)
		metric.WeekOverWeekPct = &wow
	}
	return metric
}

// trendDirection compares the mean of the second half against the first.
func trendDirection(values []float64) string {
	if len(values) < 2 {
		return directionStable
	}
	mid := len(values) / 2
	first := stat.Mean(values[:mid], nil)
	second := stat.Mean(values[mid:], nil)
	if first == 0 {
		if second > 0 {
			return directionRising
		}
		return directionStable
	}
	change := (second - first) / first * 100
	switch {
	case change > trendThresholdPct:
		return directionRising
	case change < -trendThresholdPct:
		return directionFalling
	default:
		return directionStable
	}
}
