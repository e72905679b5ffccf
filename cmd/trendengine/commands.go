package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"TrendEngine/internal/app"
	"TrendEngine/internal/config"
	"TrendEngine/internal/domain"
	"TrendEngine/internal/usecase"
)

func newRootCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "trendengine",
		Short:         "Weekly trend brief generator",
		Long:          `TrendEngine collects weekly search, forum, Q&A and reference signals, analyzes them against last week and delivers a content brief.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(cfg, logger),
		newScheduleCmd(cfg, logger),
		newServeCmd(cfg, logger),
		newAnalyzeCmd(cfg, logger),
	)
	return root
}

func newRunCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var (
		preview      bool
		skipStrategy bool
		skipDelivery bool
		skipSources  []string
		date         string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect, analyze and deliver one weekly brief",
		Example: `  trendengine run --preview
  trendengine run --skip-sources questions,hackernews --date 2026-10-11`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date, cfg.Scheduler.Location())
			if err != nil {
				return err
			}

			application := app.New(cfg, logger)
			defer application.Close()

			res, err := application.Run(cmd.Context(), day, app.RunOptions{
				RunOptions: usecase.RunOptions{
					Preview:      preview,
					SkipStrategy: skipStrategy,
					SkipDelivery: skipDelivery,
				},
				SkipSources: skipSources,
				Output:      cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			logger.Info("weekly run finished",
				"brief_number", res.Brief.BriefNumber,
				"theme", res.Brief.Analysis.Theme,
				"delivered", res.Delivered,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "print the brief instead of sending it")
	cmd.Flags().BoolVar(&skipStrategy, "skip-strategy", false, "leave the content plan out")
	cmd.Flags().BoolVar(&skipDelivery, "skip-delivery", false, "store the brief without sending it")
	cmd.Flags().StringSliceVar(&skipSources, "skip-sources", nil, "source or collector names to skip")
	cmd.Flags().StringVar(&date, "date", "", "run date (YYYY-MM-DD), defaults to today")
	return cmd
}

func newScheduleCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the weekly brief on the configured cron expression",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := app.New(cfg, logger)
			defer application.Close()
			return application.Schedule(cmd.Context())
		},
	}
}

func newServeCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored briefs and on-demand analysis over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			serveCfg := cfg
			if addr != "" {
				serveCfg.Server.Addr = addr
			}
			application := app.New(serveCfg, logger)
			defer application.Close()
			return application.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	return cmd
}

func newAnalyzeCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var (
		priorPath    string
		priorTheme   string
		date         string
		withStrategy bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <current.json>",
		Short: "Analyze snapshot files without collecting or storing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date, cfg.Scheduler.Location())
			if err != nil {
				return err
			}

			current, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			input := app.AnalyzeInput{
				Current:      current,
				PriorTheme:   priorTheme,
				Day:          day,
				WithStrategy: withStrategy,
			}
			if priorPath != "" {
				prior, err := readSnapshot(priorPath)
				if err != nil {
					return err
				}
				input.Prior = &prior
			}

			brief, text, err := app.New(cfg, logger).Analyze(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(brief)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&priorPath, "prior", "", "prior week snapshot file")
	cmd.Flags().StringVar(&priorTheme, "prior-theme", "", "theme of the prior brief")
	cmd.Flags().StringVar(&date, "date", "", "analysis date (YYYY-MM-DD), defaults to today")
	cmd.Flags().BoolVar(&withStrategy, "strategy", false, "also generate the content plan")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis bundle as JSON")
	return cmd
}

func parseDay(value string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now().In(loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return day, nil
}

func readSnapshot(path string) (domain.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snap, nil
}
