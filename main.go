package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"access-review/archive"
	"access-review/config"
	"access-review/extract"
	"access-review/match"
	"access-review/model"
	"access-review/report"
	"access-review/roster"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "access-review",
		Short:   "Reconcile an access-change roster against an approval message archive",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd)
			if err != nil {
				return err
			}
			rules, err := config.LoadRules(cfg.RulesPath)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg.LogLevel)
			slog.SetDefault(logger)
			logger.Info("starting access-review",
				"roster", cfg.RosterPath, "archive", cfg.ArchivePath, "output", cfg.OutputPath)

			return run(cfg, rules, logger)
		},
	}

	if err := config.RegisterFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register CLI flags: %v\n", err)
		os.Exit(1)
	}
	rootCmd.AddCommand(newStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, rules config.Rules, logger *slog.Logger) error {
	ros, err := roster.Load(cfg.RosterPath, rules.Columns)
	if err != nil {
		return err
	}
	logger.Info("roster loaded", "rows", len(ros.Rows))

	registry := extract.NewRegistry(rules.Attachments.AllowedExtensions, rules.Attachments.MaxSize, logger)
	messages, err := archive.NewLoader(registry, logger).Load(cfg.ArchivePath)
	if err != nil {
		return err
	}
	logger.Info("archive parsed", "messages", len(messages))

	normalized := match.NormalizeAll(messages)
	resolver := match.NewResolver(rules)

	identities := make([]model.Identity, len(ros.Rows))
	for i := range ros.Rows {
		identities[i] = ros.Identity(i)
	}

	results := match.ResolveAll(resolver, identities, normalized, cfg.Workers)

	header, resolved, unresolved, err := report.Build(ros, results, rules)
	if err != nil {
		return err
	}
	if err := report.Write(cfg.OutputPath, header, resolved, unresolved); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info("report written",
		"path", cfg.OutputPath, "resolved", len(resolved), "unresolved", len(unresolved))
	return nil
}

func setupLogger(level string) *slog.Logger {
	lv := new(slog.LevelVar)
	switch level {
	case "debug":
		lv.Set(slog.LevelDebug)
	case "warn":
		lv.Set(slog.LevelWarn)
	case "error":
		lv.Set(slog.LevelError)
	default:
		lv.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}
