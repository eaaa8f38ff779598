package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"access-review/archive"
	"access-review/config"
	"access-review/extract"
	"access-review/match"
)

// newStatsCmd builds the archive-stats subcommand: a quick look at a message
// archive before running a full review.
func newStatsCmd() *cobra.Command {
	var topN int
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "archive-stats [archive]",
		Short: "Analyse a message archive and show corpus statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := config.LoadRules(rulesPath)
			if err != nil {
				return err
			}

			logger := setupLogger("warn")
			slog.SetDefault(logger)

			registry := extract.NewRegistry(rules.Attachments.AllowedExtensions, rules.Attachments.MaxSize, logger)
			messages, err := archive.NewLoader(registry, logger).Load(args[0])
			if err != nil {
				return err
			}

			classifier := match.NewClassifier(rules)
			keywordTotals := make(map[string]int)
			subjects := make(map[string]int)
			attachmentExts := make(map[string]int)

			withDate := 0
			var earliest, latest time.Time
			for i := range messages {
				m := &messages[i]
				if m.Date != nil {
					withDate++
					if earliest.IsZero() || m.Date.Before(earliest) {
						earliest = *m.Date
					}
					if m.Date.After(latest) {
						latest = *m.Date
					}
				}
				if m.Subject != "" {
					subjects[m.Subject]++
				}
				for _, att := range m.Attachments {
					attachmentExts[filepath.Ext(att.Filename)]++
				}
				nm := match.Normalize(m)
				for _, kc := range classifier.Counts(nm.CombinedLower) {
					keywordTotals[kc.Keyword] += kc.Count
				}
			}

			fmt.Printf("Messages: %d (%d with parsable dates)\n", len(messages), withDate)
			if withDate > 0 {
				fmt.Printf("Date range: %s .. %s\n",
					earliest.Format(time.RFC3339), latest.Format(time.RFC3339))
			}

			fmt.Println("\nScenario keyword totals:")
			for _, sk := range rules.Scenarios {
				fmt.Printf("  %s (%s): %d\n", sk.Keyword, sk.Scenario, keywordTotals[sk.Keyword])
			}

			if len(attachmentExts) > 0 {
				fmt.Println("\nAttachments by extension:")
				printTop(attachmentExts, len(attachmentExts))
			}

			fmt.Printf("\nTop %d subjects:\n", topN)
			printTop(subjects, topN)
			return nil
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of top subjects to display")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Optional YAML rules file")
	return cmd
}

func printTop(counts map[string]int, limit int) {
	type pair struct {
		Key   string
		Count int
	}
	pairs := make([]pair, 0, len(counts))
	for k, v := range counts {
		pairs = append(pairs, pair{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Key < pairs[j].Key
	})

	for i := 0; i < limit && i < len(pairs); i++ {
		fmt.Printf("  %6d  %s\n", pairs[i].Count, pairs[i].Key)
	}
}
