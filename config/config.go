package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Config captures all command-line options required for one review run.
type Config struct {
	RosterPath  string
	ArchivePath string
	OutputPath  string
	RulesPath   string
	Workers     int
	LogLevel    string
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	flags.String("roster", "", "Path to the roster file (.xlsx or .csv)")
	flags.String("archive", "", "Path to the message archive (.zip of .eml files, .mbox, .eml, or a directory)")
	flags.String("output", "", "Path of the resulting report (.xlsx or .csv)")
	flags.String("rules", "", "Optional YAML file overriding the keyword and exclusion rule tables")
	flags.Int("workers", 0, "Resolution worker count (0 = one per CPU)")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")

	for _, name := range []string{"roster", "archive", "output"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig converts the parsed Cobra flags into a Config struct with
// validation.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	rosterPath, err := flags.GetString("roster")
	if err != nil {
		return Config{}, err
	}
	archivePath, err := flags.GetString("archive")
	if err != nil {
		return Config{}, err
	}
	outputPath, err := flags.GetString("output")
	if err != nil {
		return Config{}, err
	}
	rulesPath, err := flags.GetString("rules")
	if err != nil {
		return Config{}, err
	}
	workers, err := flags.GetInt("workers")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		RosterPath:  filepath.Clean(rosterPath),
		ArchivePath: filepath.Clean(archivePath),
		OutputPath:  filepath.Clean(outputPath),
		RulesPath:   rulesPath,
		Workers:     workers,
		LogLevel:    logLevel,
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.RosterPath == "" || cfg.RosterPath == "." {
		return fmt.Errorf("--roster is required")
	}
	if cfg.ArchivePath == "" || cfg.ArchivePath == "." {
		return fmt.Errorf("--archive is required")
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "." {
		return fmt.Errorf("--output is required")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}
	return nil
}
