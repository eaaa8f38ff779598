package config

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	if err := RegisterFlags(cmd); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func setFlags(t *testing.T, cmd *cobra.Command, kv map[string]string) {
	t.Helper()
	for name, value := range kv {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	cmd := testCommand(t)
	setFlags(t, cmd, map[string]string{
		"roster":    "roster.xlsx",
		"archive":   "mails.zip",
		"output":    "report.xlsx",
		"rules":     "rules.yaml",
		"workers":   "8",
		"log-level": "WARNING",
	})

	cfg, err := LoadConfig(cmd)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RosterPath != "roster.xlsx" || cfg.ArchivePath != "mails.zip" || cfg.OutputPath != "report.xlsx" {
		t.Errorf("paths = %+v", cfg)
	}
	if cfg.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Workers)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn (warning alias)", cfg.LogLevel)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		wantErr string
	}{
		{
			name:    "missing roster",
			flags:   map[string]string{"archive": "mails.zip", "output": "out.xlsx"},
			wantErr: "--roster",
		},
		{
			name: "negative workers",
			flags: map[string]string{
				"roster": "r.csv", "archive": "a.zip", "output": "o.csv", "workers": "-1",
			},
			wantErr: "--workers",
		},
		{
			name: "bad log level",
			flags: map[string]string{
				"roster": "r.csv", "archive": "a.zip", "output": "o.csv", "log-level": "loud",
			},
			wantErr: "--log-level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := testCommand(t)
			setFlags(t, cmd, tt.flags)
			_, err := LoadConfig(cmd)
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
