// Package main provides the kintrack terminal application: a family roster
// tracker with live age breakdowns, search/filter/sort, a light/dark/system
// theme, and a shareable text export.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"kintrack/pkg/logging"
	"kintrack/pkg/roster"
	"kintrack/pkg/share"
	"kintrack/pkg/storage"
	"kintrack/pkg/theme"
	"kintrack/pkg/ui"
)

const version = "0.1.0"

var (
	// Global flags
	storagePath string

	// Export flags
	exportSearch string
	exportSort   string
	exportFilter string
	exportFormat string
	exportCopy   bool
)

// rootCmd launches the interactive roster.
var rootCmd = &cobra.Command{
	Use:   "kintrack",
	Short: "kintrack - a family roster tracker for the terminal",
	Long: `kintrack keeps a roster of family members with their date of birth and
relationship, shows live age breakdowns down to the second, and lets you
search, filter, and sort the table interactively.

The roster persists to a single JSON file; run without arguments to start
the interactive interface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// exportCmd prints the roster as shareable text without the UI.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the roster as shareable text",
	Long: `Runs the same search/filter/sort pipeline the table uses and writes the
result to stdout, or to the clipboard with --copy.

Examples:
  kintrack export
  kintrack export --sort age --filter 13-19
  kintrack export --format yaml > roster.yaml`,
	RunE: runExport,
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kintrack version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kintrack v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "",
		"path to the roster file (default ~/.kintrack/roster.json)")

	exportCmd.Flags().StringVar(&exportSearch, "search", "", "case-insensitive name search")
	exportCmd.Flags().StringVar(&exportSort, "sort", "", "sort order: name or age")
	exportCmd.Flags().StringVar(&exportFilter, "filter", "", `age range, "min-max" or "min-"`)
	exportCmd.Flags().StringVar(&exportFormat, "format", "text", "output format: text or yaml")
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "send to the share sheet or clipboard instead of stdout")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runInteractive starts the TUI event loop.
func runInteractive() error {
	store, err := storage.NewFileStore(storagePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	logger, logErr := logging.NewLogger("ui")
	defer func() { _ = logger.Sync() }()
	if logErr != nil {
		// Diagnostics are best-effort; the roster still works without them
		logger = zap.NewNop()
	}

	list := roster.NewList(store)
	themes := theme.NewManager(store)

	program := tea.NewProgram(ui.New(list, themes, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

// exportRecord is the YAML shape of one exported row.
type exportRecord struct {
	Name         string `yaml:"name"`
	DOB          string `yaml:"dob"`
	Relationship string `yaml:"relationship"`
	Age          int    `yaml:"age"`
	Days         int64  `yaml:"days"`
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := storage.NewFileStore(storagePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	list := roster.NewList(store)
	query := roster.Query{
		Search: exportSearch,
		Filter: exportFilter,
		Sort:   roster.ParseSortMode(exportSort),
	}
	rows := roster.Visible(list.Members(), query, time.Now())

	var out string
	switch exportFormat {
	case "yaml":
		records := make([]exportRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, exportRecord{
				Name:         row.Name,
				DOB:          row.DOB,
				Relationship: row.Relationship,
				Age:          row.Age,
				Days:         row.Days,
			})
		}
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode roster: %w", err)
		}
		out = string(data)
	case "text":
		out = share.Render(rows)
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", exportFormat)
	}

	if exportCopy {
		method, err := share.Share(out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "roster sent via %s\n", method)
		return nil
	}

	fmt.Print(out)
	return nil
}
