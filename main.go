package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/laiambryant/scoped-reader/config"
	"github.com/laiambryant/scoped-reader/reader"
	"github.com/laiambryant/scoped-reader/report"
	"github.com/laiambryant/scoped-reader/stats"
	"github.com/laiambryant/scoped-reader/structs"
)

var (
	// these will be overridden at build time using -ldflags
	version = "0.0.1"
	commit  = "dev"
	date    = "unknown"
)

var (
	cfg        = config.NewConfig()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "scoped-reader [file]",
	Short: "Read a text file and report why it could not be read",
	Long: `Reads a UTF-8 text file to completion and prints its content.
Failures are classified as NotFound, AccessDenied or IOFailure and reported
with a message for the user. The file handle is always released.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runRead,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Read a file several times and check every read yields the same outcome",
	Long: `Reads the same file --times times with a fresh handle each time, records every
outcome and prints a summary. Fails if any read failed or if the outcomes differ.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show scoped-reader version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scoped-reader %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().IntVar(&cfg.BufferSize, "buffer-size", config.DEFAULT_BUFFER_SIZE, "Read buffer size in bytes")
	rootCmd.PersistentFlags().StringVar(&cfg.Format, "format", config.DEFAULT_FORMAT, "Output format: one of text, chars, table")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&cfg.FilePath, "file", "f", config.DEFAULT_FILE_PATH, "Path to the file to read")
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
	verifyCmd.Flags().StringVarP(&cfg.FilePath, "file", "f", config.DEFAULT_FILE_PATH, "Path to the file to read")
	verifyCmd.Flags().IntVar(&cfg.Times, "times", config.DEFAULT_TIMES, "Number of reads to perform")
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func prepare(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// applyConfigFile loads --config, keeping every value set explicitly on the command line
func applyConfigFile(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}
	fileCfg := *cfg
	if err := config.LoadFile(configPath, &fileCfg); err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("file") {
		cfg.FilePath = fileCfg.FilePath
	}
	if !flags.Changed("buffer-size") {
		cfg.BufferSize = fileCfg.BufferSize
	}
	if !flags.Changed("format") {
		cfg.Format = fileCfg.Format
	}
	if !flags.Changed("no-color") {
		cfg.NoColor = fileCfg.NoColor
	}
	if !flags.Changed("verbose") {
		cfg.Verbose = fileCfg.Verbose
	}
	if !flags.Changed("times") {
		cfg.Times = fileCfg.Times
	}
	slog.Debug("Loaded config file", "config", configPath)
	return nil
}

func colored() bool {
	return !cfg.NoColor && !color.NoColor
}

// finish writes the closing message printed after every read attempt
func finish(cmd *cobra.Command) {
	if err := report.Finished(cmd.ErrOrStderr(), colored()); err != nil {
		slog.Warn("Failed to write closing message", "error", err)
	}
}

func runRead(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cfg.FilePath = args[0]
	}
	format, err := structs.ParseOutputFormat(cfg.Format)
	if err != nil {
		return err
	}

	slog.Info("Reading file", "file", cfg.FilePath)
	outcome := reader.NewScopedFileReader(nil, cfg.BufferSize).ReadAll(cfg.FilePath)
	defer finish(cmd)

	if !outcome.Completed() {
		if err := report.Render(cmd.ErrOrStderr(), outcome, format, colored()); err != nil {
			slog.Warn("Failed to render failure", "error", err)
		}
		slog.Error("Failed to read file", "file", cfg.FilePath, "kind", outcome.Err.Kind, "error", outcome.Err)
		return outcome.Err
	}

	if err := report.Render(cmd.OutOrStdout(), outcome, format, colored()); err != nil {
		return err
	}
	slog.Info("Finished reading file", "file", cfg.FilePath, "characters", len(outcome.Chars()))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	filePath := cfg.FilePath
	if len(args) > 0 {
		filePath = args[0]
	}
	if cfg.Times < 1 {
		return fmt.Errorf("invalid times: %d (must be at least 1)", cfg.Times)
	}

	r := reader.NewScopedFileReader(nil, cfg.BufferSize)
	readStats := &stats.ReadStats{}
	defer finish(cmd)

	var first reader.ReadOutcome
	mismatches := 0
	for attempt := 1; attempt <= cfg.Times; attempt++ {
		slog.Debug("Reading file", "file", filePath, "attempt", attempt)
		outcome := r.ReadAll(filePath)
		readStats.RecordOutcome(outcome)
		if attempt == 1 {
			first = outcome
			continue
		}
		if !sameOutcome(first, outcome) {
			mismatches++
			slog.Warn("Outcome differs from first read", "file", filePath, "attempt", attempt)
		}
	}

	readStats.PrintSummary()
	report.RenderSummary(cmd.OutOrStdout(), readStats, colored())

	if failed := readStats.Failed(); failed > 0 {
		firstErr := first.AsError()
		if firstErr == nil {
			firstErr = errors.New("a later read failed")
		}
		return fmt.Errorf("%d of %d reads of %s failed: %w", failed, readStats.Total(), filePath, firstErr)
	}
	if mismatches > 0 {
		return fmt.Errorf("%d of %d reads of %s returned different content", mismatches, readStats.Total(), filePath)
	}
	return nil
}

func sameOutcome(a, b reader.ReadOutcome) bool {
	if a.Completed() != b.Completed() {
		return false
	}
	if a.Completed() {
		return a.Content == b.Content
	}
	return a.Err.Kind == b.Err.Kind
}
